package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sushe-ng/sushe/internal/model"
)

// legacyAlbum is one entry of the legacy bare-array format.
type legacyAlbum struct {
	Artist           string `json:"artist"`
	Album            string `json:"album"`
	ReleaseDate      string `json:"release_date"`
	Genre1           string `json:"genre_1"`
	Genre2           string `json:"genre_2"`
	Comments         string `json:"comments"`
	CoverImage       string `json:"cover_image"`
	CoverImageFormat string `json:"cover_image_format"`
	AlbumID          string `json:"album_id"`
	Country          string `json:"country"`
	Rank             *int   `json:"rank"`
}

// DecodeLegacy reads an album list in the legacy format: a bare JSON
// array of album objects with DD-MM-YYYY release dates and optional
// base64 cover data.
//
// List metadata does not exist in the legacy format, so it is
// synthesized from context: the title is the source file's base name
// without extension, the description records where the list was
// imported from, and both timestamps are set to the current time.
//
// A malformed release date or cover payload in a single entry never
// aborts the import; the entry gets today's date or no cover art and a
// warning is logged. Only a total parse failure of the outer JSON
// returns an *ImportError.
func (c *Codec) DecodeLegacy(data []byte, sourcePath string) ([]model.Album, model.ListMetadata, error) {
	var entries []legacyAlbum
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, model.ListMetadata{}, &ImportError{Path: sourcePath, Err: err}
	}

	albums := make([]model.Album, 0, len(entries))
	for i, e := range entries {
		date, err := parseLegacyDate(e.ReleaseDate)
		if err != nil {
			c.log.Warn("bad release date, using today",
				"source", sourcePath, "entry", i, "value", e.ReleaseDate)
			date = c.today()
		}

		album := model.Album{
			Artist:      e.Artist,
			Title:       e.Album,
			ReleaseDate: date,
			Genre1:      e.Genre1,
			Genre2:      e.Genre2,
			Comment:     e.Comments,
			AlbumID:     e.AlbumID,
			Country:     e.Country,
		}
		if e.Rank != nil {
			album.Rank = *e.Rank
		} else {
			album.Rank = i + 1
		}
		album.Cover = c.decodeCover(e.CoverImage, e.CoverImageFormat, sourcePath, i)

		albums = append(albums, album)
	}

	base := filepath.Base(sourcePath)
	now := c.now()
	meta := model.ListMetadata{
		Title:        strings.TrimSuffix(base, filepath.Ext(base)),
		Description:  fmt.Sprintf("Imported from %s", base),
		DateCreated:  now,
		DateModified: now,
		AlbumCount:   len(albums),
	}
	return albums, meta, nil
}

// decodeCover turns a base64 cover payload into inline cover art.
// A corrupt payload degrades to no cover art. A missing format tag is
// recovered by sniffing the image header, falling back to "png" for
// unrecognizable payloads.
func (c *Codec) decodeCover(encoded, format, sourcePath string, entry int) *model.CoverArt {
	if encoded == "" {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		c.log.Warn("bad cover image payload, dropping cover",
			"source", sourcePath, "entry", entry, "error", err)
		return nil
	}
	if format == "" {
		if sniffed, ok := c.art.DetectFormat(raw); ok {
			format = sniffed
		} else {
			format = "png"
		}
	}
	return &model.CoverArt{Data: raw, Format: strings.ToLower(format)}
}

// parseLegacyDate parses the legacy DD-MM-YYYY date format. The
// components are validated strictly: splitting must yield exactly
// three numeric parts forming a real calendar date.
func parseLegacyDate(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("expected DD-MM-YYYY, got %q", s)
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, err
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, err
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, err
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (32-01 becomes
	// 01-02), so reject anything that did not round-trip.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	return t, nil
}

// today returns the current date truncated to midnight UTC.
func (c *Codec) today() time.Time {
	y, m, d := c.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
