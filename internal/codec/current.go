package codec

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/sushe-ng/sushe/internal/model"
)

// currentFile is the top-level shape of a current-format list file.
type currentFile struct {
	FormatVersion int             `json:"format_version"`
	Metadata      currentMetadata `json:"metadata"`
	Albums        []currentAlbum  `json:"albums"`
}

type currentMetadata struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DateCreated  string `json:"date_created"`
	DateModified string `json:"date_modified"`
	AlbumCount   int    `json:"album_count"`
}

type currentAlbum struct {
	Artist           string  `json:"artist"`
	Title            string  `json:"title"`
	ReleaseDate      *string `json:"release_date"`
	Genre1           string  `json:"genre1"`
	Genre2           string  `json:"genre2"`
	Comment          string  `json:"comment"`
	CoverImageData   *string `json:"cover_image_data"`
	CoverImageFormat *string `json:"cover_image_format"`
	Rank             *int    `json:"rank,omitempty"`
	Points           *int    `json:"points,omitempty"`
	AlbumID          string  `json:"album_id,omitempty"`
	Country          string  `json:"country,omitempty"`
}

// releaseDateLayout is the on-disk layout for album release dates.
const releaseDateLayout = "2006-01-02"

// timestampLayouts are accepted when parsing list metadata timestamps.
// Files written by other implementations may omit the timezone or
// carry sub-second precision, so several layouts are tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// EncodeCurrent serializes an album list to the current versioned
// format.
//
// Each album entry carries its 1-based rank, the rank's point value
// from the codec's points table, an ISO release date (null when
// unknown) and the inline cover payload re-encoded as base64. The
// written album_count is always recomputed from the slice length,
// overriding whatever the passed-in metadata claims.
//
// The entire structure is built in memory before returning, so a
// failed serialization never leaves a partially written result.
// Serialization failures return an *ExportError.
func (c *Codec) EncodeCurrent(albums []model.Album, meta model.ListMetadata) ([]byte, error) {
	now := c.now()

	title := meta.Title
	if title == "" {
		title = "My Album List"
	}
	created := meta.DateCreated
	if created.IsZero() {
		created = now
	}

	out := currentFile{
		FormatVersion: CurrentFormatVersion,
		Metadata: currentMetadata{
			Title:        title,
			Description:  meta.Description,
			DateCreated:  created.Format(time.RFC3339),
			DateModified: now.Format(time.RFC3339),
			AlbumCount:   len(albums),
		},
		Albums: make([]currentAlbum, 0, len(albums)),
	}

	for i, a := range albums {
		if a.IsBlank() {
			c.log.Warn("album with empty artist and title being persisted", "rank", i+1)
		}

		entry := currentAlbum{
			Artist:  a.Artist,
			Title:   a.Title,
			Genre1:  a.Genre1,
			Genre2:  a.Genre2,
			Comment: a.Comment,
			AlbumID: a.AlbumID,
			Country: a.Country,
		}

		if a.HasReleaseDate() {
			d := a.ReleaseDate.Format(releaseDateLayout)
			entry.ReleaseDate = &d
		}
		if a.HasCover() {
			data := base64.StdEncoding.EncodeToString(a.Cover.Data)
			entry.CoverImageData = &data
			format := a.Cover.Format
			entry.CoverImageFormat = &format
		}

		rank := i + 1
		points := c.points.PointsFor(rank)
		entry.Rank = &rank
		entry.Points = &points

		out.Albums = append(out.Albums, entry)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, &ExportError{Err: err}
	}
	return data, nil
}

// DecodeCurrent reads an album list in the current versioned format.
//
// A file with a newer format_version than this codec supports is still
// read best-effort: the schema is additive by convention, so unknown
// fields are ignored and a warning is logged instead of failing.
// Malformed per-row dates degrade to today's date, matching the legacy
// decoder's policy. Optional fields (album_id, country, rank, points)
// are carried over only when present in the source JSON.
func (c *Codec) DecodeCurrent(data []byte) ([]model.Album, model.ListMetadata, error) {
	var file currentFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, model.ListMetadata{}, &ImportError{Err: err}
	}

	if file.FormatVersion > CurrentFormatVersion {
		c.log.Warn("list file format is newer than supported, reading best-effort",
			"file_version", file.FormatVersion, "supported", CurrentFormatVersion)
	}

	meta := model.ListMetadata{
		Title:         file.Metadata.Title,
		Description:   file.Metadata.Description,
		DateCreated:   parseTimestamp(file.Metadata.DateCreated),
		DateModified:  parseTimestamp(file.Metadata.DateModified),
		FormatVersion: file.FormatVersion,
		AlbumCount:    len(file.Albums),
	}

	albums := make([]model.Album, 0, len(file.Albums))
	for i, e := range file.Albums {
		album := model.Album{
			Artist:  e.Artist,
			Title:   e.Title,
			Genre1:  e.Genre1,
			Genre2:  e.Genre2,
			Comment: e.Comment,
			AlbumID: e.AlbumID,
			Country: e.Country,
		}

		if e.ReleaseDate != nil && *e.ReleaseDate != "" {
			date, err := parseReleaseDate(*e.ReleaseDate)
			if err != nil {
				c.log.Warn("bad release date, using today",
					"entry", i, "value", *e.ReleaseDate)
				date = c.today()
			}
			album.ReleaseDate = date
		}

		if e.CoverImageData != nil {
			format := ""
			if e.CoverImageFormat != nil {
				format = *e.CoverImageFormat
			}
			album.Cover = c.decodeCover(*e.CoverImageData, format, "", i)
		}

		if e.Rank != nil {
			album.Rank = *e.Rank
		}
		if e.Points != nil {
			album.Points = *e.Points
		}

		albums = append(albums, album)
	}

	return albums, meta, nil
}

// parseReleaseDate parses an ISO release date, accepting a full
// timestamp as a fallback for files written by other tools.
func parseReleaseDate(s string) (time.Time, error) {
	if t, err := time.Parse(releaseDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// parseTimestamp leniently parses a metadata timestamp. Unparseable
// values yield the zero time; metadata timestamps are informational.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
