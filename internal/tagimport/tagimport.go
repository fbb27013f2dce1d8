// Package tagimport seeds album entries from the ID3 tags of local
// MP3 files, so a ranked list can start from an existing music
// library instead of manual entry.
package tagimport

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bogem/id3v2"
	"golang.org/x/sync/errgroup"

	"github.com/sushe-ng/sushe/internal/artwork"
	"github.com/sushe-ng/sushe/internal/model"
)

// defaultConcurrency bounds parallel tag reads during a directory
// scan. Tag reads are I/O bound and cheap, so a small limit keeps the
// disk from thrashing without serializing the scan.
const defaultConcurrency = 4

// maxCoverDim bounds embedded cover art. MP3 files often carry covers
// far larger than a list viewer needs, and oversized payloads bloat
// the base64-encoded list files.
const maxCoverDim = 500

// tagInfo is the subset of ID3 data the importer cares about.
type tagInfo struct {
	Artist      string
	Album       string
	Year        string
	Genre       string
	CoverData   []byte
	CoverFormat string
}

// tagReader extracts tagInfo from one audio file. The production
// implementation reads ID3v2 frames; tests substitute a stub.
type tagReader interface {
	ReadTags(path string) (tagInfo, error)
}

// id3Reader reads ID3v2 tags using the id3v2 library.
type id3Reader struct{}

func (id3Reader) ReadTags(path string) (tagInfo, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return tagInfo{}, err
	}
	defer tag.Close()

	info := tagInfo{
		Artist: strings.TrimSpace(tag.Artist()),
		Album:  strings.TrimSpace(tag.Album()),
		Year:   strings.TrimSpace(tag.Year()),
		Genre:  strings.TrimSpace(tag.Genre()),
	}

	for _, frame := range tag.GetFrames(tag.CommonID("Attached picture")) {
		pic, ok := frame.(id3v2.PictureFrame)
		if !ok {
			continue
		}
		info.CoverData = pic.Picture
		info.CoverFormat = formatFromMime(pic.MimeType)
		break
	}

	return info, nil
}

// formatFromMime maps an APIC mime type to the cover format names used
// in list files.
func formatFromMime(mime string) string {
	switch strings.ToLower(mime) {
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	default:
		return "jpeg"
	}
}

// Importer builds album entries from the ID3 tags of MP3 files.
//
// Example:
//
//	imp := tagimport.New(logger)
//	albums, err := imp.ScanDirectory(ctx, "/home/me/Music")
type Importer struct {
	reader tagReader
	art    *artwork.Service
	log    *slog.Logger
}

// New creates an Importer. A nil logger discards diagnostics.
func New(log *slog.Logger) *Importer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Importer{reader: id3Reader{}, art: artwork.NewService(), log: log}
}

// FromFile builds one album entry from a single MP3 file's tags.
// Returns false when the file has no usable tags (both artist and
// album empty) or cannot be read.
func (imp *Importer) FromFile(ctx context.Context, path string) (model.Album, bool) {
	info, err := imp.reader.ReadTags(path)
	if err != nil {
		imp.log.Warn("cannot read tags", "path", path, "error", err)
		return model.Album{}, false
	}
	album, ok := imp.albumFromTags(info)
	if ok {
		imp.normalizeCover(ctx, &album)
	}
	return album, ok
}

// ScanDirectory walks root for MP3 files and builds one album entry
// per distinct artist and album pair found in their tags. Tracks of
// the same album collapse into one entry; the first track carrying a
// cover wins.
//
// Files whose tags cannot be read are logged and skipped; the scan
// fails only when the directory walk itself fails or ctx is canceled.
// Results are sorted by artist then album title.
func (imp *Importer) ScanDirectory(ctx context.Context, root string) ([]model.Album, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".mp3") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		seen = make(map[string]int)
	)
	var albums []model.Album

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultConcurrency)

	for _, path := range paths {
		path := path // capture
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			info, err := imp.reader.ReadTags(path)
			if err != nil {
				imp.log.Warn("cannot read tags, skipping file",
					"path", path, "error", err)
				return nil
			}
			album, ok := imp.albumFromTags(info)
			if !ok {
				return nil
			}
			imp.normalizeCover(ctx, &album)

			key := strings.ToLower(album.Artist) + "|" + strings.ToLower(album.Title)

			mu.Lock()
			defer mu.Unlock()
			if i, dup := seen[key]; dup {
				if !albums[i].HasCover() && album.HasCover() {
					albums[i].Cover = album.Cover
				}
				return nil
			}
			seen[key] = len(albums)
			albums = append(albums, album)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(albums, func(i, j int) bool {
		if albums[i].Artist != albums[j].Artist {
			return albums[i].Artist < albums[j].Artist
		}
		return albums[i].Title < albums[j].Title
	})

	imp.log.Info("library scan finished", "files", len(paths), "albums", len(albums))
	return albums, nil
}

// normalizeCover re-encodes an album's cover to fit maxCoverDim as
// JPEG. A payload that cannot be decoded as an image is kept as-is;
// storage tolerates it the same way imports tolerate corrupt covers.
func (imp *Importer) normalizeCover(ctx context.Context, album *model.Album) {
	if !album.HasCover() {
		return
	}
	resized, err := imp.art.Resize(ctx, album.Cover.Data, maxCoverDim, maxCoverDim)
	if err != nil {
		return
	}
	album.Cover = &model.CoverArt{Data: resized, Format: "jpeg"}
}

// albumFromTags maps raw tag data onto an album entry.
func (imp *Importer) albumFromTags(info tagInfo) (model.Album, bool) {
	if info.Artist == "" && info.Album == "" {
		return model.Album{}, false
	}

	album := model.Album{
		Artist: info.Artist,
		Title:  info.Album,
		Genre1: info.Genre,
	}

	if info.Year != "" {
		if t, err := time.Parse("2006", info.Year); err == nil {
			album.ReleaseDate = t
		}
	}
	if len(info.CoverData) > 0 {
		album.Cover = &model.CoverArt{
			Data:   info.CoverData,
			Format: info.CoverFormat,
		}
	}

	return album, true
}
