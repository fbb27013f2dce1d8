package codec

import (
	"io"
	"log/slog"
	"time"

	"github.com/sushe-ng/sushe/internal/artwork"
)

// CurrentFormatVersion is the list file format version this codec
// writes. Readers encountering a higher version proceed best-effort;
// the schema is additive by convention.
const CurrentFormatVersion = 1

// FileExtension is the extension of list files in the current format.
const FileExtension = ".sush"

// LegacyExtension is the extension of legacy list files. Legacy files
// are a read-only import source, never a write target.
const LegacyExtension = ".json"

// Codec converts between the JSON text representation of an album list
// and the in-memory Album slice plus metadata.
//
// The conversion is lossless for the current format and best-effort for
// the legacy format: a malformed date or cover payload in a single row
// degrades to a safe default instead of failing the whole list.
//
// Example:
//
//	c := codec.New(codec.DefaultPointsTable(), logger)
//
//	albums, meta, err := c.DecodeLegacy(data, "top-2019.json")
//	if err != nil {
//	    return err
//	}
//
//	out, err := c.EncodeCurrent(albums, meta)
type Codec struct {
	points PointsTable
	log    *slog.Logger
	art    *artwork.Service

	// now is the clock used for fallback dates and timestamps.
	now func() time.Time
}

// New creates a Codec with the given points table and logger.
//
// A nil table falls back to DefaultPointsTable. A nil logger discards
// all warnings.
func New(points PointsTable, log *slog.Logger) *Codec {
	if points == nil {
		points = DefaultPointsTable()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Codec{
		points: points,
		log:    log,
		art:    artwork.NewService(),
		now:    time.Now,
	}
}
