package model

import (
	"fmt"
	"time"
)

// Album represents one musical release inside a ranked list.
//
// Album carries the fields shown in the list table plus optional
// pass-through data preserved across save/load cycles:
//   - Artist and Title identify the release
//   - ReleaseDate is the release date (zero value means unknown)
//   - Genre1 is the primary genre, Genre2 an optional secondary one
//   - Cover holds inline cover art, if any
//   - AlbumID, Country, Rank and Points are optional extras carried
//     through from imported files
//
// An Album has no persistence of its own; it only exists as an element
// of a list file.
type Album struct {
	// Artist is the artist or band name.
	Artist string

	// Title is the album title.
	Title string

	// ReleaseDate is the release date of the album.
	// The zero value means the date is unknown.
	ReleaseDate time.Time

	// Genre1 is the primary genre.
	Genre1 string

	// Genre2 is the secondary genre. May be empty.
	Genre2 string

	// Comment is a free-form user comment. May be empty.
	Comment string

	// Cover is the inline cover art payload, or nil if the album
	// has no cover art.
	Cover *CoverArt

	// AlbumID is an optional external identifier carried through
	// from imported files. Empty when absent.
	AlbumID string

	// Country is an optional country of origin carried through
	// from imported files. Empty when absent.
	Country string

	// Rank is the 1-based list position as stored in the source file.
	// Zero when absent. The authoritative rank is always the album's
	// position in its list; this field only preserves imported data.
	Rank int

	// Points is the rank-derived score as stored in the source file.
	// Zero when absent. Points are a derived export convenience, never
	// a source of truth for ordering.
	Points int
}

// CoverArt holds an inline cover image.
type CoverArt struct {
	// Data is the raw encoded image (JPEG, PNG, ...).
	Data []byte

	// Format is the image format tag, e.g. "jpeg" or "png".
	Format string
}

// HasCover returns true if the album carries inline cover art.
func (a *Album) HasCover() bool {
	return a.Cover != nil && len(a.Cover.Data) > 0
}

// HasReleaseDate returns true if the album's release date is known.
func (a *Album) HasReleaseDate() bool {
	return !a.ReleaseDate.IsZero()
}

// IsBlank reports whether both artist and title are empty. Blank albums
// are tolerated on read (they represent "unknown") but a list being
// persisted should not normally contain them.
func (a *Album) IsBlank() bool {
	return a.Artist == "" && a.Title == ""
}

// String returns a short human-readable description of the album.
func (a *Album) String() string {
	if a.HasReleaseDate() {
		return fmt.Sprintf("%s - %s (%d)", a.Artist, a.Title, a.ReleaseDate.Year())
	}
	return fmt.Sprintf("%s - %s", a.Artist, a.Title)
}
