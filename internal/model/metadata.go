package model

import "time"

// ListMetadata describes an album list as a whole.
//
// AlbumCount is recomputed from the actual album slice on every save;
// the value read from a file is advisory only and never trusted.
type ListMetadata struct {
	// Title is the display title of the list.
	Title string

	// Description is a free-form description. May be empty.
	Description string

	// DateCreated is when the list was first created.
	// Zero when the source file did not record it.
	DateCreated time.Time

	// DateModified is when the list was last written.
	DateModified time.Time

	// FormatVersion is the file format version the list was read from.
	// Zero for legacy files.
	FormatVersion int

	// AlbumCount is the number of albums in the list at save time.
	AlbumCount int

	// Collection is the name of the collection the list belongs to,
	// if known. Empty otherwise.
	Collection string
}
