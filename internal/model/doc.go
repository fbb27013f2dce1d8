// Package model defines the core data structures shared across
// the application.
//
// # Album
//
// Album represents one release in a ranked list, including optional
// inline cover art and pass-through fields from imported files:
//
//	album := model.Album{
//	    Artist:      "Daft Punk",
//	    Title:       "Discovery",
//	    ReleaseDate: time.Date(2001, 3, 12, 0, 0, 0, 0, time.UTC),
//	    Genre1:      "Electronic",
//	}
//
// # ListMetadata
//
// ListMetadata describes a list as a whole: title, description,
// timestamps, format version and collection membership. The order of
// a list's albums is significant: position i means rank i+1.
package model
