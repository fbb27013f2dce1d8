// Package store persists album lists on the filesystem, grouped into
// named collections.
//
// The layout under a store root is:
//
//	<root>/
//	  metadata.json              recency and favorites sidecar
//	  collections/
//	    <Collection>/
//	      <List>.sush            one file per list
//
// A collection is nothing more than its directory: creating, renaming
// and deleting collections are directory operations, and a list's
// collection is derived from its path. There is no cross-referencing
// index that can drift out of sync with the files.
//
// The sidecar is advisory. Entries pointing at deleted files are
// filtered out of query results on the fly and physically pruned only
// when a save already has to rewrite the sidecar. A missing or corrupt
// sidecar degrades to empty histories, never to a failed store.
package store
