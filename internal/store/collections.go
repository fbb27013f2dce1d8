package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sushe-ng/sushe/internal/ioutils"
)

// collectionNames returns the names of all collection directories,
// or nil when the store has none.
func (s *Store) collectionNames() []string {
	entries, err := os.ReadDir(s.collectionsDir)
	if err != nil {
		s.log.Warn("cannot read collections directory",
			"path", s.collectionsDir, "error", err)
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// collectionPath returns the directory backing the named collection.
// The name is sanitized the same way list titles are, so a collection
// name maps to exactly one storage location.
func (s *Store) collectionPath(name string) string {
	return filepath.Join(s.collectionsDir, ioutils.SanitizeFileName(name))
}

// CreateCollection creates a new collection directory.
//
// Creating an existing collection is a harmless no-op, not an error.
// Empty or whitespace-only names are rejected silently (logged);
// callers needing a hard error must validate before calling.
func (s *Store) CreateCollection(name string) {
	if strings.TrimSpace(name) == "" {
		s.log.Error("cannot create collection with empty name")
		return
	}

	path := s.collectionPath(name)
	if _, err := os.Stat(path); err == nil {
		s.log.Debug("collection already exists, skipping creation", "name", name)
		return
	}

	if err := ioutils.EnsureDir(path); err != nil {
		s.log.Error("cannot create collection", "name", name, "error", err)
		return
	}
	s.log.Info("collection created", "name", name)
}

// RenameCollection renames a collection, preserving its membership.
//
// Returns false when old does not exist, new already exists, either
// name is blank, or the underlying directory rename fails. Collection
// names are a unique key; silent overwrite is never permitted.
//
// Sidecar entries referring to lists under the old directory are
// rewritten to the new location so recency and favorites survive the
// rename.
func (s *Store) RenameCollection(old, new string) bool {
	if strings.TrimSpace(old) == "" || strings.TrimSpace(new) == "" {
		return false
	}

	oldPath := s.collectionPath(old)
	newPath := s.collectionPath(new)

	if _, err := os.Stat(oldPath); err != nil {
		s.log.Warn("cannot rename collection, source missing", "name", old)
		return false
	}
	if _, err := os.Stat(newPath); err == nil {
		s.log.Warn("cannot rename collection, target exists", "name", new)
		return false
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		s.log.Error("cannot rename collection directory",
			"old", old, "new", new, "error", err)
		return false
	}

	s.meta.RecentLists = rewritePrefix(s.meta.RecentLists, oldPath, newPath)
	s.meta.FavoriteLists = rewritePrefix(s.meta.FavoriteLists, oldPath, newPath)
	s.saveSidecar()

	s.log.Info("collection renamed", "old", old, "new", new)
	return true
}

// DeleteCollection removes a collection directory and its contents.
//
// Returns false when the collection was never present. Sidecar
// references to lists inside the collection are purged before the
// directory is removed, so an interrupted delete leaves files the
// metadata has forgotten rather than metadata pointing at nothing.
func (s *Store) DeleteCollection(name string) bool {
	path := s.collectionPath(name)
	if _, err := os.Stat(path); err != nil {
		return false
	}

	prefix := path + string(filepath.Separator)
	s.meta.RecentLists = withoutPrefix(s.meta.RecentLists, prefix)
	s.meta.FavoriteLists = withoutPrefix(s.meta.FavoriteLists, prefix)
	s.saveSidecar()

	if err := os.RemoveAll(path); err != nil {
		s.log.Error("cannot remove collection directory",
			"name", name, "error", err)
		return false
	}

	s.log.Info("collection deleted", "name", name)
	return true
}

// CollectionForList derives the collection a list belongs to from its
// position under the collections directory. Returns the empty string
// for paths outside any collection.
func (s *Store) CollectionForList(path string) string {
	parts := strings.Split(filepath.Clean(path), string(filepath.Separator))
	for i, part := range parts {
		if part == collectionsDirName && i+1 < len(parts)-1 {
			return parts[i+1]
		}
	}
	return ""
}

// rewritePrefix rewrites paths under oldDir to live under newDir.
func rewritePrefix(paths []string, oldDir, newDir string) []string {
	oldPrefix := oldDir + string(filepath.Separator)
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.HasPrefix(p, oldPrefix) {
			out = append(out, filepath.Join(newDir, strings.TrimPrefix(p, oldPrefix)))
		} else {
			out = append(out, p)
		}
	}
	return out
}

// withoutPrefix drops every path under the given directory prefix.
func withoutPrefix(paths []string, prefix string) []string {
	var kept []string
	for _, p := range paths {
		if !strings.HasPrefix(p, prefix) {
			kept = append(kept, p)
		}
	}
	return kept
}
