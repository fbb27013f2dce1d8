package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sushe-ng/sushe/internal/codec"
	"github.com/sushe-ng/sushe/internal/ioutils"
	"github.com/sushe-ng/sushe/internal/model"
)

// ErrUnsupportedFormat is returned by LoadList for file extensions the
// store does not recognize.
var ErrUnsupportedFormat = errors.New("unsupported list file format")

// SaveList writes an album list into the store and returns the path of
// the written file.
//
// The target collection is taken from meta.Collection, falling back to
// the store's default collection; a missing collection directory is
// created on the fly. The file name derives from fileName, or from
// meta.Title when fileName is empty, sanitized for filesystem use with
// the current-format extension appended when missing.
//
// The list file is written completely before the recency sidecar is
// touched, so a crash between the two leaves an orphaned-but-valid
// list file rather than a referenced-but-missing one.
func (s *Store) SaveList(albums []model.Album, meta model.ListMetadata, fileName string) (string, error) {
	collection := meta.Collection
	if strings.TrimSpace(collection) == "" {
		collection = s.defaultCollection
	}
	collectionDir := s.collectionPath(collection)
	if err := ioutils.EnsureDir(collectionDir); err != nil {
		return "", &codec.ExportError{Path: collectionDir, Err: err}
	}

	name := fileName
	if name == "" {
		name = meta.Title
	}
	if name == "" {
		name = "Untitled"
	}
	name = ioutils.SanitizeFileName(name)
	if !strings.HasSuffix(name, codec.FileExtension) {
		name += codec.FileExtension
	}
	path := filepath.Join(collectionDir, name)

	data, err := s.codec.EncodeCurrent(albums, meta)
	if err != nil {
		return "", err
	}
	if err := ioutils.WriteFile(path, data); err != nil {
		return "", &codec.ExportError{Path: path, Err: err}
	}

	s.touchRecent(path)
	s.pruneStale()
	s.saveSidecar()

	s.log.Info("album list saved", "path", path, "albums", len(albums))
	return path, nil
}

// LoadList reads an album list from the given path, dispatching to the
// legacy or current decoder based on the file extension.
//
// Opening a list is a recency-relevant action, so a successful load
// records the path as most-recently-opened even though loading reads
// more naturally as a query. Unsupported extensions fail with
// ErrUnsupportedFormat without touching any sidecar state.
func (s *Store) LoadList(path string) ([]model.Album, model.ListMetadata, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != codec.FileExtension && ext != codec.LegacyExtension {
		return nil, model.ListMetadata{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	albums, meta, err := s.decodeFile(path, ext)
	if err != nil {
		return nil, model.ListMetadata{}, err
	}

	if c := s.CollectionForList(path); c != "" && meta.Collection == "" {
		meta.Collection = c
	}

	s.touchRecent(path)
	s.saveSidecar()

	s.log.Info("album list loaded", "path", path, "albums", len(albums))
	return albums, meta, nil
}

// decodeFile reads and decodes a list file without sidecar side
// effects. Read failures surface as *codec.ImportError so callers see
// one error taxonomy regardless of where the failure happened.
func (s *Store) decodeFile(path, ext string) ([]model.Album, model.ListMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.ListMetadata{}, &codec.ImportError{Path: path, Err: err}
	}

	if ext == codec.LegacyExtension {
		return s.codec.DecodeLegacy(data, path)
	}
	return s.codec.DecodeCurrent(data)
}

// ImportExternal loads a list from an arbitrary external path and
// re-saves it inside the store, using the source's derived title as
// the target name.
//
// The operation is advisory: it reports failure through its boolean
// instead of an error, because it is used during first-run migration
// sweeps where one bad file must not abort the batch. The external
// path itself is never recorded in the recency history; only the new
// in-store copy is.
func (s *Store) ImportExternal(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != codec.FileExtension && ext != codec.LegacyExtension {
		s.log.Warn("cannot import list, unsupported format", "path", path)
		return "", false
	}

	albums, meta, err := s.decodeFile(path, ext)
	if err != nil {
		s.log.Warn("cannot import external list", "path", path, "error", err)
		return "", false
	}

	if meta.Title == "" {
		base := filepath.Base(path)
		meta.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	meta.Collection = ""

	newPath, err := s.SaveList(albums, meta, "")
	if err != nil {
		s.log.Warn("cannot save imported list", "path", path, "error", err)
		return "", false
	}

	s.log.Info("external list imported", "source", path, "target", newPath)
	return newPath, true
}

// DeleteList removes a list file from disk and purges every sidecar
// reference to it. Returns false when the path does not exist.
//
// References are purged (and the sidecar persisted) before the file is
// unlinked: a crash mid-operation then leaves a file the metadata has
// forgotten, which a rescan can recover, rather than metadata pointing
// at a file that is gone.
func (s *Store) DeleteList(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}

	s.removeRef(path)
	s.saveSidecar()

	if err := os.Remove(path); err != nil {
		s.log.Error("cannot delete list file", "path", path, "error", err)
		return false
	}

	s.log.Info("album list deleted", "path", path)
	return true
}

// ToggleFavorite flips the favorite status of a list and returns the
// new status.
func (s *Store) ToggleFavorite(path string) bool {
	for _, p := range s.meta.FavoriteLists {
		if p == path {
			s.meta.FavoriteLists = without(s.meta.FavoriteLists, path)
			s.saveSidecar()
			return false
		}
	}
	s.meta.FavoriteLists = append(s.meta.FavoriteLists, path)
	s.saveSidecar()
	return true
}
