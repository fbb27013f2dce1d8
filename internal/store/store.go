package store

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sushe-ng/sushe/internal/codec"
	"github.com/sushe-ng/sushe/internal/ioutils"
)

const (
	// collectionsDirName is the subdirectory holding one directory
	// per collection.
	collectionsDirName = "collections"

	// sidecarFileName is the metadata sidecar next to the
	// collections directory.
	sidecarFileName = "metadata.json"

	// DefaultRecentLimit bounds the recent-lists history.
	DefaultRecentLimit = 10

	// DefaultCollectionName is the collection synthesized on first
	// run so the UI never sees an empty store.
	DefaultCollectionName = "Default"
)

// Store is a filesystem-backed repository of album lists grouped into
// named collections.
//
// Each collection is a directory under <root>/collections, each list a
// .sush file inside its collection's directory. A small JSON sidecar
// at <root>/metadata.json tracks recently opened and favorite lists.
//
// The Store is single-threaded by design: every operation is a
// blocking call, and a single in-process Store instance is assumed to
// be the only writer of the root directory. Concurrent external
// mutation of the same root is unsupported; the last sidecar writer
// wins.
type Store struct {
	root           string
	collectionsDir string
	sidecarPath    string

	meta  sidecar
	codec *codec.Codec
	log   *slog.Logger

	recentLimit       int
	defaultCollection string
}

// sidecar is the persisted shape of the metadata sidecar file.
type sidecar struct {
	RecentLists   []string `json:"recent_lists"`
	FavoriteLists []string `json:"favorite_lists,omitempty"`
	LastUpdated   string   `json:"last_updated,omitempty"`
}

// Options configures a Store. The zero value selects sensible
// defaults for every field.
type Options struct {
	// Logger receives store diagnostics. Nil discards them.
	Logger *slog.Logger

	// Codec overrides the list codec. Nil builds one with the
	// default points table and the store's logger.
	Codec *codec.Codec

	// RecentLimit bounds the recent-lists history.
	// Zero means DefaultRecentLimit.
	RecentLimit int

	// DefaultCollection names the collection created on first run.
	// Empty means DefaultCollectionName.
	DefaultCollection string
}

// Open opens (and if necessary initializes) a store rooted at the
// given directory.
//
// The collections directory is created if missing, the sidecar is
// loaded (a corrupt sidecar is replaced with an empty one, with a
// warning), and on a completely empty store a default collection is
// created so callers are never shown a collection-less state.
func Open(root string, opts Options) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := opts.Codec
	if c == nil {
		c = codec.New(nil, log)
	}
	limit := opts.RecentLimit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	defaultCollection := opts.DefaultCollection
	if defaultCollection == "" {
		defaultCollection = DefaultCollectionName
	}

	s := &Store{
		root:              root,
		collectionsDir:    filepath.Join(root, collectionsDirName),
		sidecarPath:       filepath.Join(root, sidecarFileName),
		codec:             c,
		log:               log,
		recentLimit:       limit,
		defaultCollection: defaultCollection,
	}

	if err := ioutils.EnsureDir(s.collectionsDir); err != nil {
		return nil, err
	}
	s.meta = s.loadSidecar()

	if s.collectionNames() == nil {
		s.log.Info("no collections found, creating default collection",
			"name", defaultCollection)
		if err := ioutils.EnsureDir(filepath.Join(s.collectionsDir, defaultCollection)); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// loadSidecar reads the metadata sidecar, falling back to an empty
// one when the file is missing or unreadable.
func (s *Store) loadSidecar() sidecar {
	data, err := os.ReadFile(s.sidecarPath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("cannot read metadata sidecar, starting fresh",
				"path", s.sidecarPath, "error", err)
		}
		return sidecar{}
	}

	var meta sidecar
	if err := json.Unmarshal(data, &meta); err != nil {
		s.log.Warn("corrupt metadata sidecar, starting fresh",
			"path", s.sidecarPath, "error", err)
		return sidecar{}
	}
	return meta
}

// saveSidecar persists the metadata sidecar. Failures are logged, not
// returned: the sidecar is advisory state, and a failed write must
// never fail the operation that triggered it.
func (s *Store) saveSidecar() {
	s.meta.LastUpdated = time.Now().Format(time.RFC3339)

	data, err := json.MarshalIndent(s.meta, "", "  ")
	if err != nil {
		s.log.Error("cannot serialize metadata sidecar", "error", err)
		return
	}
	if err := ioutils.WriteFile(s.sidecarPath, data); err != nil {
		s.log.Error("cannot write metadata sidecar",
			"path", s.sidecarPath, "error", err)
	}
}

// touchRecent moves path to the front of the recent-lists history,
// evicting the oldest entry past the bound.
func (s *Store) touchRecent(path string) {
	recents := make([]string, 0, len(s.meta.RecentLists)+1)
	recents = append(recents, path)
	for _, p := range s.meta.RecentLists {
		if p != path {
			recents = append(recents, p)
		}
	}
	if len(recents) > s.recentLimit {
		recents = recents[:s.recentLimit]
	}
	s.meta.RecentLists = recents
}

// pruneStale drops sidecar entries whose files no longer exist.
// Queries exclude stale entries on the fly without rewriting the
// sidecar; the actual correction is batched onto save paths to avoid
// write amplification on reads.
func (s *Store) pruneStale() {
	s.meta.RecentLists = existingOnly(s.meta.RecentLists)
	s.meta.FavoriteLists = existingOnly(s.meta.FavoriteLists)
}

func existingOnly(paths []string) []string {
	var kept []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			kept = append(kept, p)
		}
	}
	return kept
}

// removeRef purges every sidecar reference to path.
func (s *Store) removeRef(path string) {
	s.meta.RecentLists = without(s.meta.RecentLists, path)
	s.meta.FavoriteLists = without(s.meta.FavoriteLists, path)
}

func without(paths []string, drop string) []string {
	var kept []string
	for _, p := range paths {
		if p != drop {
			kept = append(kept, p)
		}
	}
	return kept
}
