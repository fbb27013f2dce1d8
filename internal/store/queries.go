package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sushe-ng/sushe/internal/codec"
)

// ListInfo is a lightweight summary of a stored list, built without
// decoding album payloads. Cover art in particular is never touched,
// so summarizing a large store stays cheap.
type ListInfo struct {
	Path         string
	FileName     string
	Title        string
	Description  string
	AlbumCount   int
	DateModified time.Time
	Collection   string
	IsFavorite   bool
}

// GetAllLists returns summaries for every list in the store, most
// recently modified first.
func (s *Store) GetAllLists() []ListInfo {
	var infos []ListInfo
	for _, name := range s.collectionNames() {
		dir := filepath.Join(s.collectionsDir, name)
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.log.Warn("cannot read collection directory", "path", dir, "error", err)
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), codec.FileExtension) {
				continue
			}
			infos = append(infos, s.listInfo(filepath.Join(dir, e.Name())))
		}
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].DateModified.After(infos[j].DateModified)
	})
	return infos
}

// GetRecentLists returns summaries for the most recently opened lists,
// newest first, capped at limit (or the store's recent bound when
// limit is zero or negative).
//
// Entries whose files have since disappeared are skipped without
// rewriting the sidecar; cleanup happens on the next save.
func (s *Store) GetRecentLists(limit int) []ListInfo {
	if limit <= 0 || limit > s.recentLimit {
		limit = s.recentLimit
	}

	var infos []ListInfo
	for _, p := range s.meta.RecentLists {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		infos = append(infos, s.listInfo(p))
		if len(infos) == limit {
			break
		}
	}
	return infos
}

// GetFavoriteLists returns summaries for every favorite list whose
// file still exists.
func (s *Store) GetFavoriteLists() []ListInfo {
	var infos []ListInfo
	for _, p := range s.meta.FavoriteLists {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		infos = append(infos, s.listInfo(p))
	}
	return infos
}

// GetCollections returns every collection mapped to its list
// summaries. Empty collections are included with a nil slice, so the
// caller can render them.
func (s *Store) GetCollections() map[string][]ListInfo {
	out := make(map[string][]ListInfo)
	for _, info := range s.GetAllLists() {
		out[info.Collection] = append(out[info.Collection], info)
	}
	for _, name := range s.collectionNames() {
		if _, ok := out[name]; !ok {
			out[name] = nil
		}
	}
	return out
}

// IsFavorite reports whether the list at path is marked favorite.
func (s *Store) IsFavorite(path string) bool {
	for _, p := range s.meta.FavoriteLists {
		if p == path {
			return true
		}
	}
	return false
}

// listSummary mirrors just the header of a current-format file, so a
// summary read skips the album payloads entirely except for counting.
type listSummary struct {
	Metadata struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		DateModified string `json:"date_modified"`
		AlbumCount   int    `json:"album_count"`
	} `json:"metadata"`
	Albums []json.RawMessage `json:"albums"`
}

// listInfo builds a summary for the list at path. Unreadable files
// still yield a summary with the file name as the title, so broken
// lists remain visible (and deletable) instead of silently vanishing.
func (s *Store) listInfo(path string) ListInfo {
	info := ListInfo{
		Path:       path,
		FileName:   filepath.Base(path),
		Collection: s.CollectionForList(path),
		IsFavorite: s.IsFavorite(path),
	}
	info.Title = strings.TrimSuffix(info.FileName, filepath.Ext(info.FileName))

	if fi, err := os.Stat(path); err == nil {
		info.DateModified = fi.ModTime()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn("cannot read list for summary", "path", path, "error", err)
		return info
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		// Legacy bare array: the count is all the header can offer.
		var rows []json.RawMessage
		if err := json.Unmarshal(data, &rows); err == nil {
			info.AlbumCount = len(rows)
		}
		return info
	}

	var summary listSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		s.log.Warn("cannot parse list for summary", "path", path, "error", err)
		return info
	}

	if summary.Metadata.Title != "" {
		info.Title = summary.Metadata.Title
	}
	info.Description = summary.Metadata.Description
	info.AlbumCount = len(summary.Albums)
	if t := parseTimestampLoose(summary.Metadata.DateModified); !t.IsZero() {
		info.DateModified = t
	}
	return info
}

func parseTimestampLoose(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
