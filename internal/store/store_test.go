package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushe-ng/sushe/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), Options{})
	require.NoError(t, err)
	return s
}

func TestOpen_FirstRunCreatesDefaultCollection(t *testing.T) {
	root := t.TempDir()
	s, err := Open(root, Options{})
	require.NoError(t, err)

	byName := s.GetCollections()
	require.Contains(t, byName, "Default")

	info, err := os.Stat(filepath.Join(root, "collections", "Default"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpen_CustomDefaultCollection(t *testing.T) {
	s, err := Open(t.TempDir(), Options{DefaultCollection: "2026"})
	require.NoError(t, err)

	assert.Contains(t, s.GetCollections(), "2026")
}

func TestOpen_ExistingStoreGetsNoExtraDefault(t *testing.T) {
	root := t.TempDir()
	s, err := Open(root, Options{})
	require.NoError(t, err)
	require.True(t, s.RenameCollection("Default", "Mine"))

	s2, err := Open(root, Options{})
	require.NoError(t, err)

	byName := s2.GetCollections()
	assert.Contains(t, byName, "Mine")
	assert.NotContains(t, byName, "Default")
}

func TestOpen_CorruptSidecarStartsFresh(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "metadata.json"), []byte("{broken"), 0o644))

	s, err := Open(root, Options{})
	require.NoError(t, err)
	assert.Empty(t, s.GetRecentLists(0))
}

func TestSaveAndLoadList(t *testing.T) {
	s := openTestStore(t)

	albums := []model.Album{
		{
			Artist:      "Daft Punk",
			Title:       "Discovery",
			ReleaseDate: time.Date(2001, 3, 12, 0, 0, 0, 0, time.UTC),
			Genre1:      "House",
			Cover:       &model.CoverArt{Data: []byte{9, 8, 7}, Format: "jpeg"},
		},
		{Artist: "Burial", Title: "Untrue"},
	}
	meta := model.ListMetadata{Title: "Favorites"}

	path, err := s.SaveList(albums, meta, "")
	require.NoError(t, err)
	assert.Equal(t, "Favorites.sush", filepath.Base(path))
	assert.Equal(t, "Default", s.CollectionForList(path))

	got, gotMeta, err := s.LoadList(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Daft Punk", got[0].Artist)
	assert.True(t, got[0].HasCover())
	assert.Equal(t, "Favorites", gotMeta.Title)
	assert.Equal(t, "Default", gotMeta.Collection)
}

func TestSaveList_SanitizesFileName(t *testing.T) {
	s := openTestStore(t)

	path, err := s.SaveList(nil, model.ListMetadata{Title: "Best of 2024: Part 1/2"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Best of 2024_ Part 1_2.sush", filepath.Base(path))
}

func TestSaveList_TargetsNamedCollection(t *testing.T) {
	s := openTestStore(t)
	s.CreateCollection("Jazz")

	path, err := s.SaveList(nil, model.ListMetadata{Title: "Blue", Collection: "Jazz"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Jazz", s.CollectionForList(path))
}

func TestLoadList_LegacyFormat(t *testing.T) {
	s := openTestStore(t)

	legacy := filepath.Join(t.TempDir(), "old-list.json")
	data := `[{"artist": "Opeth", "album": "Blackwater Park", "release_date": "27-02-2001"}]`
	require.NoError(t, os.WriteFile(legacy, []byte(data), 0o644))

	albums, meta, err := s.LoadList(legacy)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, "Opeth", albums[0].Artist)
	assert.Equal(t, time.Date(2001, 2, 27, 0, 0, 0, 0, time.UTC), albums[0].ReleaseDate)
	assert.Equal(t, "old-list", meta.Title)
}

func TestLoadList_UnsupportedExtension(t *testing.T) {
	root := t.TempDir()
	s, err := Open(root, Options{})
	require.NoError(t, err)

	sidecarBefore, _ := os.ReadFile(filepath.Join(root, "metadata.json"))

	_, _, err = s.LoadList("/somewhere/list.txt")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	// A rejected extension must leave the sidecar untouched.
	sidecarAfter, _ := os.ReadFile(filepath.Join(root, "metadata.json"))
	assert.Equal(t, sidecarBefore, sidecarAfter)
	assert.Empty(t, s.GetRecentLists(0))
}

func TestLoadList_MissingFile(t *testing.T) {
	s := openTestStore(t)

	_, _, err := s.LoadList(filepath.Join(s.Root(), "collections", "Default", "nope.sush"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecentLists_OrderAndBound(t *testing.T) {
	s, err := Open(t.TempDir(), Options{RecentLimit: 10})
	require.NoError(t, err)

	var paths []string
	for _, title := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"} {
		p, err := s.SaveList(nil, model.ListMetadata{Title: title}, "")
		require.NoError(t, err)
		paths = append(paths, p)
	}

	recents := s.GetRecentLists(0)
	require.Len(t, recents, 10)
	// Most recent first; the two oldest fell off the end.
	assert.Equal(t, paths[11], recents[0].Path)
	assert.Equal(t, paths[2], recents[9].Path)
}

func TestRecentLists_ReopenMovesToFront(t *testing.T) {
	s := openTestStore(t)

	p1, err := s.SaveList(nil, model.ListMetadata{Title: "First"}, "")
	require.NoError(t, err)
	_, err = s.SaveList(nil, model.ListMetadata{Title: "Second"}, "")
	require.NoError(t, err)

	_, _, err = s.LoadList(p1)
	require.NoError(t, err)

	recents := s.GetRecentLists(0)
	require.NotEmpty(t, recents)
	assert.Equal(t, p1, recents[0].Path)
}

func TestRecentLists_StaleEntriesExcluded(t *testing.T) {
	s := openTestStore(t)

	p, err := s.SaveList(nil, model.ListMetadata{Title: "Doomed"}, "")
	require.NoError(t, err)
	require.NoError(t, os.Remove(p))

	assert.Empty(t, s.GetRecentLists(0))
}

func TestDeleteList(t *testing.T) {
	s := openTestStore(t)

	p, err := s.SaveList(nil, model.ListMetadata{Title: "Gone"}, "")
	require.NoError(t, err)
	require.True(t, s.ToggleFavorite(p))

	assert.True(t, s.DeleteList(p))
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, s.GetRecentLists(0))
	assert.Empty(t, s.GetFavoriteLists())

	// Deleting again reports absence.
	assert.False(t, s.DeleteList(p))
}

func TestToggleFavorite(t *testing.T) {
	s := openTestStore(t)

	p, err := s.SaveList(nil, model.ListMetadata{Title: "Keeper"}, "")
	require.NoError(t, err)

	assert.True(t, s.ToggleFavorite(p))
	require.Len(t, s.GetFavoriteLists(), 1)
	assert.True(t, s.GetFavoriteLists()[0].IsFavorite)

	assert.False(t, s.ToggleFavorite(p))
	assert.Empty(t, s.GetFavoriteLists())
}

func TestCreateCollection_ExistingIsNoOp(t *testing.T) {
	s := openTestStore(t)

	s.CreateCollection("Jazz")
	s.CreateCollection("Jazz")

	names := 0
	for name := range s.GetCollections() {
		if name == "Jazz" {
			names++
		}
	}
	assert.Equal(t, 1, names)
}

func TestRenameCollection(t *testing.T) {
	s := openTestStore(t)
	s.CreateCollection("Jazz")

	p, err := s.SaveList(nil, model.ListMetadata{Title: "Blue", Collection: "Jazz"}, "")
	require.NoError(t, err)
	require.True(t, s.ToggleFavorite(p))

	require.True(t, s.RenameCollection("Jazz", "Jazz Classics"))

	byName := s.GetCollections()
	assert.NotContains(t, byName, "Jazz")
	require.Contains(t, byName, "Jazz Classics")
	require.Len(t, byName["Jazz Classics"], 1)

	// Sidecar references follow the move.
	recents := s.GetRecentLists(0)
	require.Len(t, recents, 1)
	assert.Equal(t, "Jazz Classics", recents[0].Collection)
	require.Len(t, s.GetFavoriteLists(), 1)
}

func TestRenameCollection_Refusals(t *testing.T) {
	s := openTestStore(t)
	s.CreateCollection("A")
	s.CreateCollection("B")

	assert.False(t, s.RenameCollection("Missing", "C"), "missing source")
	assert.False(t, s.RenameCollection("A", "B"), "existing target")
	assert.False(t, s.RenameCollection("", "C"), "blank source")
	assert.False(t, s.RenameCollection("A", " "), "blank target")
}

func TestDeleteCollection(t *testing.T) {
	s := openTestStore(t)
	s.CreateCollection("Doomed")

	p, err := s.SaveList(nil, model.ListMetadata{Title: "Inside", Collection: "Doomed"}, "")
	require.NoError(t, err)

	require.True(t, s.DeleteCollection("Doomed"))
	assert.NotContains(t, s.GetCollections(), "Doomed")
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, s.GetRecentLists(0))

	assert.False(t, s.DeleteCollection("Doomed"))
}

func TestImportExternal(t *testing.T) {
	s := openTestStore(t)

	external := filepath.Join(t.TempDir(), "top-2019.json")
	data := `[{"artist": "Lingua Ignota", "album": "Caligula", "release_date": "19-07-2019"}]`
	require.NoError(t, os.WriteFile(external, []byte(data), 0o644))

	newPath, ok := s.ImportExternal(external)
	require.True(t, ok)
	assert.Equal(t, "top-2019.sush", filepath.Base(newPath))
	assert.Equal(t, "Default", s.CollectionForList(newPath))

	// The in-store copy is in the history; the external path is not.
	recents := s.GetRecentLists(0)
	require.Len(t, recents, 1)
	assert.Equal(t, newPath, recents[0].Path)
}

func TestImportExternal_Failures(t *testing.T) {
	s := openTestStore(t)

	_, ok := s.ImportExternal("/does/not/exist.json")
	assert.False(t, ok)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{nope"), 0o644))
	_, ok = s.ImportExternal(bad)
	assert.False(t, ok)

	_, ok = s.ImportExternal("/some/file.txt")
	assert.False(t, ok)
}

func TestMigrateFromPaths(t *testing.T) {
	s := openTestStore(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`[{"artist": "A", "album": "B", "release_date": "01-01-2020"}]`), 0o644))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))

	imported, total := s.MigrateFromPaths([]string{
		good,
		bad,
		filepath.Join(dir, "absent.json"), // skipped, not counted
	})

	assert.Equal(t, 1, imported)
	assert.Equal(t, 2, total)
}

func TestGetAllLists_SortedByModification(t *testing.T) {
	s := openTestStore(t)

	p1, err := s.SaveList(nil, model.ListMetadata{Title: "Older"}, "")
	require.NoError(t, err)
	p2, err := s.SaveList(nil, model.ListMetadata{Title: "Newer"}, "")
	require.NoError(t, err)

	// Force distinct file mtimes regardless of encode timestamps.
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(p1, old, old))

	infos := s.GetAllLists()
	require.Len(t, infos, 2)
	assert.Equal(t, p2, infos[0].Path)
	assert.Equal(t, "Newer", infos[0].Title)
	assert.Equal(t, p1, infos[1].Path)
}

func TestGetCollections_IncludesEmpty(t *testing.T) {
	s := openTestStore(t)
	s.CreateCollection("Empty")

	byName := s.GetCollections()
	require.Contains(t, byName, "Empty")
	assert.Empty(t, byName["Empty"])
}

func TestListInfo_CountsWithoutDecodingCovers(t *testing.T) {
	s := openTestStore(t)

	albums := []model.Album{
		{Artist: "A", Title: "One", Cover: &model.CoverArt{Data: []byte{1}, Format: "png"}},
		{Artist: "A", Title: "Two"},
		{Artist: "A", Title: "Three"},
	}
	p, err := s.SaveList(albums, model.ListMetadata{Title: "Counted"}, "")
	require.NoError(t, err)

	info := s.listInfo(p)
	assert.Equal(t, 3, info.AlbumCount)
	assert.Equal(t, "Counted", info.Title)
}

func TestCollectionForList(t *testing.T) {
	s := openTestStore(t)

	inside := filepath.Join(s.Root(), "collections", "Jazz", "list.sush")
	assert.Equal(t, "Jazz", s.CollectionForList(inside))

	outside := filepath.Join(t.TempDir(), "list.sush")
	assert.Equal(t, "", s.CollectionForList(outside))
}

func TestSidecarSurvivesReopen(t *testing.T) {
	root := t.TempDir()
	s, err := Open(root, Options{})
	require.NoError(t, err)

	p, err := s.SaveList(nil, model.ListMetadata{Title: "Persist"}, "")
	require.NoError(t, err)
	require.True(t, s.ToggleFavorite(p))

	s2, err := Open(root, Options{})
	require.NoError(t, err)

	recents := s2.GetRecentLists(0)
	require.Len(t, recents, 1)
	assert.Equal(t, p, recents[0].Path)
	require.Len(t, s2.GetFavoriteLists(), 1)
}
