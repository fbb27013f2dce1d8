package tagimport

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushe-ng/sushe/internal/model"
)

// stubReader serves canned tags keyed by file base name.
type stubReader struct {
	tags map[string]tagInfo
	errs map[string]error
}

func (r stubReader) ReadTags(path string) (tagInfo, error) {
	base := filepath.Base(path)
	if err, ok := r.errs[base]; ok {
		return tagInfo{}, err
	}
	return r.tags[base], nil
}

func touchMP3(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("ID3"), 0o644))
}

func TestAlbumFromTags(t *testing.T) {
	imp := New(nil)

	album, ok := imp.albumFromTags(tagInfo{
		Artist:      "Opeth",
		Album:       "Blackwater Park",
		Year:        "2001",
		Genre:       "Progressive Metal",
		CoverData:   []byte{1, 2},
		CoverFormat: "jpeg",
	})
	require.True(t, ok)
	assert.Equal(t, "Opeth", album.Artist)
	assert.Equal(t, "Blackwater Park", album.Title)
	assert.Equal(t, "Progressive Metal", album.Genre1)
	assert.Equal(t, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC), album.ReleaseDate)
	require.True(t, album.HasCover())
	assert.Equal(t, "jpeg", album.Cover.Format)
}

func TestAlbumFromTags_Rejections(t *testing.T) {
	imp := New(nil)

	_, ok := imp.albumFromTags(tagInfo{})
	assert.False(t, ok, "empty tags")

	album, ok := imp.albumFromTags(tagInfo{Artist: "Burial", Year: "nineteen"})
	assert.True(t, ok, "artist alone is enough")
	assert.False(t, album.HasReleaseDate(), "unparseable year stays unknown")
}

func pngCover(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeCover_ResizesOversizedCovers(t *testing.T) {
	imp := New(nil)

	album := model.Album{
		Artist: "Opeth",
		Title:  "Blackwater Park",
		Cover:  &model.CoverArt{Data: pngCover(t, 800, 600), Format: "png"},
	}
	imp.normalizeCover(context.Background(), &album)

	require.True(t, album.HasCover())
	assert.Equal(t, "jpeg", album.Cover.Format)

	img, format, err := image.Decode(bytes.NewReader(album.Cover.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 500, img.Bounds().Dx())
	assert.Equal(t, 375, img.Bounds().Dy())
}

func TestNormalizeCover_KeepsUndecodablePayloads(t *testing.T) {
	imp := New(nil)

	cover := &model.CoverArt{Data: []byte{1, 2, 3}, Format: "png"}
	album := model.Album{Artist: "A", Title: "B", Cover: cover}
	imp.normalizeCover(context.Background(), &album)

	assert.Equal(t, cover, album.Cover)
}

func TestFormatFromMime(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/jpeg", "jpeg"},
		{"image/jpg", "jpeg"},
		{"IMAGE/PNG", "png"},
		{"image/gif", "gif"},
		{"application/octet-stream", "jpeg"},
		{"", "jpeg"},
	}
	for _, tt := range tests {
		if got := formatFromMime(tt.mime); got != tt.want {
			t.Errorf("formatFromMime(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	touchMP3(t, dir, "track1.mp3")
	touchMP3(t, dir, "track2.mp3")
	touchMP3(t, dir, "other.mp3")
	touchMP3(t, dir, "broken.mp3")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	imp := New(nil)
	imp.reader = stubReader{
		tags: map[string]tagInfo{
			// Two tracks of the same album collapse into one entry.
			"track1.mp3": {Artist: "Opeth", Album: "Blackwater Park"},
			"track2.mp3": {Artist: "Opeth", Album: "Blackwater Park", CoverData: []byte{5}, CoverFormat: "png"},
			"other.mp3":  {Artist: "Burial", Album: "Untrue"},
		},
		errs: map[string]error{
			"broken.mp3": errors.New("no tags"),
		},
	}

	albums, err := imp.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, albums, 2)

	// Sorted by artist, album.
	assert.Equal(t, "Burial", albums[0].Artist)
	assert.Equal(t, "Opeth", albums[1].Artist)

	// The duplicate's cover filled the gap in the first-seen entry.
	assert.True(t, albums[1].HasCover())
}

func TestScanDirectory_MissingRoot(t *testing.T) {
	imp := New(nil)
	_, err := imp.ScanDirectory(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestScanDirectory_Canceled(t *testing.T) {
	dir := t.TempDir()
	touchMP3(t, dir, "a.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	imp := New(nil)
	imp.reader = stubReader{tags: map[string]tagInfo{"a.mp3": {Artist: "X", Album: "Y"}}}

	_, err := imp.ScanDirectory(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}
