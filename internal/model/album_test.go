package model

import (
	"testing"
	"time"
)

func TestAlbum_String(t *testing.T) {
	dated := Album{
		Artist:      "Daft Punk",
		Title:       "Discovery",
		ReleaseDate: time.Date(2001, 3, 12, 0, 0, 0, 0, time.UTC),
	}
	if got := dated.String(); got != "Daft Punk - Discovery (2001)" {
		t.Errorf("String() = %q", got)
	}

	undated := Album{Artist: "Burial", Title: "Untrue"}
	if got := undated.String(); got != "Burial - Untrue" {
		t.Errorf("String() = %q", got)
	}
}

func TestAlbum_HasCover(t *testing.T) {
	var a Album
	if a.HasCover() {
		t.Error("nil cover should report false")
	}

	a.Cover = &CoverArt{}
	if a.HasCover() {
		t.Error("empty cover payload should report false")
	}

	a.Cover = &CoverArt{Data: []byte{1}, Format: "png"}
	if !a.HasCover() {
		t.Error("non-empty cover should report true")
	}
}

func TestAlbum_IsBlank(t *testing.T) {
	if !(&Album{}).IsBlank() {
		t.Error("zero album should be blank")
	}
	if (&Album{Artist: "X"}).IsBlank() {
		t.Error("album with artist should not be blank")
	}
	if (&Album{Title: "Y"}).IsBlank() {
		t.Error("album with title should not be blank")
	}
}
