package artwork

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// pngImage encodes a solid-color PNG of the given size.
func pngImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	svc := NewService()

	tests := []struct {
		name string
		data []byte
		want string
		ok   bool
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, "jpeg", true},
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0x00}, "png", true},
		{"gif87", []byte("GIF87a trailing"), "gif", true},
		{"gif89", []byte("GIF89a trailing"), "gif", true},
		{"unknown", []byte("BM bitmap header"), "", false},
		{"empty", nil, "", false},
		{"truncated", []byte{0xFF}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := svc.DetectFormat(tt.data)
			if got != tt.want || ok != tt.ok {
				t.Errorf("DetectFormat() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestResize_Downscales(t *testing.T) {
	svc := NewService()
	src := pngImage(t, 300, 200)

	out, err := svc.Resize(context.Background(), src, 150, 150)
	if err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding resized image: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("resized format = %q, want jpeg", format)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 150 || bounds.Dy() != 100 {
		t.Errorf("resized to %dx%d, want 150x100", bounds.Dx(), bounds.Dy())
	}
}

func TestResize_KeepsSmallImages(t *testing.T) {
	svc := NewService()
	src := pngImage(t, 80, 60)

	out, err := svc.Resize(context.Background(), src, 150, 150)
	if err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding resized image: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 80 || bounds.Dy() != 60 {
		t.Errorf("resized to %dx%d, want unchanged 80x60", bounds.Dx(), bounds.Dy())
	}
}

func TestResize_BadInput(t *testing.T) {
	svc := NewService()
	if _, err := svc.Resize(context.Background(), []byte("not an image"), 100, 100); err == nil {
		t.Error("Resize() with garbage input should fail")
	}
}

func TestConvertToJPEG(t *testing.T) {
	svc := NewService()
	src := pngImage(t, 40, 40)

	out, err := svc.ConvertToJPEG(context.Background(), src)
	if err != nil {
		t.Fatalf("ConvertToJPEG() error = %v", err)
	}

	format, ok := svc.DetectFormat(out)
	if !ok || format != "jpeg" {
		t.Errorf("converted format = %q, want jpeg", format)
	}
}
