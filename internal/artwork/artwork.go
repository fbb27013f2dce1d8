package artwork

import (
	"bytes"
	"context"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// Service provides image processing operations for album cover art.
//
// Service is used to:
//   - Detect the format of cover payloads loaded from list files
//   - Resize covers to fit maximum dimensions before inline storage
//   - Convert covers to JPEG for smaller list files
//
// Example usage:
//
//	svc := artwork.NewService()
//
//	format, ok := svc.DetectFormat(coverData)
//
//	// Resize to max 500x500 and store as JPEG
//	resized, _ := svc.Resize(ctx, coverData, 500, 500)
type Service struct{}

// NewService creates a new Service.
func NewService() *Service {
	return &Service{}
}

// DetectFormat sniffs the image format of the given payload from its
// magic bytes. It reports "jpeg", "png" or "gif", and false for
// anything it does not recognize.
//
// Only the header is inspected; a recognized format does not guarantee
// the rest of the payload decodes.
func (s *Service) DetectFormat(data []byte) (string, bool) {
	switch {
	case len(data) >= 3 && bytes.Equal(data[:3], []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg", true
	case len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}):
		return "png", true
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return "gif", true
	default:
		return "", false
	}
}

// Resize resizes a cover image to fit within the specified maximum
// dimensions, preserving the aspect ratio. An image already within
// bounds is still re-encoded as JPEG.
//
// Returns the resized image as JPEG-encoded bytes. The Catmull-Rom
// algorithm is used for high-quality resizing.
//
// Example:
//
//	// Resize to fit within 1000x1000, maintaining aspect ratio
//	resized, err := svc.Resize(ctx, coverData, 1000, 1000)
//	// A 1500x1000 image becomes 1000x667
//	// A 800x600 image remains 800x600 (but re-encoded)
func (s *Service) Resize(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Calculate new dimensions maintaining aspect ratio
	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			// Width is the limiting factor
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	// Use Catmull-Rom for high-quality scaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ConvertToJPEG converts a cover image to JPEG format.
//
// This keeps inline base64 payloads small compared to PNG and gives
// list files a consistent cover encoding.
//
// Note: if the input is already JPEG, it will be re-encoded, which may
// slightly change file size but ensures consistent encoding.
func (s *Service) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
