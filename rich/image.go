// Package rich loads, caches and scales the images shown in the preview
// and moves their pixels onto a draw.Display.
package rich

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Image size limits to prevent memory exhaustion.
const (
	MaxImageWidth  = 4096             // Maximum width in pixels
	MaxImageHeight = 4096             // Maximum height in pixels
	MaxImageBytes  = 16 * 1024 * 1024 // 16MB uncompressed (RGBA at 4 bytes/pixel)
)

// LoadImage loads an image from a file path, applying any EXIF
// orientation. The size limits are checked against the header before
// the pixels are decoded.
func LoadImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if err := checkSize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if err := checkSize(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	return img, nil
}

func checkSize(width, height int) error {
	if width > MaxImageWidth || height > MaxImageHeight {
		return fmt.Errorf("image too large: %dx%d (max %dx%d)",
			width, height, MaxImageWidth, MaxImageHeight)
	}
	if n := width * height * 4; n > MaxImageBytes {
		return fmt.Errorf("image uncompressed size exceeds limit: %d bytes (max %d bytes)",
			n, MaxImageBytes)
	}
	return nil
}

// ConvertToPlan9 returns the pixels of img as premultiplied R, G, B, A
// bytes in row order, the layout loaded into an RGBA32 draw image.
func ConvertToPlan9(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("ConvertToPlan9: nil image")
	}
	b := img.Bounds()
	data := make([]byte, 0, b.Dx()*b.Dy()*4)

	if rgba, ok := img.(*image.RGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := rgba.PixOffset(b.Min.X, y)
			data = append(data, rgba.Pix[i:i+b.Dx()*4]...)
		}
		return data, nil
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// RGBA() is already alpha-premultiplied.
			r, g, bl, a := img.At(x, y).RGBA()
			data = append(data, byte(r>>8), byte(g>>8), byte(bl>>8), byte(a>>8))
		}
	}
	return data, nil
}
