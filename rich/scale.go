package rich

import (
	"fmt"
	"image"

	"github.com/rjkroege/imgembed/draw"
	xdraw "golang.org/x/image/draw"
)

// Scale returns img resized to w by h with bilinear interpolation. The
// original is returned when it already has that size.
func Scale(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)
	return scaled
}

// Blit draws ci scaled to fill dst, clipped to clip, onto target.
func Blit(target draw.Image, ci *CachedImage, dst, clip image.Rectangle) error {
	if ci == nil || ci.Original == nil {
		return fmt.Errorf("rich.Blit: no image")
	}
	clipped := dst.Intersect(clip)
	if clipped.Empty() {
		return nil
	}

	w, h := dst.Dx(), dst.Dy()
	data := ci.Data
	if w != ci.Width || h != ci.Height {
		var err error
		data, err = ConvertToPlan9(Scale(ci.Original, w, h))
		if err != nil {
			return err
		}
	}

	srcRect := image.Rect(0, 0, w, h)
	src, err := target.Display().AllocImage(srcRect, draw.RGBA32, false, draw.Notacolor)
	if err != nil {
		return fmt.Errorf("rich.Blit: alloc: %w", err)
	}
	defer src.Free()
	if _, err := src.Load(srcRect, data); err != nil {
		return fmt.Errorf("rich.Blit: load: %w", err)
	}

	target.Draw(clipped, src, nil, clipped.Min.Sub(dst.Min))
	return nil
}
