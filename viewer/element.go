package viewer

import (
	"image"
	"math"

	"github.com/rjkroege/imgembed/imgctl"
	"github.com/rjkroege/imgembed/markdown"
	"github.com/rjkroege/imgembed/rich"
)

// Placeholder size for images that could not be loaded.
const (
	placeholderWidth  = 160
	placeholderHeight = 40
)

// Element is one rendered image. It implements imgctl.Image.
type Element struct {
	view    *View
	im      markdown.Image
	cached  *rich.CachedImage // nil or with Err set when loading failed
	size    image.Point
	rect    image.Rectangle
	outline imgctl.Outline
	gone    bool
}

var _ imgctl.Image = (*Element)(nil)

func (e *Element) Alt() string { return e.im.Alt }
func (e *Element) Src() string { return e.im.Src }

// NaturalSize returns the decoded size, or zero when loading failed.
func (e *Element) NaturalSize() image.Point {
	if !e.loaded() {
		return image.Point{}
	}
	return e.cached.Size()
}

func (e *Element) Rect() image.Rectangle { return e.rect }

// SetSize changes the rendered size and lays the view out again.
func (e *Element) SetSize(w, h int) {
	e.size = image.Pt(w, h)
	e.view.layout()
	e.view.invalidate()
}

func (e *Element) SetOutline(o imgctl.Outline) {
	e.outline = o
	e.view.invalidate()
}

func (e *Element) Connected() bool { return !e.gone }

// Embed returns the markdown image the element was rendered from.
func (e *Element) Embed() markdown.Image { return e.im }

func (e *Element) loaded() bool {
	return e.cached != nil && e.cached.Err == nil && e.cached.Original != nil
}

// renderSize returns the on-screen size for im given its natural size.
// An embed width wins; otherwise the natural size is used, narrowed to
// maxWidth when that is positive.
func renderSize(im markdown.Image, natural image.Point, maxWidth int) image.Point {
	known := natural.X > 0 && natural.Y > 0
	switch {
	case im.Width > 0:
		w := im.Width
		switch {
		case im.Height > 0:
			return image.Pt(w, im.Height)
		case known:
			return image.Pt(w, int(math.Round(float64(w)*float64(natural.Y)/float64(natural.X))))
		}
		return image.Pt(w, w)
	case known:
		if maxWidth > 0 && natural.X > maxWidth {
			h := int(math.Round(float64(maxWidth) * float64(natural.Y) / float64(natural.X)))
			return image.Pt(maxWidth, max(h, 1))
		}
		return natural
	}
	return image.Pt(placeholderWidth, placeholderHeight)
}
