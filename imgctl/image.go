// Package imgctl implements interactive resizing, selection and deletion
// of images embedded in a rendered document, and keeps the document's
// ![[path|W]] embeds in step with what the user does on screen.
//
// The on-screen size of an image is changed continuously during a drag
// and the document text is rewritten once, on release. The rendered
// image is tied back to its source line with embed.Locate, so when two
// embeds refer to the same path the first line wins.
package imgctl

import (
	"image"

	"github.com/rjkroege/imgembed/embed"
)

// Outline is the visual state of an image's border.
type Outline int

const (
	OutlineNone Outline = iota
	// OutlineActive marks the image being resized.
	OutlineActive
	// OutlineSelected marks the selected image.
	OutlineSelected
)

func (o Outline) String() string {
	switch o {
	case OutlineNone:
		return "none"
	case OutlineActive:
		return "active"
	case OutlineSelected:
		return "selected"
	}
	return "unknown"
}

// Image is a rendered image owned by the host. The controller keeps only
// non-owning references and compares them by identity, so
// implementations should be pointer types.
type Image interface {
	Alt() string
	Src() string
	// NaturalSize is the pixel size of the decoded image.
	NaturalSize() image.Point
	// Rect is the current on-screen box.
	Rect() image.Rectangle
	// SetSize changes the rendered size without touching the document.
	SetSize(w, h int)
	SetOutline(o Outline)
	// Connected reports whether the image is still part of the view.
	Connected() bool
}

// Painter draws the handle affordance. Coordinates are those of the
// events delivered on the bus.
type Painter interface {
	ShowHandle(box, corner image.Rectangle)
	MoveHandle(box, corner image.Rectangle)
	HideHandle()
}

func targetOf(img Image) embed.Target {
	return embed.Target{Alt: img.Alt(), Src: img.Src()}
}

// aspectOf returns width/height from the natural size, falling back to
// the rendered box and then to 1.
func aspectOf(img Image) float64 {
	if n := img.NaturalSize(); n.X > 0 && n.Y > 0 {
		return float64(n.X) / float64(n.Y)
	}
	if r := img.Rect(); r.Dx() > 0 && r.Dy() > 0 {
		return float64(r.Dx()) / float64(r.Dy())
	}
	return 1
}
