package imgctl

import (
	"image"

	"github.com/rjkroege/imgembed/wind"
)

// Handle is the affordance floating over the hovered image. It is a
// wind.Target in its own right: viewers address pointer events to it
// when the pointer is over the corner control.
type Handle struct {
	img  Image
	box  image.Rectangle
	size int

	regs []*wind.Registration
}

// Image returns the image the handle is tracking.
func (h *Handle) Image() Image {
	return h.img
}

// Box returns the tracked image box as of the last update.
func (h *Handle) Box() image.Rectangle {
	return h.box
}

// Corner returns the draggable control: a square at the bottom right of
// the box, clipped to it.
func (h *Handle) Corner() image.Rectangle {
	c := image.Rect(h.box.Max.X-h.size, h.box.Max.Y-h.size, h.box.Max.X, h.box.Max.Y)
	return c.Intersect(h.box)
}

// Contains reports whether pt is over the corner control.
func (h *Handle) Contains(pt image.Point) bool {
	return pt.In(h.Corner())
}

func (h *Handle) track() {
	h.box = h.img.Rect()
}

func (h *Handle) cancel() {
	for _, r := range h.regs {
		r.Cancel()
	}
	h.regs = nil
}
