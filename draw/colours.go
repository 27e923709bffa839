package draw

import (
	"fmt"
	"image"
)

// Colours hands out replicated one pixel images of solid colours for use
// as draw sources, allocating each on first use.
type Colours struct {
	display Display
	images  map[Color]Image
}

// NewColours returns an empty set of colours on d.
func NewColours(d Display) *Colours {
	return &Colours{display: d, images: make(map[Color]Image)}
}

// Get returns the image for c. When it can't be allocated, Get returns
// the display's black together with the error so that callers can still
// draw something.
func (cs *Colours) Get(c Color) (Image, error) {
	if img, ok := cs.images[c]; ok {
		return img, nil
	}
	img, err := cs.display.AllocImage(image.Rect(0, 0, 1, 1), RGBA32, true, c)
	if err != nil {
		return cs.display.Black(), fmt.Errorf("can't allocate colour %#08x: %w", uint32(c), err)
	}
	cs.images[c] = img
	return img, nil
}

// Len returns the number of allocated colours.
func (cs *Colours) Len() int {
	return len(cs.images)
}

// Free releases every allocated colour.
func (cs *Colours) Free() {
	for c, img := range cs.images {
		img.Free()
		delete(cs.images, c)
	}
}
