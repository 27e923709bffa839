package wind

import (
	"image"
)

// DrawState tracks the area a view paints into and whether it needs to
// be painted again.
type DrawState struct {
	rect        image.Rectangle // drawing rectangle
	needsRedraw bool            // true when a redraw is pending
}

// NewDrawState creates a DrawState for r. A new state needs drawing.
func NewDrawState(r image.Rectangle) *DrawState {
	return &DrawState{rect: r, needsRedraw: true}
}

// Rect returns the drawing rectangle.
func (ds *DrawState) Rect() image.Rectangle {
	return ds.rect
}

// SetRect sets the drawing rectangle.
func (ds *DrawState) SetRect(r image.Rectangle) {
	if !ds.rect.Eq(r) {
		ds.needsRedraw = true
	}
	ds.rect = r
}

// Body returns the drawing rectangle less a margin of m on every side.
func (ds *DrawState) Body(m int) image.Rectangle {
	return ds.rect.Inset(m)
}

// Invalidate records that a redraw is needed.
func (ds *DrawState) Invalidate() {
	ds.needsRedraw = true
}

// NeedsRedraw returns true if the view needs to be redrawn.
func (ds *DrawState) NeedsRedraw() bool {
	return ds.needsRedraw
}

// ClearRedrawFlag clears the redraw flag after drawing.
func (ds *DrawState) ClearRedrawFlag() {
	ds.needsRedraw = false
}
