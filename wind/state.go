package wind

import "image"

// PointerState tracks what a raw mouse stream has done so far so that it
// can be turned into enter/leave/down/move/up/click events. This
// encapsulates state that a window event loop would otherwise keep in
// loose variables.
type PointerState struct {
	lastPos     image.Point
	lastButtons MouseButton
	hover       Target      // element under the pointer
	pressPos    image.Point // where button 1 went down
	pressTarget Target      // element under the pointer at press
	dragged     bool        // moved beyond the click slop since press
}

// NewPointerState creates a PointerState with nothing hovered or pressed.
func NewPointerState() *PointerState {
	return &PointerState{}
}

// LastPos returns the last known pointer position.
func (ps *PointerState) LastPos() image.Point {
	return ps.lastPos
}

// LastButtons returns the last known button state.
func (ps *PointerState) LastButtons() MouseButton {
	return ps.lastButtons
}

// Hover returns the element currently under the pointer.
func (ps *PointerState) Hover() Target {
	return ps.hover
}

// SetHover records the element under the pointer and returns the
// previous one.
func (ps *PointerState) SetHover(t Target) Target {
	prev := ps.hover
	ps.hover = t
	return prev
}

// Pressed reports whether button 1 is held.
func (ps *PointerState) Pressed() bool {
	return ps.lastButtons&MouseB1 != 0
}

// Press records a button 1 press at pt over target.
func (ps *PointerState) Press(pt image.Point, target Target) {
	ps.pressPos = pt
	ps.pressTarget = target
	ps.dragged = false
}

// PressTarget returns the element under the pointer when button 1 went down.
func (ps *PointerState) PressTarget() Target {
	return ps.pressTarget
}

// Moved notes pointer motion while pressed. Motion further than slop
// pixels on either axis turns the press into a drag.
func (ps *PointerState) Moved(pt image.Point, slop int) {
	d := pt.Sub(ps.pressPos)
	if abs(d.X) > slop || abs(d.Y) > slop {
		ps.dragged = true
	}
}

// Dragged reports whether the current press has become a drag.
func (ps *PointerState) Dragged() bool {
	return ps.dragged
}

// Update records the latest position and buttons and returns the
// previous button state.
func (ps *PointerState) Update(pt image.Point, buttons MouseButton) MouseButton {
	prev := ps.lastButtons
	ps.lastPos = pt
	ps.lastButtons = buttons
	return prev
}

// Reset forgets everything, as after the window loses the pointer.
func (ps *PointerState) Reset() {
	*ps = PointerState{}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
