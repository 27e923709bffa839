// Package wind provides the pointer and keyboard event vocabulary shared by
// the preview and the image controllers, and the Bus that delivers events
// to registered listeners.
package wind

import (
	"fmt"
	"image"
)

// MouseButton represents a mouse button state.
type MouseButton int

const (
	// MouseB1 is button 1 (left click).
	MouseB1 MouseButton = 1 << iota
	// MouseB2 is button 2 (middle click).
	MouseB2
	// MouseB3 is button 3 (right click).
	MouseB3
	// MouseB4 is button 4 (scroll up).
	MouseB4
	// MouseB5 is button 5 (scroll down).
	MouseB5
)

// EventType represents the type of event being dispatched.
type EventType int

const (
	// EventNone indicates no event.
	EventNone EventType = iota
	// EventPointerEnter is sent to a target when the pointer moves onto it.
	EventPointerEnter
	// EventPointerLeave is sent to a target when the pointer moves off it.
	// Related holds the target being entered, if any.
	EventPointerLeave
	// EventPointerDown indicates a button press.
	EventPointerDown
	// EventPointerMove indicates pointer motion.
	EventPointerMove
	// EventPointerUp indicates a button release.
	EventPointerUp
	// EventClick indicates a press and release without intervening drag.
	EventClick
	// EventKeyDown indicates a key press. Key holds its name.
	EventKeyDown
)

var eventNames = [...]string{
	EventNone:         "none",
	EventPointerEnter: "pointerenter",
	EventPointerLeave: "pointerleave",
	EventPointerDown:  "pointerdown",
	EventPointerMove:  "pointermove",
	EventPointerUp:    "pointerup",
	EventClick:        "click",
	EventKeyDown:      "keydown",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventNames) {
		return eventNames[t]
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Key names delivered with EventKeyDown.
const (
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
	KeyEscape    = "Escape"
)

// Target is anything that can receive events: rendered images, the resize
// handle and so on. Targets are compared by identity.
type Target interface{}

// Event is a single pointer or keyboard event.
type Event struct {
	Type    EventType
	Pos     image.Point
	Buttons MouseButton
	Key     string

	// Target is the element under the pointer, or nil for events not
	// addressed to any element.
	Target Target
	// Related is the element being entered on EventPointerLeave.
	Related Target

	prevented bool
}

// PreventDefault stops the host from running its own behaviour for the event.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

func (e *Event) String() string {
	return fmt.Sprintf("%v pos=%v buttons=%d key=%q", e.Type, e.Pos, e.Buttons, e.Key)
}
