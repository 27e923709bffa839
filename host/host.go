// Package host describes what the image controllers need from the
// document-editing environment they run inside, and provides an
// in-memory implementation of it.
package host

// View is an editable view onto a document. Only whole-buffer reads and
// writes are supported.
type View interface {
	// Text returns the full current document text.
	Text() string
	// SetText replaces the full document text.
	SetText(text string)
}

// Workspace resolves the currently active file and editable view. Either
// may be absent, in which case callers do nothing.
type Workspace interface {
	ActiveFile() (name string, ok bool)
	ActiveView() (View, bool)
}

// Notifier shows a short-lived status message to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg string)

// Notify calls f(msg).
func (f NotifierFunc) Notify(msg string) { f(msg) }
