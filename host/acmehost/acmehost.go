// Package acmehost lets the image controllers edit the body of an
// Acme/Edwood window through the acme file system.
package acmehost

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"9fans.net/go/acme"
	"github.com/rjkroege/imgembed/host"
)

// Window is an open acme window. It implements host.View,
// host.Workspace and host.Notifier.
type Window struct {
	win    *acme.Win
	id     int
	name   string
	logger *log.Logger
}

var (
	_ host.View      = (*Window)(nil)
	_ host.Workspace = (*Window)(nil)
	_ host.Notifier  = (*Window)(nil)
)

type option func(*Window) error

// WithLogger directs diagnostics to l instead of the standard logger.
func WithLogger(l *log.Logger) option {
	return func(w *Window) error {
		w.logger = l
		return nil
	}
}

// Open opens the window with the given id.
func Open(id int, opts ...option) (*Window, error) {
	win, err := acme.Open(id, nil)
	if err != nil {
		return nil, fmt.Errorf("acmehost acme.Open %d: %w", id, err)
	}
	w := &Window{win: win, id: id, logger: log.Default()}

	allerrs := make([]error, 0)
	for _, opt := range opts {
		allerrs = append(allerrs, opt(w))
	}
	if err := errors.Join(allerrs...); err != nil {
		win.CloseFiles()
		return nil, err
	}

	tag, err := win.ReadAll("tag")
	if err != nil {
		win.CloseFiles()
		return nil, fmt.Errorf("acmehost read tag: %w", err)
	}
	w.name = TagName(string(tag))
	return w, nil
}

// OpenCurrent opens the window named by $winid, which acme sets for
// commands executed from a window.
func OpenCurrent(opts ...option) (*Window, error) {
	id, err := ParseWinID(os.Getenv("winid"))
	if err != nil {
		return nil, err
	}
	return Open(id, opts...)
}

// OpenNamed opens the first window whose file name is name.
func OpenNamed(name string, opts ...option) (*Window, error) {
	wins, err := acme.Windows()
	if err != nil {
		return nil, fmt.Errorf("acmehost acme.Windows list was not available: %w", err)
	}
	for _, wi := range wins {
		if wi.Name == name {
			return Open(wi.ID, opts...)
		}
	}
	return nil, fmt.Errorf("acmehost no window for %q", name)
}

// ParseWinID parses the value of $winid.
func ParseWinID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("acmehost $winid is not set")
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("acmehost bad $winid %q", s)
	}
	return id, nil
}

// TagName extracts the file name from the text of a window tag.
func TagName(tag string) string {
	name, _, _ := strings.Cut(strings.TrimLeft(tag, " \t"), " ")
	return name
}

// ID returns the acme window id.
func (w *Window) ID() int { return w.id }

// Text returns the window body. Read failures are logged and yield "".
func (w *Window) Text() string {
	b, err := w.win.ReadAll("body")
	if err != nil {
		w.logger.Printf("acmehost read body of %d: %v", w.id, err)
		return ""
	}
	return string(b)
}

// SetText replaces the entire window body.
func (w *Window) SetText(text string) {
	if err := w.win.Addr(","); err != nil {
		w.logger.Printf("acmehost addr of %d: %v", w.id, err)
		return
	}
	if _, err := w.win.Write("data", []byte(text)); err != nil {
		w.logger.Printf("acmehost write data of %d: %v", w.id, err)
	}
}

// ActiveFile returns the window's file name.
func (w *Window) ActiveFile() (string, bool) {
	if w == nil || w.win == nil || w.name == "" {
		return "", false
	}
	return w.name, true
}

// ActiveView returns the window itself while it is open.
func (w *Window) ActiveView() (host.View, bool) {
	if w == nil || w.win == nil {
		return nil, false
	}
	return w, true
}

// Notify shows msg in the +Errors window associated with this window.
func (w *Window) Notify(msg string) {
	acme.Err(w.name, msg)
}

// Close releases the acme files. The window itself stays open in acme.
func (w *Window) Close() {
	if w.win != nil {
		w.win.CloseFiles()
		w.win = nil
	}
}
