// Package viewer is an interactive preview of the images embedded in a
// markdown document. It turns raw mouse and keyboard input into wind
// events and lets an imgctl.Controller resize and delete the images.
package viewer

import (
	"context"
	"image"
	"log"
	"path/filepath"
	"strings"

	"github.com/rjkroege/imgembed/draw"
	"github.com/rjkroege/imgembed/imgctl"
	"github.com/rjkroege/imgembed/internal/drawutil"
	"github.com/rjkroege/imgembed/markdown"
	"github.com/rjkroege/imgembed/overlay"
	"github.com/rjkroege/imgembed/rich"
	"github.com/rjkroege/imgembed/theme"
	"github.com/rjkroege/imgembed/wind"
)

const (
	margin = 10
	gap    = 10
	// clickSlop is how far the pointer may move before a press stops
	// being a click.
	clickSlop = 3
	// scrollUnit is the default distance of one wheel click.
	scrollUnit = 40

	kPageUp   = 0xF00F
	kPageDown = 0xF013
)

// View lays out the images of one document in a column and routes input
// to the controller.
type View struct {
	display draw.Display
	screen  draw.Image
	bus     *wind.Bus
	ctl     *imgctl.Controller
	painter *overlay.Painter
	cache   *rich.ImageCache
	font    draw.Font
	logger  *log.Logger
	dir     string
	resolve markdown.Resolver

	elements []*Element
	ps       *wind.PointerState
	ds       *wind.DrawState
	origin   int // pixels scrolled off the top
	calls    chan func()
}

// Option configures a View.
type Option func(*View)

// WithDir sets the directory relative embed paths are resolved in.
func WithDir(dir string) Option {
	return func(v *View) {
		v.dir = dir
	}
}

// WithCache shares an image cache between views.
func WithCache(c *rich.ImageCache) Option {
	return func(v *View) {
		v.cache = c
	}
}

// WithFont sets the font used to label images that failed to load.
func WithFont(f draw.Font) Option {
	return func(v *View) {
		v.font = f
	}
}

// WithLogger directs diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(v *View) {
		v.logger = l
	}
}

// New creates a View painting on display. Handle changes made through
// painter are folded into the view's own redraws.
func New(display draw.Display, bus *wind.Bus, ctl *imgctl.Controller, painter *overlay.Painter, opts ...Option) *View {
	v := &View{
		display: display,
		screen:  display.ScreenImage(),
		bus:     bus,
		ctl:     ctl,
		painter: painter,
		logger:  log.Default(),
		ps:      wind.NewPointerState(),
		ds:      wind.NewDrawState(display.ScreenImage().R()),
		calls:   make(chan func()),
	}
	for _, o := range opts {
		o(v)
	}
	if v.cache == nil {
		v.cache = rich.NewImageCache(64)
	}
	if v.dir == "" {
		v.dir = "."
	}
	v.resolve = markdown.FileResolver(v.dir)
	painter.Redraw = v.invalidate
	return v
}

// Elements returns the rendered images in document order.
func (v *View) Elements() []*Element {
	return v.elements
}

// Reload renders text, replacing every element. The controller forgets
// the old elements, including any selection among them.
func (v *View) Reload(text string) {
	for _, e := range v.elements {
		e.gone = true
		v.ctl.Detach(e)
	}
	v.ps.SetHover(nil)

	images := markdown.Images([]byte(text), v.resolve)
	v.elements = make([]*Element, 0, len(images))
	for _, im := range images {
		e := &Element{view: v, im: im}
		ci, err := v.cache.Load(v.path(im.Path))
		if err != nil {
			v.logger.Printf("viewer: %s: %v", im.Path, err)
		}
		e.cached = ci
		e.size = renderSize(im, e.NaturalSize(), v.ds.Body(margin).Dx())
		v.elements = append(v.elements, e)
		v.ctl.Attach(e)
	}
	v.clampOrigin()
	v.layout()
	v.Redraw()
}

// Replaced implements host.BufferObserver.
func (v *View) Replaced(_, text string) {
	v.Reload(text)
}

func (v *View) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(v.dir, p)
}

func (v *View) layout() {
	pt := v.ds.Body(margin).Min
	pt.Y -= v.origin
	for _, e := range v.elements {
		e.rect = image.Rectangle{Min: pt, Max: pt.Add(e.size)}
		pt.Y += e.size.Y + gap
	}
}

func (v *View) invalidate() {
	v.ds.Invalidate()
}

// Redraw paints the whole view.
func (v *View) Redraw() {
	v.ds.ClearRedrawFlag()
	pal := theme.Current()
	clip := v.ds.Rect()
	v.painter.Fill(clip, pal.Background)
	for _, e := range v.elements {
		if !e.rect.Overlaps(clip) {
			continue
		}
		if e.loaded() {
			if err := rich.Blit(v.screen, e.cached, e.rect, clip); err != nil {
				v.logger.Printf("viewer: draw %s: %v", e.im.Path, err)
			}
		} else {
			v.drawPlaceholder(e)
		}
		v.painter.Outline(e.rect, e.outline)
	}
	v.painter.Paint()
	if err := v.display.Flush(); err != nil {
		v.logger.Printf("viewer: flush: %v", err)
	}
}

func (v *View) drawPlaceholder(e *Element) {
	pal := theme.Current()
	v.painter.Fill(e.rect, pal.Placeholder)
	if v.font == nil {
		return
	}
	label := "[image: " + e.im.Path + "]"
	v.screen.Bytes(e.rect.Min.Add(image.Pt(2, 2)), v.display.White(), image.Point{}, v.font, []byte(label))
}

// hit returns the event target under pt: the handle's corner control
// takes precedence over the image below it.
func (v *View) hit(pt image.Point) wind.Target {
	if h := v.ctl.Handle(); h != nil && h.Contains(pt) {
		return h
	}
	for _, e := range v.elements {
		if pt.In(e.rect) {
			return e
		}
	}
	return nil
}

func (v *View) dispatch(ev *wind.Event) bool {
	return v.bus.Dispatch(ev)
}

// Mouse turns one mouse report into wind events.
func (v *View) Mouse(m draw.Mouse) {
	pt := m.Point
	buttons := wind.MouseButton(m.Buttons)
	if buttons&(wind.MouseB4|wind.MouseB5) != 0 {
		step := drawutil.ScrollStep(v.ds.Body(margin).Dy(), scrollUnit)
		if buttons&wind.MouseB4 != 0 {
			step = -step
		}
		v.Scroll(step)
		v.flushIfDirty()
		return
	}
	moved := pt != v.ps.LastPos()
	prev := v.ps.Update(pt, buttons)

	target := v.hit(pt)
	if old := v.ps.Hover(); old != target {
		v.ps.SetHover(target)
		if old != nil {
			v.dispatch(&wind.Event{Type: wind.EventPointerLeave, Pos: pt, Buttons: buttons, Target: old, Related: target})
		}
		if target != nil {
			v.dispatch(&wind.Event{Type: wind.EventPointerEnter, Pos: pt, Buttons: buttons, Target: target, Related: old})
		}
	}

	down := buttons&wind.MouseB1 != 0
	wasDown := prev&wind.MouseB1 != 0
	if moved {
		if wasDown {
			v.ps.Moved(pt, clickSlop)
		}
		v.dispatch(&wind.Event{Type: wind.EventPointerMove, Pos: pt, Buttons: buttons, Target: target})
	}

	switch {
	case down && !wasDown:
		v.ps.Press(pt, target)
		v.dispatch(&wind.Event{Type: wind.EventPointerDown, Pos: pt, Buttons: buttons, Target: target})
	case !down && wasDown:
		// The target may have changed during the up handlers.
		clicked := !v.ps.Dragged() && v.ps.PressTarget() == target
		v.dispatch(&wind.Event{Type: wind.EventPointerUp, Pos: pt, Buttons: buttons, Target: target})
		if clicked {
			v.dispatch(&wind.Event{Type: wind.EventClick, Pos: pt, Buttons: buttons, Target: target})
		}
	}
	v.flushIfDirty()
}

// keyNames maps runes from the keyboard to key names.
var keyNames = map[rune]string{
	0x7F: wind.KeyDelete,
	0x08: wind.KeyBackspace,
	0x1B: wind.KeyEscape,
}

// Key delivers a key press and reports whether a listener consumed it.
func (v *View) Key(r rune) bool {
	switch r {
	case kPageUp, kPageDown:
		step := v.ds.Body(margin).Dy() / 2
		if r == kPageUp {
			step = -step
		}
		v.Scroll(step)
		v.flushIfDirty()
		return true
	}
	name, ok := keyNames[r]
	if !ok {
		name = string(r)
	}
	handled := v.dispatch(&wind.Event{Type: wind.EventKeyDown, Key: name, Pos: v.ps.LastPos()})
	v.flushIfDirty()
	return handled
}

func (v *View) flushIfDirty() {
	if v.ds.NeedsRedraw() {
		v.Redraw()
	}
}

// Resize reattaches to the window after it changed size.
func (v *View) Resize() {
	if err := v.display.Attach(draw.Refnone); err != nil {
		v.logger.Printf("viewer: attach: %v", err)
		return
	}
	v.screen = v.display.ScreenImage()
	v.painter.SetScreen(v.screen)
	v.ds.SetRect(v.screen.R())
	v.clampOrigin()
	v.layout()
	v.Redraw()
}

// Origin returns how far the view is scrolled.
func (v *View) Origin() int {
	return v.origin
}

// Scroll moves the view dy pixels toward the end of the document, or
// toward its start when dy is negative. It does nothing during a resize.
func (v *View) Scroll(dy int) {
	if v.ctl.State() == imgctl.Resizing {
		return
	}
	origin := min(max(v.origin+dy, 0), v.maxOrigin())
	if origin == v.origin {
		return
	}
	v.origin = origin
	v.layout()
	v.rehover()
	v.invalidate()
}

// maxOrigin is the origin that puts the bottom of the last image at the
// bottom of the body.
func (v *View) maxOrigin() int {
	h := 0
	for i, e := range v.elements {
		if i > 0 {
			h += gap
		}
		h += e.size.Y
	}
	return max(h-v.ds.Body(margin).Dy(), 0)
}

func (v *View) clampOrigin() {
	v.origin = min(v.origin, v.maxOrigin())
}

// rehover replays leave and enter after the elements moved under a
// stationary pointer so that the handle follows the layout.
func (v *View) rehover() {
	pt := v.ps.LastPos()
	if old := v.ps.SetHover(nil); old != nil {
		v.dispatch(&wind.Event{Type: wind.EventPointerLeave, Pos: pt, Target: old})
	}
	if t := v.hit(pt); t != nil {
		v.ps.SetHover(t)
		v.dispatch(&wind.Event{Type: wind.EventPointerEnter, Pos: pt, Target: t})
	}
}

// Run processes input until ctx is done or q is typed with nothing
// selected.
func (v *View) Run(ctx context.Context, mousectl *draw.Mousectl, keyboardctl *draw.Keyboardctl) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m := <-mousectl.C:
			v.Mouse(m)
		case <-mousectl.Resize:
			v.Resize()
		case f := <-v.calls:
			f()
			v.flushIfDirty()
		case r := <-keyboardctl.C:
			if strings.ContainsRune("qQ", r) && v.ctl.Selected() == nil {
				return nil
			}
			v.Key(r)
		}
	}
}

// Do runs f on the goroutine executing Run and waits for it to return.
// Other goroutines use it to reach the view and the document safely.
func (v *View) Do(ctx context.Context, f func()) error {
	done := make(chan struct{})
	select {
	case v.calls <- func() {
		defer close(done)
		f()
	}:
	case <-ctx.Done():
		return ctx.Err()
	}
	<-done
	return nil
}
