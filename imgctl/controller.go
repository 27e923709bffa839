package imgctl

import (
	"fmt"
	"log"

	"github.com/rjkroege/imgembed/embed"
	"github.com/rjkroege/imgembed/host"
	"github.com/rjkroege/imgembed/wind"
)

// State is the resize state of a Controller.
type State int

const (
	Idle State = iota
	HandlesShown
	Resizing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case HandlesShown:
		return "HandlesShown"
	case Resizing:
		return "Resizing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	defaultMinWidth   = 50
	defaultHandleSize = 12
)

// Controller owns every piece of shared resize and selection state: the
// attached images, the hovered image and its handle, the drag session
// and the selection. All methods must be called from the goroutine that
// dispatches events on the bus.
type Controller struct {
	bus      *wind.Bus
	ws       host.Workspace
	notifier host.Notifier
	painter  Painter
	logger   *log.Logger

	minWidth   int
	handleSize int
	selectable bool

	globals  []*wind.Registration
	attached map[Image][]*wind.Registration

	aspect   float64 // of the hovered image, captured on enter
	handle   *Handle
	drag     *DragSession
	selected Image
}

// Option configures a Controller.
type Option func(*Controller)

// WithMinWidth sets the smallest width a drag can produce.
func WithMinWidth(w int) Option {
	return func(c *Controller) {
		if w > 0 {
			c.minWidth = w
		}
	}
}

// WithSelection turns click-to-select and key deletion on or off.
func WithSelection(on bool) Option {
	return func(c *Controller) {
		c.selectable = on
	}
}

// WithHandleSize sets the side of the corner control.
func WithHandleSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.handleSize = n
		}
	}
}

// WithPainter sets the Painter that draws the handle.
func WithPainter(p Painter) Option {
	return func(c *Controller) {
		c.painter = p
	}
}

// WithLogger directs diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// New creates a Controller delivering commits to the active view of ws.
// notifier may be nil.
func New(bus *wind.Bus, ws host.Workspace, notifier host.Notifier, opts ...Option) *Controller {
	c := &Controller{
		bus:        bus,
		ws:         ws,
		notifier:   notifier,
		logger:     log.Default(),
		minWidth:   defaultMinWidth,
		handleSize: defaultHandleSize,
		selectable: true,
		attached:   make(map[Image][]*wind.Registration),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Initialize registers the global keyboard and click listeners. Calling
// it again before Dispose does nothing.
func (c *Controller) Initialize() {
	if c.globals != nil {
		return
	}
	c.globals = []*wind.Registration{
		c.bus.ListenGlobal(wind.EventKeyDown, c.keyDown, false),
		c.bus.ListenGlobal(wind.EventClick, c.clickAnywhere, true),
	}
}

// Dispose removes every listener the controller registered and clears
// all drag, handle and selection state.
func (c *Controller) Dispose() {
	for _, r := range c.globals {
		r.Cancel()
	}
	c.globals = nil

	c.endDrag()
	c.hideHandle()
	c.deselect()
	for img, regs := range c.attached {
		for _, r := range regs {
			r.Cancel()
		}
		delete(c.attached, img)
	}
	c.aspect = 0
}

// Attach starts tracking img. Attaching an image twice does nothing.
func (c *Controller) Attach(img Image) {
	if img == nil {
		return
	}
	if _, ok := c.attached[img]; ok {
		return
	}
	c.attached[img] = []*wind.Registration{
		c.bus.Listen(img, wind.EventPointerEnter, func(ev *wind.Event) { c.enterImage(img) }),
		c.bus.Listen(img, wind.EventPointerLeave, func(ev *wind.Event) { c.leaveImage(img, ev) }),
		c.bus.Listen(img, wind.EventClick, func(ev *wind.Event) { c.clickImage(img, ev) }),
	}
}

// Detach stops tracking img, ending any drag, handle or selection that
// involves it.
func (c *Controller) Detach(img Image) {
	regs, ok := c.attached[img]
	if !ok {
		return
	}
	for _, r := range regs {
		r.Cancel()
	}
	delete(c.attached, img)

	if c.drag != nil && c.drag.Image == img {
		c.endDrag()
	}
	if c.handle != nil && c.handle.img == img {
		c.hideHandle()
	}
	if c.selected == img {
		c.deselect()
	}
}

// Attached reports whether img is being tracked.
func (c *Controller) Attached(img Image) bool {
	_, ok := c.attached[img]
	return ok
}

// State returns the current resize state.
func (c *Controller) State() State {
	switch {
	case c.drag != nil:
		return Resizing
	case c.handle != nil:
		return HandlesShown
	}
	return Idle
}

// Selected returns the selected image, or nil.
func (c *Controller) Selected() Image {
	return c.selected
}

// Handle returns the visible handle, or nil.
func (c *Controller) Handle() *Handle {
	return c.handle
}

// Drag returns the drag session in progress, or nil.
func (c *Controller) Drag() *DragSession {
	return c.drag
}

func (c *Controller) enterImage(img Image) {
	if c.drag != nil {
		return
	}
	if c.handle != nil && c.handle.img == img {
		return
	}
	c.hideHandle()
	c.aspect = aspectOf(img)
	c.showHandle(img)
}

func (c *Controller) leaveImage(img Image, ev *wind.Event) {
	if c.drag != nil || c.handle == nil || c.handle.img != img {
		return
	}
	if ev.Related == c.handle {
		return
	}
	c.hideHandle()
}

func (c *Controller) leaveHandle(ev *wind.Event) {
	if c.drag != nil || c.handle == nil {
		return
	}
	if ev.Related == c.handle.img {
		return
	}
	c.hideHandle()
}

func (c *Controller) showHandle(img Image) {
	h := &Handle{img: img, size: c.handleSize}
	h.track()
	h.regs = []*wind.Registration{
		c.bus.Listen(h, wind.EventPointerLeave, c.leaveHandle),
		c.bus.Listen(h, wind.EventPointerDown, c.pressHandle),
	}
	c.handle = h
	if c.painter != nil {
		c.painter.ShowHandle(h.box, h.Corner())
	}
}

func (c *Controller) hideHandle() {
	if c.handle == nil {
		return
	}
	c.handle.cancel()
	c.handle = nil
	if c.painter != nil {
		c.painter.HideHandle()
	}
}

func (c *Controller) pressHandle(ev *wind.Event) {
	if c.drag != nil || c.handle == nil {
		return
	}
	img := c.handle.img
	if !img.Connected() {
		c.hideHandle()
		return
	}
	ev.PreventDefault()

	aspect := c.aspect
	if aspect <= 0 {
		aspect = aspectOf(img)
	}
	r := img.Rect()
	s := &DragSession{
		Image:     img,
		Start:     ev.Pos,
		StartSize: r.Size(),
		Aspect:    aspect,
		MinWidth:  c.minWidth,
	}
	s.move = c.bus.ListenGlobal(wind.EventPointerMove, c.dragMove, true)
	s.up = c.bus.ListenGlobal(wind.EventPointerUp, c.dragEnd, true)
	c.drag = s
	img.SetOutline(OutlineActive)
}

func (c *Controller) dragMove(ev *wind.Event) {
	s := c.drag
	if s == nil {
		return
	}
	if !s.Image.Connected() {
		c.endDrag()
		c.hideHandle()
		return
	}
	w, h := s.Size(ev.Pos.X)
	s.Image.SetSize(w, h)
	if c.handle != nil {
		c.handle.track()
		if c.painter != nil {
			c.painter.MoveHandle(c.handle.box, c.handle.Corner())
		}
	}
}

func (c *Controller) dragEnd(ev *wind.Event) {
	s := c.drag
	if s == nil {
		return
	}
	img := s.Image
	connected := img.Connected()
	width := img.Rect().Dx()
	c.endDrag()
	c.hideHandle()

	if !connected {
		return
	}
	c.commitResize(img, width)
}

// endDrag tears down the drag session. It may be called any number of
// times.
func (c *Controller) endDrag() {
	s := c.drag
	if s == nil {
		return
	}
	c.drag = nil
	s.cancel()
	if s.Image == c.selected {
		s.Image.SetOutline(OutlineSelected)
	} else {
		s.Image.SetOutline(OutlineNone)
	}
}

func (c *Controller) clickImage(img Image, ev *wind.Event) {
	ev.PreventDefault()
	if !c.selectable || c.drag != nil {
		return
	}
	c.selectImage(img)
}

func (c *Controller) clickAnywhere(ev *wind.Event) {
	if c.selected == nil {
		return
	}
	switch t := ev.Target.(type) {
	case *Handle:
		return
	case Image:
		if c.Attached(t) {
			return
		}
	}
	c.deselect()
}

func (c *Controller) selectImage(img Image) {
	if c.selected == img {
		return
	}
	c.deselect()
	c.selected = img
	img.SetOutline(OutlineSelected)
}

func (c *Controller) deselect() {
	if c.selected == nil {
		return
	}
	img := c.selected
	c.selected = nil
	if c.drag == nil || c.drag.Image != img {
		img.SetOutline(OutlineNone)
	}
}

func (c *Controller) keyDown(ev *wind.Event) {
	if c.selected == nil {
		return
	}
	switch ev.Key {
	case wind.KeyEscape:
		c.deselect()
		ev.PreventDefault()
	case wind.KeyDelete, wind.KeyBackspace:
		if c.deleteSelected() {
			ev.PreventDefault()
		}
	}
}

// view returns the view that commits go to, if any.
func (c *Controller) view() (host.View, bool) {
	if c.ws == nil {
		return nil, false
	}
	if _, ok := c.ws.ActiveFile(); !ok {
		return nil, false
	}
	return c.ws.ActiveView()
}

func (c *Controller) commitResize(img Image, width int) {
	v, ok := c.view()
	if !ok {
		c.logger.Printf("imgctl: no active view, resize of %q not saved", img.Alt())
		return
	}
	if err := ResizeEmbed(v, targetOf(img), width); err != nil {
		c.logger.Printf("imgctl: %v", err)
		return
	}
	c.notify(fmt.Sprintf("Image resized to %dpx", width))
}

func (c *Controller) deleteSelected() bool {
	img := c.selected
	v, ok := c.view()
	if !ok {
		return false
	}
	if _, ok := embed.Locate(v.Text(), targetOf(img)); !ok {
		c.logger.Printf("imgctl: no embed matches %q", img.Alt())
		return false
	}
	c.deselect()
	if c.handle != nil && c.handle.img == img {
		c.hideHandle()
	}
	if err := RemoveEmbed(v, targetOf(img)); err != nil {
		c.logger.Printf("imgctl: %v", err)
		return false
	}
	c.notify("Image removed")
	return true
}

func (c *Controller) notify(msg string) {
	if c.notifier != nil {
		c.notifier.Notify(msg)
	}
}
