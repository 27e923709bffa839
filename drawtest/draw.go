// Package drawtest provides a draw.Display that records what is drawn,
// for tests of code that paints the preview.
package drawtest

import (
	"fmt"
	"image"
	"sync"
	"unicode/utf8"

	"github.com/rjkroege/imgembed/draw"
)

var _ = draw.Display((*mockDisplay)(nil))

const (
	fwidth  = 13
	fheight = 10
)

// GettableDrawOps display implementations can provide a list of the
// executed draw ops.
type GettableDrawOps interface {
	DrawOps() []string
	Clear()
}

// mockDisplay implements draw.Display.
type mockDisplay struct {
	mu          sync.Mutex
	drawops     []string
	screenimage draw.Image
	flushes     int
}

// NewDisplay returns a mock draw.Display whose screen covers r.
func NewDisplay(r image.Rectangle) draw.Display {
	md := &mockDisplay{}
	md.screenimage = newimageimpl(md, "screen", draw.Notacolor, r)
	return md
}

func (d *mockDisplay) ScreenImage() draw.Image { return d.screenimage }

func (d *mockDisplay) White() draw.Image {
	return newimageimpl(d, "white", draw.White, image.Rectangle{})
}
func (d *mockDisplay) Black() draw.Image {
	return newimageimpl(d, "black", draw.Black, image.Rectangle{})
}
func (d *mockDisplay) Opaque() draw.Image {
	return newimageimpl(d, "opaque", draw.Opaque, image.Rectangle{})
}
func (d *mockDisplay) Transparent() draw.Image {
	return newimageimpl(d, "transparent", draw.Transparent, image.Rectangle{})
}
func (d *mockDisplay) InitKeyboard() *draw.Keyboardctl { return &draw.Keyboardctl{} }
func (d *mockDisplay) InitMouse() *draw.Mousectl       { return &draw.Mousectl{} }

func (d *mockDisplay) OpenFont(name string) (draw.Font, error) { return NewFont(fwidth, fheight), nil }

func (d *mockDisplay) AllocImage(r image.Rectangle, pix draw.Pix, repl bool, val draw.Color) (draw.Image, error) {
	return &mockImage{
		d:    d,
		r:    r,
		c:    val,
		repl: repl,
	}, nil
}

func (d *mockDisplay) Attach(ref int) error { return nil }

func (d *mockDisplay) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flushes++
	return nil
}

func (d *mockDisplay) record(op string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawops = append(d.drawops, op)
}

// DrawOps returns the ops recorded since the last Clear.
func (d *mockDisplay) DrawOps() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.drawops...)
}

func (d *mockDisplay) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawops = nil
}

// Flushes returns the number of calls to Flush on display, which must
// have come from NewDisplay.
func Flushes(display draw.Display) int {
	d := display.(*mockDisplay)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flushes
}

var _ = draw.Image((*mockImage)(nil))

// mockImage implements draw.Image.
type mockImage struct {
	r      image.Rectangle
	d      *mockDisplay
	n      string
	c      draw.Color
	repl   bool
	loaded int
}

// newimageimpl creates a new mockImage. Use Notacolor for the situation
// where the name of the image takes precedence.
func newimageimpl(d *mockDisplay, name string, c draw.Color, r image.Rectangle) draw.Image {
	return &mockImage{
		r: r,
		d: d,
		c: c,
		n: name,
	}
}

// NewImage returns a mock draw.Image with the given bounds.
func NewImage(display draw.Display, name string, r image.Rectangle) draw.Image {
	d := display.(*mockDisplay)
	return newimageimpl(d, name, draw.Notacolor, r)
}

func (i *mockImage) Display() draw.Display { return i.d }
func (i *mockImage) Pix() draw.Pix         { return draw.RGBA32 }
func (i *mockImage) R() image.Rectangle    { return i.r }

func nameOf(img draw.Image) string {
	if m, ok := img.(*mockImage); ok {
		return m.N()
	}
	return "nil"
}

func (i *mockImage) Draw(r image.Rectangle, src, mask draw.Image, p1 image.Point) {
	srcname := nameOf(src)
	// Loaded pixel images are blitted; one pixel colour images fill.
	if m, ok := src.(*mockImage); ok && m.loaded > 0 {
		i.d.record(fmt.Sprintf("%s <- blit %v from %s at %v", i.N(), r, srcname, p1))
		return
	}
	if mask == nil && src != nil {
		i.d.record(fmt.Sprintf("%s <- fill %v %s", i.N(), r, srcname))
		return
	}
	i.d.record(fmt.Sprintf("%s <- draw r: %v src: %s mask: %s p1: %v",
		i.N(), r, srcname, nameOf(mask), p1))
}

func (i *mockImage) Border(r image.Rectangle, n int, color draw.Image, sp image.Point) {
	i.d.record(fmt.Sprintf("%s <- border %v thick: %d color: %s",
		i.N(), r, n, nameOf(color)))
}

func (i *mockImage) Bytes(pt image.Point, src draw.Image, sp image.Point, f draw.Font, b []byte) image.Point {
	i.d.record(fmt.Sprintf("%s <- string %q atpoint: %v fill: %s",
		i.N(), string(b), pt, nameOf(src)))
	return pt.Add(image.Pt(f.BytesWidth(b), 0))
}

func (i *mockImage) Free() error { return nil }

func (i *mockImage) Load(r image.Rectangle, data []byte) (int, error) {
	if want := r.Dx() * r.Dy() * 4; len(data) < want {
		return 0, fmt.Errorf("drawtest: short load: %d bytes for %v", len(data), r)
	}
	i.loaded += len(data)
	return len(data), nil
}

// N returns a nicename for the image colour.
func (i *mockImage) N() string {
	name := i.n
	if i.c != draw.Notacolor {
		name = NiceColourName(i.c)
	} else if name == "" {
		name = fmt.Sprintf("image-%dx%d", i.r.Dx(), i.r.Dy())
	}
	if i.repl {
		name += ",tiled"
	}
	return name
}

var _ = draw.Font((*mockFont)(nil))

// mockFont implements draw.Font and mocks as a fixed width font.
type mockFont struct {
	width, height int
}

// NewFont returns a draw.Font that mocks a fixed-width font.
func NewFont(width, height int) draw.Font {
	return &mockFont{
		width:  width,
		height: height,
	}
}

func (f *mockFont) Name() string             { return "mockfont" }
func (f *mockFont) Height() int              { return f.height }
func (f *mockFont) BytesWidth(b []byte) int  { return f.width * utf8.RuneCount(b) }
func (f *mockFont) StringWidth(s string) int { return f.width * utf8.RuneCountInString(s) }
