// Package overlay paints the resize handle and the image outlines on a
// draw.Image.
package overlay

import (
	"image"
	"log"

	"github.com/rjkroege/imgembed/draw"
	"github.com/rjkroege/imgembed/imgctl"
	"github.com/rjkroege/imgembed/theme"
)

// OutlineWidth is the thickness of an image outline, drawn outside the
// image box.
const OutlineWidth = 2

// Painter draws the handle affordance. It implements imgctl.Painter.
type Painter struct {
	screen  draw.Image
	colours *draw.Colours

	visible     bool
	box, corner image.Rectangle

	// Redraw, when set, is called instead of painting a handle change
	// directly. The owner repaints its content and then calls Paint.
	Redraw func()
}

var _ imgctl.Painter = (*Painter)(nil)

// New returns a Painter for screen.
func New(screen draw.Image) *Painter {
	return &Painter{
		screen:  screen,
		colours: draw.NewColours(screen.Display()),
	}
}

// SetScreen changes the image painted on, as after a window resize.
func (p *Painter) SetScreen(screen draw.Image) {
	p.screen = screen
}

// ShowHandle makes the handle visible over box.
func (p *Painter) ShowHandle(box, corner image.Rectangle) {
	p.visible = true
	p.box, p.corner = box, corner
	p.changed()
}

// MoveHandle moves a visible handle.
func (p *Painter) MoveHandle(box, corner image.Rectangle) {
	if !p.visible {
		return
	}
	p.box, p.corner = box, corner
	p.changed()
}

// HideHandle removes the handle.
func (p *Painter) HideHandle() {
	if !p.visible {
		return
	}
	p.visible = false
	p.changed()
}

// Visible reports whether the handle is shown.
func (p *Painter) Visible() bool {
	return p.visible
}

func (p *Painter) changed() {
	if p.Redraw != nil {
		p.Redraw()
		return
	}
	p.Paint()
}

// Paint draws the handle if it is visible.
func (p *Painter) Paint() {
	if !p.visible {
		return
	}
	pal := theme.Current()
	p.screen.Border(p.box, 1, p.colour(pal.HandleFrame), image.Point{})
	p.screen.Draw(p.corner, p.colour(pal.HandleFill), nil, image.Point{})
	p.screen.Border(p.corner, 1, p.colour(pal.HandleBorder), image.Point{})
}

// Outline draws the border for o around r.
func (p *Painter) Outline(r image.Rectangle, o imgctl.Outline) {
	pal := theme.Current()
	var c draw.Color
	switch o {
	case imgctl.OutlineActive:
		c = pal.OutlineActive
	case imgctl.OutlineSelected:
		c = pal.OutlineSelected
	default:
		return
	}
	p.screen.Border(r.Inset(-OutlineWidth), OutlineWidth, p.colour(c), image.Point{})
}

// Fill paints r with colour c.
func (p *Painter) Fill(r image.Rectangle, c draw.Color) {
	p.screen.Draw(r, p.colour(c), nil, image.Point{})
}

// colour returns a replicated one pixel image of c, allocating it the
// first time.
func (p *Painter) colour(c draw.Color) draw.Image {
	img, err := p.colours.Get(c)
	if err != nil {
		log.Printf("overlay: %v", err)
	}
	return img
}

// Free releases the allocated colours.
func (p *Painter) Free() {
	p.colours.Free()
}
