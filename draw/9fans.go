//go:build !duitdraw && !windows

package draw

import (
	draw "9fans.net/go/draw"
)

const (
	Refnone = draw.Refnone

	Black       = draw.Black
	Darkyellow  = draw.Darkyellow
	Medblue     = draw.Medblue
	Notacolor   = draw.Notacolor
	Opaque      = draw.Opaque
	Paleyellow  = draw.Paleyellow
	Purpleblue  = draw.Purpleblue
	Transparent = draw.Transparent
	White       = draw.White
)

// Pixel formats for AllocImage.
var (
	RGBA32 = draw.RGBA32
	RGB24  = draw.RGB24
)

type (
	Color       = draw.Color
	drawDisplay = draw.Display
	drawFont    = draw.Font
	drawImage   = draw.Image
	Keyboardctl = draw.Keyboardctl
	Mousectl    = draw.Mousectl
	Mouse       = draw.Mouse
	Pix         = draw.Pix
)

// NewDisplay opens a window on the Plan 9 draw device.
func NewDisplay(errch chan<- error, fontname, label, winsize string) (Display, error) {
	d, err := draw.Init(errch, fontname, label, winsize)
	if err != nil {
		return nil, err
	}
	return &displayImpl{d}, nil
}
