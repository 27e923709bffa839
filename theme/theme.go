// Package theme holds the colours of the image preview.
package theme

import (
	"github.com/rjkroege/imgembed/draw"
)

type Palette struct {
	Background draw.Color
	Text       draw.Color
	// Placeholder is used for images that failed to load.
	Placeholder     draw.Color
	OutlineActive   draw.Color
	OutlineSelected draw.Color
	HandleFill      draw.Color
	HandleBorder    draw.Color
	HandleFrame     draw.Color
}

var lightPalette = Palette{
	Background:      draw.Paleyellow,
	Text:            draw.Black,
	Placeholder:     draw.Medblue,
	OutlineActive:   draw.Purpleblue,
	OutlineSelected: 0x3478F6FF,
	HandleFill:      draw.White,
	HandleBorder:    draw.Purpleblue,
	HandleFrame:     draw.Darkyellow,
}

var darkPalette = Palette{
	Background:      0x222222FF,
	Text:            0xEEEEEEFF,
	Placeholder:     0x6699FFFF,
	OutlineActive:   0xAA88FFFF,
	OutlineSelected: 0x4C8DFFFF,
	HandleFill:      0x333333FF,
	HandleBorder:    0xEEEEEEFF,
	HandleFrame:     0x888888FF,
}

var (
	darkMode bool
	current  = lightPalette
)

// SetDarkMode selects between the light and dark palettes.
func SetDarkMode(enabled bool) {
	darkMode = enabled
	if enabled {
		current = darkPalette
	} else {
		current = lightPalette
	}
}

// IsDarkMode reports the current mode.
func IsDarkMode() bool { return darkMode }

// Current returns the active colour palette.
func Current() Palette { return current }
