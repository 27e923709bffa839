// Package config manages the image controller settings.
package config

// Settings controls resize and selection behaviour.
type Settings struct {
	// MinWidth is the smallest width in pixels a drag can produce.
	MinWidth int `yaml:"min_width"`
	// SelectEnabled turns click-to-select (and so Delete) on.
	SelectEnabled bool `yaml:"select_enabled"`
	// HandleSize is the side of the square corner control in pixels.
	HandleSize int `yaml:"handle_size"`
	// DarkMode selects the dark palette in the viewer.
	DarkMode bool `yaml:"dark_mode"`
}

const (
	DefaultMinWidth   = 50
	DefaultHandleSize = 12
)

// Default returns the default settings.
func Default() *Settings {
	return &Settings{
		MinWidth:      DefaultMinWidth,
		SelectEnabled: true,
		HandleSize:    DefaultHandleSize,
	}
}

// Normalize replaces out-of-range values with their defaults.
func (s *Settings) Normalize() {
	if s.MinWidth < 1 {
		s.MinWidth = DefaultMinWidth
	}
	if s.HandleSize < 1 {
		s.HandleSize = DefaultHandleSize
	}
}
