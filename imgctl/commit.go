package imgctl

import (
	"errors"
	"fmt"

	"github.com/rjkroege/imgembed/embed"
	"github.com/rjkroege/imgembed/host"
)

// ErrNoMatch is returned when no embed in the document matches the image.
var ErrNoMatch = errors.New("no embed matches image")

// ResizeEmbed rewrites the first embed in v matching t to carry width w
// and writes the whole document back.
func ResizeEmbed(v host.View, t embed.Target, w int) error {
	if w < 1 {
		return fmt.Errorf("resize %q: bad width %d", t.Alt, w)
	}
	text, ok := embed.Rewrite(v.Text(), t, w)
	if !ok {
		return fmt.Errorf("resize %q: %w", t.Alt, ErrNoMatch)
	}
	v.SetText(text)
	return nil
}

// RemoveEmbed deletes the first embed in v matching t and writes the
// whole document back.
func RemoveEmbed(v host.View, t embed.Target) error {
	text, ok := embed.Delete(v.Text(), t)
	if !ok {
		return fmt.Errorf("remove %q: %w", t.Alt, ErrNoMatch)
	}
	v.SetText(text)
	return nil
}
