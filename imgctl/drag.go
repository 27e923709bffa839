package imgctl

import (
	"image"
	"math"

	"github.com/rjkroege/imgembed/wind"
)

// DragSession is the baseline of one resize gesture.
type DragSession struct {
	Image     Image
	Start     image.Point // pointer position at press
	StartSize image.Point // rendered width and height at press
	Aspect    float64     // width / height, fixed at hover time
	MinWidth  int

	move, up *wind.Registration
}

// Size returns the aspect-locked size for a pointer at horizontal
// position x. Only horizontal motion counts.
func (s *DragSession) Size(x int) (w, h int) {
	w = max(s.StartSize.X+x-s.Start.X, s.MinWidth)
	aspect := s.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	h = int(math.Round(float64(w) / aspect))
	return w, h
}

func (s *DragSession) cancel() {
	s.move.Cancel()
	s.up.Cancel()
}
