package overlay

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/imgembed/drawtest"
	"github.com/rjkroege/imgembed/imgctl"
)

func setup() (*Painter, drawtest.GettableDrawOps) {
	d := drawtest.NewDisplay(image.Rect(0, 0, 400, 400))
	return New(d.ScreenImage()), d.(drawtest.GettableDrawOps)
}

func TestHandleLifecycle(t *testing.T) {
	p, ops := setup()
	box := image.Rect(0, 0, 200, 100)
	corner := image.Rect(188, 88, 200, 100)

	p.HideHandle()
	p.MoveHandle(box, corner)
	if got := ops.DrawOps(); len(got) != 0 {
		t.Fatalf("hidden handle painted: %v", got)
	}

	p.ShowHandle(box, corner)
	want := []string{
		"screen <- border (0,0)-(200,100) thick: 1 color: Darkyellow,tiled",
		"screen <- fill (188,88)-(200,100) White,tiled",
		"screen <- border (188,88)-(200,100) thick: 1 color: Purpleblue,tiled",
	}
	if diff := cmp.Diff(want, ops.DrawOps()); diff != "" {
		t.Errorf("ShowHandle ops (-want +got):\n%s", diff)
	}
	if !p.Visible() {
		t.Error("handle not visible after ShowHandle")
	}

	ops.Clear()
	p.HideHandle()
	if p.Visible() || len(ops.DrawOps()) != 0 {
		t.Errorf("HideHandle without Redraw should only forget the handle: %v", ops.DrawOps())
	}
}

func TestRedrawCallback(t *testing.T) {
	p, ops := setup()
	redraws := 0
	p.Redraw = func() {
		redraws++
		p.Paint()
	}
	p.ShowHandle(image.Rect(0, 0, 20, 20), image.Rect(10, 10, 20, 20))
	p.MoveHandle(image.Rect(0, 0, 30, 30), image.Rect(20, 20, 30, 30))
	p.HideHandle()
	if redraws != 3 {
		t.Errorf("redraws = %d, want 3", redraws)
	}
	// Two paints of three ops each; the hide paints nothing.
	if got := len(ops.DrawOps()); got != 6 {
		t.Errorf("%d ops, want 6: %v", got, ops.DrawOps())
	}
}

func TestOutline(t *testing.T) {
	p, ops := setup()
	r := image.Rect(0, 0, 200, 100)
	p.Outline(r, imgctl.OutlineNone)
	p.Outline(r, imgctl.OutlineActive)
	p.Outline(r, imgctl.OutlineSelected)

	want := []string{
		"screen <- border (-2,-2)-(202,102) thick: 2 color: Purpleblue,tiled",
		"screen <- border (-2,-2)-(202,102) thick: 2 color: color(3478f6ff),tiled",
	}
	if diff := cmp.Diff(want, ops.DrawOps()); diff != "" {
		t.Errorf("Outline ops (-want +got):\n%s", diff)
	}
}
