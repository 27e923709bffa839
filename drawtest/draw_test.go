package drawtest

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/imgembed/draw"
)

func TestDrawOps(t *testing.T) {
	d := NewDisplay(image.Rect(0, 0, 100, 100))
	screen := d.ScreenImage()
	red, _ := d.AllocImage(image.Rect(0, 0, 1, 1), draw.RGBA32, true, 0xFF0000FF)
	pic, _ := d.AllocImage(image.Rect(0, 0, 2, 2), draw.RGBA32, false, draw.Notacolor)
	if _, err := pic.Load(pic.R(), make([]byte, 16)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	screen.Draw(image.Rect(0, 0, 10, 10), red, nil, image.Point{})
	screen.Border(image.Rect(0, 0, 10, 10), 2, d.Black(), image.Point{})
	screen.Draw(image.Rect(5, 5, 7, 7), pic, nil, image.Point{})
	screen.Bytes(image.Pt(1, 2), d.Black(), image.Point{}, NewFont(fwidth, fheight), []byte("hi"))

	want := []string{
		"screen <- fill (0,0)-(10,10) color(ff0000ff),tiled",
		"screen <- border (0,0)-(10,10) thick: 2 color: Black",
		"screen <- blit (5,5)-(7,7) from image-2x2 at (0,0)",
		`screen <- string "hi" atpoint: (1,2) fill: Black`,
	}
	if diff := cmp.Diff(want, d.(GettableDrawOps).DrawOps()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}

	d.(GettableDrawOps).Clear()
	if got := d.(GettableDrawOps).DrawOps(); len(got) != 0 {
		t.Errorf("Clear left %v", got)
	}
}

func TestShortLoad(t *testing.T) {
	d := NewDisplay(image.Rect(0, 0, 10, 10))
	pic, _ := d.AllocImage(image.Rect(0, 0, 2, 2), draw.RGBA32, false, draw.Notacolor)
	if _, err := pic.Load(pic.R(), make([]byte, 3)); err == nil {
		t.Error("short Load should fail")
	}
}
