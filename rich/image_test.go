package rich

import (
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// writePNG saves a w by h image filled with c and returns its path.
func writePNG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	return path
}

func TestLoadImagePNG(t *testing.T) {
	path := writePNG(t, t.TempDir(), "test.png", 10, 10, color.RGBA{255, 0, 0, 255})

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if b := loaded.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Errorf("loaded image size = %dx%d, want 10x10", b.Dx(), b.Dy())
	}
	r, g, b, a := loaded.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 || a>>8 != 255 {
		t.Errorf("pixel color = (%d, %d, %d, %d), want (255, 0, 0, 255)", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestLoadImageJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.jpg")
	img := image.NewRGBA(image.Rect(0, 0, 20, 15))
	for y := 0; y < 15; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 100}); err != nil {
		f.Close()
		t.Fatal(err)
	}
	f.Close()

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if b := loaded.Bounds(); b.Dx() != 20 || b.Dy() != 15 {
		t.Errorf("loaded image size = %dx%d, want 20x15", b.Dx(), b.Dy())
	}
	// JPEG is lossy.
	r, g, b, _ := loaded.At(10, 7).RGBA()
	if r>>8 > 50 || g>>8 > 50 || b>>8 < 200 {
		t.Errorf("pixel color not approximately blue: (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
}

func TestLoadImageGIFAndBMP(t *testing.T) {
	dir := t.TempDir()
	palette := []color.Color{color.RGBA{0, 255, 0, 255}, color.White}
	pal := image.NewPaletted(image.Rect(0, 0, 8, 8), palette)

	gifPath := filepath.Join(dir, "test.gif")
	f, err := os.Create(gifPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := gif.Encode(f, pal, nil); err != nil {
		f.Close()
		t.Fatal(err)
	}
	f.Close()

	bmpPath := filepath.Join(dir, "test.bmp")
	f, err = os.Create(bmpPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, pal); err != nil {
		f.Close()
		t.Fatal(err)
	}
	f.Close()

	for _, path := range []string{gifPath, bmpPath} {
		loaded, err := LoadImage(path)
		if err != nil {
			t.Errorf("LoadImage(%s): %v", filepath.Base(path), err)
			continue
		}
		r, g, b, a := loaded.At(0, 0).RGBA()
		if r>>8 != 0 || g>>8 != 255 || b>>8 != 0 || a>>8 != 255 {
			t.Errorf("%s pixel = (%d, %d, %d, %d), want green", filepath.Base(path), r>>8, g>>8, b>>8, a>>8)
		}
	}
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.png")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	partial := filepath.Join(dir, "partial.png")
	if err := os.WriteFile(partial, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, 0644); err != nil {
		t.Fatal(err)
	}
	text := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(text, []byte("this is not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		name, path string
	}{
		{"missing", filepath.Join(dir, "nope.png")},
		{"empty", empty},
		{"partial header", partial},
		{"not an image", text},
		{"too wide", writePNG(t, dir, "wide.png", MaxImageWidth+1, 1, color.Black)},
		{"too many bytes", writePNG(t, dir, "big.png", 4096, 1025, color.Black)},
	} {
		if _, err := LoadImage(tc.path); err == nil {
			t.Errorf("%s: LoadImage should fail", tc.name)
		}
	}
}

func TestLoadImageIgnoresExtension(t *testing.T) {
	path := writePNG(t, t.TempDir(), "test.jpg", 5, 5, color.White)
	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage should detect the format from content: %v", err)
	}
	if b := loaded.Bounds(); b.Dx() != 5 || b.Dy() != 5 {
		t.Errorf("loaded image size = %dx%d, want 5x5", b.Dx(), b.Dy())
	}
}

func pixel(data []byte, i int) [4]byte {
	return [4]byte{data[4*i], data[4*i+1], data[4*i+2], data[4*i+3]}
}

func TestConvertToPlan9(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.Set(0, 0, color.RGBA{255, 0, 0, 255})
	rgba.Set(1, 1, color.RGBA{255, 255, 255, 255})

	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(1, 0, color.Gray{255})

	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	nrgba.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 128})
	nrgba.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 0})

	pal := image.NewPaletted(image.Rect(0, 0, 2, 1), []color.Color{
		color.RGBA{255, 0, 0, 255},
		color.RGBA{255, 255, 0, 255},
	})
	pal.SetColorIndex(1, 0, 1)

	// An RGBA sub-image does not start at the origin.
	sub := rgba.SubImage(image.Rect(1, 1, 2, 2))

	tests := []struct {
		name string
		img  image.Image
		want [][4]byte
	}{
		{"rgba", rgba, [][4]byte{{255, 0, 0, 255}, {0, 0, 0, 0}, {0, 0, 0, 0}, {255, 255, 255, 255}}},
		{"gray", gray, [][4]byte{{0, 0, 0, 255}, {255, 255, 255, 255}}},
		{"premultiplied", nrgba, [][4]byte{{128, 0, 0, 128}, {0, 0, 0, 0}}},
		{"paletted", pal, [][4]byte{{255, 0, 0, 255}, {255, 255, 0, 255}}},
		{"subimage", sub, [][4]byte{{255, 255, 255, 255}}},
		{"empty", image.NewRGBA(image.Rect(0, 0, 0, 0)), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := ConvertToPlan9(tc.img)
			if err != nil {
				t.Fatalf("ConvertToPlan9 failed: %v", err)
			}
			if len(data) != 4*len(tc.want) {
				t.Fatalf("converted data size = %d, want %d", len(data), 4*len(tc.want))
			}
			for i, w := range tc.want {
				if got := pixel(data, i); got != w {
					t.Errorf("pixel %d = %v, want %v", i, got, w)
				}
			}
		})
	}

	if _, err := ConvertToPlan9(nil); err == nil {
		t.Error("ConvertToPlan9 should return an error for nil image")
	}
}
