package rich

import (
	"fmt"
	"image/color"
	"testing"
)

func TestImageCacheHitAndMiss(t *testing.T) {
	dir := t.TempDir()
	p1 := writePNG(t, dir, "one.png", 10, 10, color.White)
	p2 := writePNG(t, dir, "two.png", 15, 20, color.Black)
	cache := NewImageCache(10)

	c1, err := cache.Load(p1)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	again, err := cache.Load(p1)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if c1 != again {
		t.Error("cache should return same CachedImage on second load")
	}
	if c1.Width != 10 || c1.Height != 10 || c1.Original == nil || len(c1.Data) != 10*10*4 {
		t.Errorf("bad entry %dx%d with %d bytes", c1.Width, c1.Height, len(c1.Data))
	}

	c2, err := cache.Load(p2)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c2 == c1 || c2.Size().X != 15 || c2.Size().Y != 20 {
		t.Errorf("second image = %v", c2.Size())
	}

	if got, ok := cache.Get(p2); !ok || got != c2 {
		t.Error("Get should return the loaded entry")
	}
	if got, ok := cache.Get("/nonexistent"); ok || got != nil {
		t.Error("Get should miss for unknown paths")
	}
}

func TestImageCacheEviction(t *testing.T) {
	dir := t.TempDir()
	cache := NewImageCache(3)
	paths := make([]string, 5)
	for i := range paths {
		paths[i] = writePNG(t, dir, fmt.Sprintf("test%d.png", i), 5, 5, color.White)
	}

	for _, p := range paths[:3] {
		if _, err := cache.Load(p); err != nil {
			t.Fatal(err)
		}
	}
	// Touch the first so that the second is least recently used.
	if _, err := cache.Load(paths[0]); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(paths[3]); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Get(paths[1]); ok {
		t.Error("least recently used image should have been evicted")
	}
	for _, i := range []int{0, 2, 3} {
		if _, ok := cache.Get(paths[i]); !ok {
			t.Errorf("image %d should still be cached", i)
		}
	}
	if cache.Len() != 3 {
		t.Errorf("Len = %d, want 3", cache.Len())
	}
}

func TestImageCacheErrorCached(t *testing.T) {
	cache := NewImageCache(10)
	bad := "/nonexistent/path/to/image.png"

	c1, err := cache.Load(bad)
	if err == nil || c1 == nil || c1.Err == nil {
		t.Fatalf("Load of missing file = %v, %v", c1, err)
	}
	c2, err := cache.Load(bad)
	if err == nil || c2 != c1 {
		t.Error("failed load should be cached, not retried")
	}
}

func TestImageCacheClear(t *testing.T) {
	dir := t.TempDir()
	cache := NewImageCache(10)
	p := writePNG(t, dir, "a.png", 3, 3, color.White)
	if _, err := cache.Load(p); err != nil {
		t.Fatal(err)
	}
	cache.Clear()
	if _, ok := cache.Get(p); ok || cache.Len() != 0 {
		t.Error("cache should be empty after Clear")
	}
}
