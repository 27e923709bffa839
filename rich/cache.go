package rich

import (
	"container/list"
	"image"
	"sync"
)

// CachedImage is a decoded image and its Plan 9 pixel data. A failed
// load is cached too, with Err set, so that it is not retried.
type CachedImage struct {
	Path     string
	Original image.Image
	Data     []byte // ConvertToPlan9 of Original
	Width    int
	Height   int
	Err      error
}

// Size returns the natural size of the image.
func (ci *CachedImage) Size() image.Point {
	return image.Pt(ci.Width, ci.Height)
}

// ImageCache is an LRU cache of loaded images keyed by path.
type ImageCache struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List // front is most recently used
	entries map[string]*list.Element
}

// NewImageCache returns a cache that holds at most maxSize images.
func NewImageCache(maxSize int) *ImageCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &ImageCache{
		maxSize: maxSize,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

// Load returns the cached image for path, loading it on a miss. The
// returned error is the entry's Err.
func (c *ImageCache) Load(path string) (*CachedImage, error) {
	c.mu.Lock()
	if e, ok := c.entries[path]; ok {
		c.order.MoveToFront(e)
		ci := e.Value.(*CachedImage)
		c.mu.Unlock()
		return ci, ci.Err
	}
	c.mu.Unlock()

	ci := load(path)

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[path]; ok {
		// Loaded concurrently; keep the first.
		c.order.MoveToFront(e)
		ci = e.Value.(*CachedImage)
		return ci, ci.Err
	}
	c.entries[path] = c.order.PushFront(ci)
	for c.order.Len() > c.maxSize {
		old := c.order.Back()
		c.order.Remove(old)
		delete(c.entries, old.Value.(*CachedImage).Path)
	}
	return ci, ci.Err
}

func load(path string) *CachedImage {
	ci := &CachedImage{Path: path}
	img, err := LoadImage(path)
	if err != nil {
		ci.Err = err
		return ci
	}
	data, err := ConvertToPlan9(img)
	if err != nil {
		ci.Err = err
		return ci
	}
	b := img.Bounds()
	ci.Original = img
	ci.Data = data
	ci.Width = b.Dx()
	ci.Height = b.Dy()
	return ci
}

// Get returns the cached image for path without loading it.
func (c *ImageCache) Get(path string) (*CachedImage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[path]; ok {
		return e.Value.(*CachedImage), true
	}
	return nil, false
}

// Len returns the number of cached entries.
func (c *ImageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear empties the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element)
}
