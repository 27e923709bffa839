package host

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// BufferObserver implementations can register themselves with a Buffer
// to be told about every replacement of its text.
type BufferObserver interface {
	// Replaced informs the implementer that the text changed from old to text.
	Replaced(old, text string)
}

// Buffer is an in-memory document implementing View. Observers are
// notified synchronously after each SetText.
type Buffer struct {
	mu        sync.Mutex
	text      string
	observers map[BufferObserver]struct{}
	seq       int // number of replacements so far
}

var _ View = (*Buffer)(nil)

// NewBuffer returns a Buffer holding text.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

// Text returns the current text.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// SetText replaces the text and notifies observers.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	old := b.text
	b.text = text
	b.seq++
	obs := make([]BufferObserver, 0, len(b.observers))
	for o := range b.observers {
		obs = append(obs, o)
	}
	b.mu.Unlock()

	for _, o := range obs {
		o.Replaced(old, text)
	}
}

// Seq returns the number of replacements made so far.
func (b *Buffer) Seq() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}

// AddObserver adds o as an observer for replacements of this Buffer.
func (b *Buffer) AddObserver(o BufferObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.observers == nil {
		b.observers = make(map[BufferObserver]struct{})
	}
	b.observers[o] = struct{}{}
}

// DelObserver removes o as an observer.
func (b *Buffer) DelObserver(o BufferObserver) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.observers[o]; !exists {
		return fmt.Errorf("can't find observer in Buffer.DelObserver")
	}
	delete(b.observers, o)
	return nil
}

// FileSaver is a BufferObserver that writes each new text to a file.
type FileSaver struct {
	Path   string
	Logger *log.Logger
}

// Replaced writes text to fs.Path, preserving the file's mode.
func (fs *FileSaver) Replaced(_, text string) {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(fs.Path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.WriteFile(fs.Path, []byte(text), mode); err != nil && fs.Logger != nil {
		fs.Logger.Printf("save %s: %v", fs.Path, err)
	}
}
