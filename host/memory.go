package host

import (
	"log"
	"sync"
)

// Memory is a Workspace with at most one open file backed by a Buffer.
type Memory struct {
	name string
	buf  *Buffer
}

var _ Workspace = (*Memory)(nil)

// NewMemory returns a workspace whose active file is name, viewed
// through buf. A nil buf means no editable view is active.
func NewMemory(name string, buf *Buffer) *Memory {
	return &Memory{name: name, buf: buf}
}

// ActiveFile returns the name of the open file.
func (m *Memory) ActiveFile() (string, bool) {
	return m.name, m.name != ""
}

// ActiveView returns the Buffer for the open file.
func (m *Memory) ActiveView() (View, bool) {
	if m.buf == nil {
		return nil, false
	}
	return m.buf, true
}

// Close forgets the open file and its view.
func (m *Memory) Close() {
	m.name = ""
	m.buf = nil
}

// Notices is a Notifier that remembers every message.
type Notices struct {
	mu   sync.Mutex
	msgs []string
}

// Notify records msg.
func (n *Notices) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

// Messages returns the recorded messages in order.
func (n *Notices) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

// LogNotifier returns a Notifier that prints messages with l, or with the
// standard logger when l is nil.
func LogNotifier(l *log.Logger) Notifier {
	return NotifierFunc(func(msg string) {
		if l == nil {
			log.Println(msg)
			return
		}
		l.Println(msg)
	})
}
