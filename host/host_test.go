package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	changes [][2]string
}

func (r *recorder) Replaced(old, text string) {
	r.changes = append(r.changes, [2]string{old, text})
}

func TestBufferObservers(t *testing.T) {
	b := NewBuffer("one")
	r := &recorder{}
	b.AddObserver(r)

	b.SetText("two")
	b.SetText("three")

	want := [][2]string{{"one", "two"}, {"two", "three"}}
	if diff := cmp.Diff(want, r.changes); diff != "" {
		t.Errorf("observer saw (-want +got):\n%s", diff)
	}
	if got := b.Seq(); got != 2 {
		t.Errorf("Seq = %d, want 2", got)
	}

	if err := b.DelObserver(r); err != nil {
		t.Fatalf("DelObserver: %v", err)
	}
	if err := b.DelObserver(r); err == nil {
		t.Error("second DelObserver should fail")
	}
	b.SetText("four")
	if len(r.changes) != 2 {
		t.Errorf("removed observer still notified")
	}
}

func TestMemoryWorkspace(t *testing.T) {
	buf := NewBuffer("text")
	m := NewMemory("note.md", buf)

	if name, ok := m.ActiveFile(); !ok || name != "note.md" {
		t.Errorf("ActiveFile = %q, %v", name, ok)
	}
	v, ok := m.ActiveView()
	if !ok || v.Text() != "text" {
		t.Fatalf("ActiveView = %v, %v", v, ok)
	}

	m.Close()
	if _, ok := m.ActiveFile(); ok {
		t.Error("ActiveFile after Close should be absent")
	}
	if _, ok := m.ActiveView(); ok {
		t.Error("ActiveView after Close should be absent")
	}

	if _, ok := NewMemory("x.md", nil).ActiveView(); ok {
		t.Error("nil buffer should mean no active view")
	}
}

func TestNotices(t *testing.T) {
	var n Notices
	n.Notify("a")
	n.Notify("b")
	if diff := cmp.Diff([]string{"a", "b"}, n.Messages()); diff != "" {
		t.Errorf("Messages mismatch (-want +got):\n%s", diff)
	}
}

func TestFileSaver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}

	b := NewBuffer("old")
	b.AddObserver(&FileSaver{Path: path})
	b.SetText("new ![[a.png|10]]")

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new ![[a.png|10]]" {
		t.Errorf("file holds %q", got)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", fi.Mode().Perm())
	}
}
