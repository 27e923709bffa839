package embed

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		path   string
		want   bool
	}{
		{"alt equals path", Target{Alt: "cat.png"}, "cat.png", true},
		{"path inside alt", Target{Alt: "pets/cat.png"}, "cat.png", true},
		{"alt inside path", Target{Alt: "cat.png"}, "pets/cat.png", true},
		{"escaped path in src", Target{Src: "app://local/vault/My%20Cat.png?123"}, "My Cat.png", true},
		{"raw path not in src", Target{Src: "app://local/vault/My%20Cat.png"}, "Dog.png", false},
		{"empty alt ignored", Target{Alt: ""}, "cat.png", false},
		{"unrelated", Target{Alt: "dog.png", Src: "file:///dog.png"}, "cat.png", false},
		{"empty path", Target{Alt: "cat.png"}, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.target.Matches(tc.path); got != tc.want {
				t.Errorf("%+v.Matches(%q) = %v, want %v", tc.target, tc.path, got, tc.want)
			}
		})
	}
}

func TestEscapePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"cat.png", "cat.png"},
		{"My Cat.png", "My%20Cat.png"},
		{"dir/sub/a.png", "dir/sub/a.png"},
		{"café.png", "caf%C3%A9.png"},
		{"a[1].png", "a%5B1%5D.png"},
	}
	for _, tc := range tests {
		if got := EscapePath(tc.in); got != tc.want {
			t.Errorf("EscapePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		target  Target
		width   int
		want    string
		matched bool
	}{
		{
			name:    "adds width",
			doc:     "# Title\n![[p.png]]\ntrailer",
			target:  Target{Alt: "p.png"},
			width:   320,
			want:    "# Title\n![[p.png|320]]\ntrailer",
			matched: true,
		},
		{
			name:    "replaces width",
			doc:     "![[p.png|123]]",
			target:  Target{Alt: "p.png"},
			width:   77,
			want:    "![[p.png|77]]",
			matched: true,
		},
		{
			name:    "drops height",
			doc:     "x ![[p.png|123x45]] y",
			target:  Target{Alt: "p.png"},
			width:   200,
			want:    "x ![[p.png|200]] y",
			matched: true,
		},
		{
			name:    "matches by src",
			doc:     "![[My Pic.png]]",
			target:  Target{Src: "file:///v/My%20Pic.png"},
			width:   10,
			want:    "![[My Pic.png|10]]",
			matched: true,
		},
		{
			name:    "second directive on line",
			doc:     "![[a.png]] ![[b.png]]",
			target:  Target{Alt: "b.png"},
			width:   50,
			want:    "![[a.png]] ![[b.png|50]]",
			matched: true,
		},
		{
			name:    "first line wins",
			doc:     "![[p.png|10]]\n![[p.png|20]]",
			target:  Target{Alt: "p.png"},
			width:   99,
			want:    "![[p.png|99]]\n![[p.png|20]]",
			matched: true,
		},
		{
			name:    "keeps carriage returns",
			doc:     "a\r\n![[p.png]]\r\nb\r\n",
			target:  Target{Alt: "p.png"},
			width:   5,
			want:    "a\r\n![[p.png|5]]\r\nb\r\n",
			matched: true,
		},
		{
			name:   "no match",
			doc:    "![[q.png]]\ntext",
			target: Target{Alt: "p.png"},
			width:  50,
			want:   "![[q.png]]\ntext",
		},
		{
			name:   "zero width",
			doc:    "![[p.png]]",
			target: Target{Alt: "p.png"},
			width:  0,
			want:   "![[p.png]]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, matched := Rewrite(tc.doc, tc.target, tc.width)
			if matched != tc.matched {
				t.Errorf("matched = %v, want %v", matched, tc.matched)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Rewrite mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestRewriteOtherLinesUntouched checks that only the matched line changes.
func TestRewriteOtherLinesUntouched(t *testing.T) {
	doc := "intro ![[other.png|9]]\n\n  ![[p.png]]  tail\n![[p2.jpg]]\nend"
	got, ok := Rewrite(doc, Target{Alt: "p.png"}, 640)
	if !ok {
		t.Fatal("Rewrite did not match")
	}
	before := strings.Split(doc, "\n")
	after := strings.Split(got, "\n")
	if len(before) != len(after) {
		t.Fatalf("line count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if i == 2 {
			if want := "  ![[p.png|640]]  tail"; after[i] != want {
				t.Errorf("line %d = %q, want %q", i, after[i], want)
			}
			continue
		}
		if before[i] != after[i] {
			t.Errorf("line %d changed: %q -> %q", i, before[i], after[i])
		}
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		target  Target
		want    string
		matched bool
	}{
		{
			name:    "removes directive only",
			doc:     "before ![[p.png|300]] after\nnext",
			target:  Target{Alt: "p.png"},
			want:    "before  after\nnext",
			matched: true,
		},
		{
			name:    "keeps empty line",
			doc:     "a\n![[p.png]]\nb",
			target:  Target{Alt: "p.png"},
			want:    "a\n\nb",
			matched: true,
		},
		{
			name:    "first line wins",
			doc:     "![[p.png]]\n![[p.png]]",
			target:  Target{Alt: "p.png"},
			want:    "\n![[p.png]]",
			matched: true,
		},
		{
			name:   "no match",
			doc:    "![[q.png]]",
			target: Target{Alt: "p.png"},
			want:   "![[q.png]]",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, matched := Delete(tc.doc, tc.target)
			if matched != tc.matched {
				t.Errorf("matched = %v, want %v", matched, tc.matched)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Delete mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLocateAndList(t *testing.T) {
	doc := "![[a.png]]\ntext\n![[b.png|4x2]] ![[c.png]]"

	loc, ok := Locate(doc, Target{Alt: "c.png"})
	if !ok {
		t.Fatal("Locate found nothing")
	}
	want := Location{Line: 2, Directive: Directive{Path: "c.png", Start: 15, End: 25}}
	if diff := cmp.Diff(want, loc); diff != "" {
		t.Errorf("Locate mismatch (-want +got):\n%s", diff)
	}

	got := List(doc)
	wantList := []Location{
		{Line: 0, Directive: Directive{Path: "a.png", Start: 0, End: 10}},
		{Line: 2, Directive: Directive{Path: "b.png", Width: 4, Height: 2, Start: 0, End: 14}},
		{Line: 2, Directive: Directive{Path: "c.png", Start: 15, End: 25}},
	}
	if diff := cmp.Diff(wantList, got); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}
