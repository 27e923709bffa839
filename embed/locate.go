package embed

import (
	"strings"
)

// Target holds the attributes of a rendered image used to find the embed
// that produced it.
type Target struct {
	Alt string // usually the embed path or derived from it
	Src string // resolved resource URL, possibly percent-encoded
}

// Matches reports whether an embed with the given path may have produced
// the image t. Any of these is sufficient: the path is inside the alt
// text, the alt text is inside the path, or the escaped path is inside
// the src. An empty alt takes no part in the test.
func (t Target) Matches(path string) bool {
	if path == "" {
		return false
	}
	if t.Alt != "" && (strings.Contains(t.Alt, path) || strings.Contains(path, t.Alt)) {
		return true
	}
	return t.Src != "" && strings.Contains(t.Src, EscapePath(path))
}

// Location is a directive together with the line that holds it.
type Location struct {
	Line      int // zero-based line index
	Directive Directive
}

// Locate scans doc line by line and returns the first directive whose
// path matches t. Scanning stops at the first matching line.
func Locate(doc string, t Target) (Location, bool) {
	line := 0
	for rest := doc; ; line++ {
		text, tail, more := strings.Cut(rest, "\n")
		for _, d := range Parse(text) {
			if t.Matches(d.Path) {
				return Location{Line: line, Directive: d}, true
			}
		}
		if !more {
			return Location{}, false
		}
		rest = tail
	}
}

// Rewrite replaces the embed matching t with one carrying exactly width
// w. Any previous width or height annotation is dropped. It returns doc
// unchanged and false when nothing matches or w < 1.
func Rewrite(doc string, t Target, w int) (string, bool) {
	if w < 1 {
		return doc, false
	}
	loc, ok := Locate(doc, t)
	if !ok {
		return doc, false
	}
	return splice(doc, loc, loc.Directive.WithWidth(w).String()), true
}

// Delete removes the text of the embed matching t from its line. The
// line itself, and everything else on it, is kept.
func Delete(doc string, t Target) (string, bool) {
	loc, ok := Locate(doc, t)
	if !ok {
		return doc, false
	}
	return splice(doc, loc, ""), true
}

// List returns every directive in doc in document order.
func List(doc string) []Location {
	var locs []Location
	for i, text := range strings.Split(doc, "\n") {
		for _, d := range Parse(text) {
			locs = append(locs, Location{Line: i, Directive: d})
		}
	}
	return locs
}

// splice replaces the bytes of loc's directive with repl.
func splice(doc string, loc Location, repl string) string {
	off := lineOffset(doc, loc.Line)
	start := off + loc.Directive.Start
	end := off + loc.Directive.End
	return doc[:start] + repl + doc[end:]
}

// lineOffset returns the byte offset at which line n starts.
func lineOffset(doc string, n int) int {
	off := 0
	for ; n > 0; n-- {
		i := strings.IndexByte(doc[off:], '\n')
		if i < 0 {
			return len(doc)
		}
		off += i + 1
	}
	return off
}

// EscapePath percent-encodes path the way a browser's encodeURI does, so
// that it can be compared against a rendered image's src.
func EscapePath(path string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	for i := 0; i < len(path); i++ {
		c := path[i]
		if keepInURI(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0f])
	}
	return sb.String()
}

func keepInURI(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'();/?:@&=+$,#", c) >= 0
}
