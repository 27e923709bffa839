// Package embed finds and rewrites the `![[path|W]]` image embeds that
// produce the images shown in a rendered document.
//
// There is no stable identifier tying a rendered image to the line that
// produced it. Matching is a substring heuristic and the first matching
// line always wins. Two embeds whose paths are indistinguishable to the
// heuristic cannot be told apart: edits land on the earlier one.
package embed

import (
	"strconv"
	"strings"
)

const (
	openMarker  = "![["
	closeMarker = "]]"
)

// Directive is one `![[path]]`, `![[path|W]]` or `![[path|WxH]]` embed
// found in a line of text.
type Directive struct {
	Path   string
	Width  int // 0 when absent
	Height int // 0 when absent

	// Start and End are byte offsets of the directive within its line.
	// End is exclusive.
	Start int
	End   int
}

// HasWidth reports whether the directive carries a width annotation.
func (d Directive) HasWidth() bool {
	return d.Width > 0
}

// HasHeight reports whether the directive carries a height annotation.
func (d Directive) HasHeight() bool {
	return d.Height > 0
}

// String returns the canonical text form of d.
func (d Directive) String() string {
	var sb strings.Builder
	sb.WriteString(openMarker)
	sb.WriteString(d.Path)
	if d.Width > 0 {
		sb.WriteByte('|')
		sb.WriteString(strconv.Itoa(d.Width))
		if d.Height > 0 {
			sb.WriteByte('x')
			sb.WriteString(strconv.Itoa(d.Height))
		}
	}
	sb.WriteString(closeMarker)
	return sb.String()
}

// WithWidth returns a copy of d that carries exactly width w. Any height
// annotation is dropped.
func (d Directive) WithWidth(w int) Directive {
	d.Width = w
	d.Height = 0
	return d
}

// Parse returns every directive in line, in order of appearance.
func Parse(line string) []Directive {
	var ds []Directive
	i := 0
	for i < len(line) {
		j := strings.Index(line[i:], openMarker)
		if j < 0 {
			break
		}
		start := i + j
		d, ok := ParseAt(line, start)
		if !ok {
			// Step past the '!' so that "![[![[a]]" still finds the inner embed.
			i = start + 1
			continue
		}
		ds = append(ds, d)
		i = d.End
	}
	return ds
}

// ParseAt parses a single directive beginning exactly at text[start].
func ParseAt(text string, start int) (Directive, bool) {
	if !strings.HasPrefix(text[start:], openMarker) {
		return Directive{}, false
	}
	p := start + len(openMarker)
	pathStart := p
	for p < len(text) {
		c := text[p]
		if c == '|' || c == ']' || c == '[' || c == '\n' {
			break
		}
		p++
	}
	if p == pathStart || p >= len(text) {
		return Directive{}, false
	}
	d := Directive{
		Path:  text[pathStart:p],
		Start: start,
	}

	if text[p] == '|' {
		end := strings.Index(text[p:], closeMarker)
		if end < 0 {
			return Directive{}, false
		}
		w, h, ok := parseSize(text[p+1 : p+end])
		if !ok {
			return Directive{}, false
		}
		d.Width, d.Height = w, h
		p += end
	}

	if !strings.HasPrefix(text[p:], closeMarker) {
		return Directive{}, false
	}
	d.End = p + len(closeMarker)
	return d, true
}

// parseSize accepts "W" or "WxH" where both are decimal integers.
func parseSize(s string) (w, h int, ok bool) {
	ws, hs, hasH := strings.Cut(s, "x")
	w, ok = parseDigits(ws)
	if !ok {
		return 0, 0, false
	}
	if hasH {
		h, ok = parseDigits(hs)
		if !ok {
			return 0, 0, false
		}
	}
	return w, h, true
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
