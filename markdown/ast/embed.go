// Package ast defines the AST node for ![[path|W]] image embeds.
package ast

import (
	"fmt"

	gast "github.com/yuin/goldmark/ast"
)

// An Embed is an inline ![[path]], ![[path|W]] or ![[path|WxH]] image.
type Embed struct {
	gast.BaseInline

	Path   string
	Width  int
	Height int

	// Start and Stop are the byte offsets of the directive in the source.
	Start, Stop int
}

// Dump implements Node.Dump.
func (n *Embed) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{
		"Path":   n.Path,
		"Width":  fmt.Sprint(n.Width),
		"Height": fmt.Sprint(n.Height),
	}, nil)
}

// KindEmbed is a NodeKind of the Embed node.
var KindEmbed = gast.NewNodeKind("Embed")

// Kind implements Node.Kind.
func (n *Embed) Kind() gast.NodeKind {
	return KindEmbed
}

// NewEmbed returns a new Embed node.
func NewEmbed(path string, w, h int) *Embed {
	return &Embed{Path: path, Width: w, Height: h}
}
