package markdown

import (
	"bytes"
	"io"
	"path/filepath"

	"github.com/rjkroege/imgembed/embed"
	"github.com/rjkroege/imgembed/markdown/ast"
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Resolver maps an embed path to the src of the rendered image.
type Resolver func(path string) string

// FileResolver resolves relative paths against dir and returns file://
// URLs with the path escaped.
func FileResolver(dir string) Resolver {
	return func(path string) string {
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return "file://" + embed.EscapePath(filepath.ToSlash(path))
	}
}

// New returns a goldmark instance that understands embeds, with the
// GitHub flavoured markdown extensions enabled.
func New(resolve Resolver) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			&Embeds{Resolve: resolve},
		),
	)
}

// Render writes the HTML for source to w.
func Render(w io.Writer, source []byte, resolve Resolver) error {
	return New(resolve).Convert(source, w)
}

// Image is an image produced by an embed in a document.
type Image struct {
	Path   string
	Width  int // 0 when the embed has no width
	Height int
	Alt    string
	Src    string
	Line   int // zero-based line of the embed
}

// Target returns the attributes used to find the image's embed again.
func (im Image) Target() embed.Target {
	return embed.Target{Alt: im.Alt, Src: im.Src}
}

// Images returns the images that rendering source would produce, in
// document order. Embeds inside code are not images.
func Images(source []byte, resolve Resolver) []Image {
	if resolve == nil {
		resolve = embed.EscapePath
	}
	doc := New(resolve).Parser().Parse(text.NewReader(source))

	var images []Image
	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		e, ok := n.(*ast.Embed)
		if !ok {
			return gast.WalkContinue, nil
		}
		images = append(images, Image{
			Path:   e.Path,
			Width:  e.Width,
			Height: e.Height,
			Alt:    e.Path,
			Src:    resolve(e.Path),
			Line:   bytes.Count(source[:e.Start], []byte{'\n'}),
		})
		return gast.WalkSkipChildren, nil
	})
	return images
}
