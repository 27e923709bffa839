// Package markdown renders markdown documents that contain ![[path|W]]
// image embeds, and lists the images such a document produces.
package markdown

import (
	"strconv"

	"github.com/rjkroege/imgembed/embed"
	"github.com/rjkroege/imgembed/markdown/ast"
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

type embedParser struct{}

var defaultEmbedParser = &embedParser{}

// NewEmbedParser returns an InlineParser that parses ![[...]] embeds.
func NewEmbedParser() parser.InlineParser {
	return defaultEmbedParser
}

func (s *embedParser) Trigger() []byte {
	return []byte{'!'}
}

func (s *embedParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, segment := block.PeekLine()
	d, ok := embed.ParseAt(string(line), 0)
	if !ok {
		return nil
	}
	n := ast.NewEmbed(d.Path, d.Width, d.Height)
	n.Start = segment.Start
	n.Stop = segment.Start + d.End
	block.Advance(d.End)
	return n
}

// EmbedHTMLRenderer renders Embed nodes as <img> elements.
type EmbedHTMLRenderer struct {
	html.Config
	resolve Resolver
}

// NewEmbedHTMLRenderer returns an EmbedHTMLRenderer that computes each
// image src with resolve.
func NewEmbedHTMLRenderer(resolve Resolver, opts ...html.Option) renderer.NodeRenderer {
	r := &EmbedHTMLRenderer{
		Config:  html.NewConfig(),
		resolve: resolve,
	}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *EmbedHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindEmbed, r.renderEmbed)
}

func (r *EmbedHTMLRenderer) renderEmbed(w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	n := node.(*ast.Embed)
	_, _ = w.WriteString(`<img src="`)
	_, _ = w.Write(util.EscapeHTML([]byte(r.resolve(n.Path))))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(n.Path)))
	_ = w.WriteByte('"')
	if n.Width > 0 {
		_, _ = w.WriteString(` width="` + strconv.Itoa(n.Width) + `"`)
		if n.Height > 0 {
			_, _ = w.WriteString(` height="` + strconv.Itoa(n.Height) + `"`)
		}
	}
	if r.XHTML {
		_, _ = w.WriteString(" />")
	} else {
		_ = w.WriteByte('>')
	}
	return gast.WalkSkipChildren, nil
}

// Embeds is a goldmark extension for ![[path|W]] image embeds.
type Embeds struct {
	// Resolve maps an embed path to an image src. Nil means the path
	// is escaped and used as is.
	Resolve Resolver
}

// Extend implements goldmark.Extender.
func (e *Embeds) Extend(m goldmark.Markdown) {
	resolve := e.Resolve
	if resolve == nil {
		resolve = embed.EscapePath
	}
	// Ahead of the link parser, which also triggers on '!'.
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(NewEmbedParser(), 199),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewEmbedHTMLRenderer(resolve), 500),
	))
}
