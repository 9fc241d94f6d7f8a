// Package markdown implements the preview renderer on top of goldmark.
package markdown

import (
	"bytes"
	"sync"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	apierrors "github.com/diogo/mdlive/internal/errors"
	"github.com/diogo/mdlive/internal/preview"
)

// Renderer converts Markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	mu         sync.RWMutex
	md         goldmark.Markdown
	opts       preview.RenderOptions
	configured bool
}

var _ preview.Renderer = (*Renderer)(nil)

// New returns a Renderer configured with the default preview options.
func New() *Renderer {
	r := &Renderer{}
	_ = r.Configure(preview.DefaultRenderOptions())
	return r
}

// Configure rebuilds the goldmark pipeline for opts. Calling it again with
// the same options keeps the existing pipeline.
func (r *Renderer) Configure(opts preview.RenderOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.configured && r.opts == opts {
		return nil
	}
	r.md = build(opts)
	r.opts = opts
	r.configured = true
	return nil
}

// Options returns the options of the active pipeline.
func (r *Renderer) Options() preview.RenderOptions {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.opts
}

// Render converts source to an HTML fragment.
func (r *Renderer) Render(source string) (string, error) {
	r.mu.RLock()
	md := r.md
	r.mu.RUnlock()

	if md == nil {
		return "", apierrors.ErrRendererUnavailable
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", apierrors.NewRenderError("render", err)
	}
	return buf.String(), nil
}

func build(opts preview.RenderOptions) goldmark.Markdown {
	var exts []goldmark.Extender
	if opts.GFM {
		exts = append(exts, extension.GFM) // tables, strikethrough, autolinks, task lists
	}
	if opts.Footnotes {
		exts = append(exts, extension.Footnote)
	}
	if opts.Emoji {
		exts = append(exts, emoji.Emoji)
	}

	var parserOpts []parser.Option
	if opts.HeadingIDs {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	}

	// Raw HTML is passed through untouched; the preview does not sanitize.
	rendererOpts := []renderer.Option{html.WithUnsafe()}
	if opts.Breaks {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}

	return goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}
