package preview

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/net/html"

	apierrors "github.com/diogo/mdlive/internal/errors"
	"github.com/diogo/mdlive/internal/logging"
)

const (
	// Placeholder is rendered in place of empty or all-whitespace input.
	Placeholder = "*Start typing...*"

	// WarningHTML is shown while no Markdown renderer is available.
	WarningHTML = `<p style="color:#f59e0b">⚠ Markdown renderer not loaded yet. Try refreshing.</p>`

	tabIndent = "  "
)

// Binder keeps an output surface in sync with an input surface.
type Binder struct {
	input  InputSurface
	output OutputSurface

	renderer    Renderer
	highlighter Highlighter
	opts        RenderOptions
	logger      *slog.Logger
	recorder    Recorder

	source  string
	html    string
	renders int
}

// Option configures a Binder.
type Option func(*Binder)

// WithRenderer injects the Markdown collaborator. A nil renderer leaves the
// binder in the unavailable state until AttachRenderer is called.
func WithRenderer(r Renderer) Option {
	return func(b *Binder) { b.renderer = r }
}

// WithHighlighter injects the syntax-highlighting collaborator.
func WithHighlighter(h Highlighter) Option {
	return func(b *Binder) { b.highlighter = h }
}

// WithRenderOptions overrides the options passed to Renderer.Configure.
func WithRenderOptions(opts RenderOptions) Option {
	return func(b *Binder) { b.opts = opts }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(b *Binder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRecorder sets a render observer, typically metrics.
func WithRecorder(r Recorder) Option {
	return func(b *Binder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// Bind attaches a Binder to the md-input and md-preview surfaces of page,
// configures the renderer and performs the initial render. When either
// surface is missing it returns false and does nothing else.
func Bind(page Page, opts ...Option) (*Binder, bool) {
	b := &Binder{
		opts:     DefaultRenderOptions(),
		logger:   logging.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}

	input, ok := page.Input(InputID)
	if !ok {
		b.logger.Debug("preview not bound", "error", apierrors.NewElementError(InputID))
		return nil, false
	}
	output, ok := page.Output(PreviewID)
	if !ok {
		b.logger.Debug("preview not bound", "error", apierrors.NewElementError(PreviewID))
		return nil, false
	}
	b.input, b.output = input, output

	b.configure()
	b.Render()
	return b, true
}

// AttachRenderer supplies a renderer that was not available at bind time,
// configures it and re-renders.
func (b *Binder) AttachRenderer(r Renderer) {
	b.renderer = r
	b.configure()
	b.Render()
}

// OnInput handles a text-input event.
func (b *Binder) OnInput() {
	b.Render()
}

// HandleKey handles a key press inside the input surface. Tab replaces the
// selection with two spaces, places the cursor after them and re-renders;
// the return value reports whether the host must suppress its default
// handling of the key.
func (b *Binder) HandleKey(key string) bool {
	if key != "Tab" && key != "tab" {
		return false
	}

	value := []rune(b.input.Value())
	start, end := b.input.Selection()
	start, end = clamp(start, len(value)), clamp(end, len(value))
	if end < start {
		start, end = end, start
	}

	var sb strings.Builder
	sb.WriteString(string(value[:start]))
	sb.WriteString(tabIndent)
	sb.WriteString(string(value[end:]))

	cursor := start + len(tabIndent)
	b.input.SetValue(sb.String())
	b.input.SetSelection(cursor, cursor)
	b.Render()
	return true
}

// Render recomputes the preview from the current input text and replaces
// the output surface content.
func (b *Binder) Render() {
	start := time.Now()
	outcome, blocks := b.render()
	b.recorder.ObserveRender(outcome, time.Since(start), blocks)
}

func (b *Binder) render() (Outcome, int) {
	if b.renderer == nil {
		b.commit(WarningHTML, "")
		return OutcomeUnavailable, 0
	}

	outcome := OutcomeRendered
	raw := strings.TrimSpace(b.input.Value())
	if raw == "" {
		raw = Placeholder
		outcome = OutcomePlaceholder
	}

	out, err := b.renderer.Render(raw)
	if err != nil {
		b.logger.Warn("markdown render failed", "error", err)
		b.commit(failureHTML(err), raw)
		return OutcomeFailed, 0
	}

	blocks := 0
	if b.highlighter != nil {
		out, blocks = b.highlight(out)
	}
	b.commit(out, raw)
	return outcome, blocks
}

func (b *Binder) highlight(fragment string) (string, int) {
	root, err := parseFragment(fragment)
	if err != nil {
		b.logger.Warn("rendered html not parseable, skipping highlight", "error", err)
		return fragment, 0
	}

	blocks := codeBlocks(root)
	if len(blocks) == 0 {
		return fragment, 0
	}
	for i, block := range blocks {
		if err := b.highlighter.Highlight(block); err != nil {
			b.logger.Warn("highlight failed", "block", i, "error", err)
		}
	}

	out, err := renderChildren(root)
	if err != nil {
		b.logger.Warn("highlighted html not serializable", "error", err)
		return fragment, 0
	}
	return out, len(blocks)
}

func (b *Binder) configure() {
	if b.renderer == nil {
		return
	}
	if err := b.renderer.Configure(b.opts); err != nil {
		b.logger.Warn("markdown renderer rejected options", "error", err)
	}
}

func (b *Binder) commit(out, source string) {
	b.output.SetContent(out)
	b.html = out
	b.source = source
	b.renders++
}

// HTML returns the content most recently assigned to the output surface.
func (b *Binder) HTML() string { return b.html }

// Source returns the Markdown text last handed to the renderer, including
// the placeholder. It is empty while the renderer is unavailable.
func (b *Binder) Source() string { return b.source }

// Renders returns the number of completed render passes.
func (b *Binder) Renders() int { return b.renders }

// Available reports whether a renderer is attached.
func (b *Binder) Available() bool { return b.renderer != nil }

func failureHTML(err error) string {
	return fmt.Sprintf(`<p style="color:#f59e0b">⚠ Markdown rendering failed: %s</p>`, html.EscapeString(err.Error()))
}
