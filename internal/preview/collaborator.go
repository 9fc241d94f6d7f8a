package preview

import (
	"time"

	"golang.org/x/net/html"
)

// RenderOptions configures the Markdown collaborator.
type RenderOptions struct {
	// GFM enables GitHub-flavored syntax extensions.
	GFM bool
	// Breaks treats single newlines as line breaks.
	Breaks bool

	Emoji      bool
	HeadingIDs bool
	Footnotes  bool
}

// DefaultRenderOptions returns the options the binder applies at bind time.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		GFM:    true,
		Breaks: true,
	}
}

// Renderer converts Markdown to HTML.
type Renderer interface {
	Configure(opts RenderOptions) error
	Render(markdown string) (string, error)
}

// Highlighter adds syntax highlighting markup to one code element in place.
type Highlighter interface {
	Highlight(block *html.Node) error
}

// Outcome classifies a completed render pass.
type Outcome string

const (
	OutcomeRendered    Outcome = "rendered"
	OutcomePlaceholder Outcome = "placeholder"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeFailed      Outcome = "failed"
)

// Recorder observes completed render passes.
type Recorder interface {
	ObserveRender(outcome Outcome, elapsed time.Duration, blocks int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRender(Outcome, time.Duration, int) {}
