package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/mdlive/internal/config"
	apierrors "github.com/diogo/mdlive/internal/errors"
	"github.com/diogo/mdlive/internal/highlight"
	"github.com/diogo/mdlive/internal/logging"
	"github.com/diogo/mdlive/internal/markdown"
	"github.com/diogo/mdlive/internal/preview"
)

var (
	colorSuccess = lipgloss.Color("#9ece6a")
	colorWarning = lipgloss.Color("#e0af68")
	colorError   = lipgloss.Color("#f7768e")
	colorTextDim = lipgloss.Color("#565f89")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
)

// loadConfig loads the user configuration. A broken file is reported on
// stderr and the defaults are used.
func loadConfig(stderr io.Writer) config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, warningStyle.Render(fmt.Sprintf("⚠ %v (using defaults)", err)))
	}
	return cfg
}

// newLogger builds the stderr logger. A non-empty flag overrides the config.
func newLogger(cfg config.Config, levelFlag string) *slog.Logger {
	level := cfg.LogLevel
	if levelFlag != "" {
		level = levelFlag
	}
	return logging.New(logging.ParseLevel(level))
}

// renderOptions maps the markdown config section to binder options.
func renderOptions(cfg config.Config) *preview.RenderOptions {
	return &preview.RenderOptions{
		GFM:        cfg.Markdown.GFM,
		Breaks:     cfg.Markdown.Breaks,
		Emoji:      cfg.Markdown.Emoji,
		HeadingIDs: cfg.Markdown.HeadingIDs,
		Footnotes:  cfg.Markdown.Footnotes,
	}
}

// newHighlighter returns nil when highlighting is disabled.
func newHighlighter(cfg config.Config) preview.Highlighter {
	if !cfg.Highlight.Enabled {
		return nil
	}
	return highlight.New()
}

// renderHTML runs text through a one-shot binder and returns the preview HTML.
func renderHTML(cfg config.Config, text string, logger *slog.Logger) string {
	doc, _, _ := preview.NewEditorDocument(text)

	opts := []preview.Option{
		preview.WithRenderer(markdown.New()),
		preview.WithRenderOptions(*renderOptions(cfg)),
		preview.WithLogger(logger),
	}
	if h := newHighlighter(cfg); h != nil {
		opts = append(opts, preview.WithHighlighter(h))
	}

	b, _ := preview.Bind(doc, opts...)
	return b.HTML()
}

// readInput reads a Markdown source from a file argument or piped stdin.
func readInput(args []string, stdin io.Reader, deps *Dependencies) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}
	if (len(args) > 0 && args[0] == "-") || deps.StdinIsPipe(stdin) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	return "", errors.New("no input: pass a Markdown file or pipe one on stdin")
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	var cfgErr *apierrors.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Key: %s", cfgErr.Key)))
	case errors.Is(err, apierrors.ErrUnknownConfigKey):
		sb.WriteString(dimStyle.Render("\n  Hint: Run 'mdlive config keys' to list the accepted keys"))
	}

	return sb.String()
}
