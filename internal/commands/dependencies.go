package commands

import (
	"context"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/mdlive/internal/server"
	"github.com/diogo/mdlive/internal/tui"
)

// EditorRunner runs the interactive editor.
type EditorRunner interface {
	RunEditor(opts tui.Options) (string, error)
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Editor is the terminal user interface.
	Editor EditorRunner

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error

	// Serve runs the preview server until ctx is done.
	Serve func(ctx context.Context, srv *server.Server) error

	// StdinIsPipe reports whether commands should read Markdown from stdin.
	StdinIsPipe func(r io.Reader) bool
	// StdoutIsTTY reports whether decorated output is wanted.
	StdoutIsTTY func() bool
	// TerminalWidth returns the width used by terminal rendering.
	TerminalWidth func() int
}

// DefaultEditor is the production implementation of EditorRunner.
type DefaultEditor struct{}

func (d *DefaultEditor) RunEditor(opts tui.Options) (string, error) {
	return tui.RunEditor(opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		Editor:    &DefaultEditor{},
		Clipboard: clipboard.WriteAll,
		Serve: func(ctx context.Context, srv *server.Server) error {
			return srv.Run(ctx)
		},
		StdinIsPipe:   isPipe,
		StdoutIsTTY:   isStdoutTTY,
		TerminalWidth: getTerminalWidth,
	}
}

// isPipe returns true if r is a file that is not a character device.
func isPipe(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
