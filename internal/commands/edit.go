package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/mdlive/internal/markdown"
	"github.com/diogo/mdlive/internal/preview"
	"github.com/diogo/mdlive/internal/render"
	"github.com/diogo/mdlive/internal/tui"
)

// NewEditCmd creates the edit command
func NewEditCmd(deps *Dependencies) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the terminal editor",
		Long: `Open a Markdown file in the terminal editor with a live preview.
A missing file starts empty. The file is never written back.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, deps, args, mode)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "terminal", "Initial preview mode (terminal, html)")
	return cmd
}

func runEditor(cmd *cobra.Command, deps *Dependencies, args []string, modeFlag string) error {
	previewMode, ok := tui.ParseMode(modeFlag)
	if !ok {
		return fmt.Errorf("unknown preview mode %q (want terminal or html)", modeFlag)
	}

	var text string
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		switch {
		case err == nil:
			text = string(data)
		case !os.IsNotExist(err):
			return fmt.Errorf("failed to read file: %w", err)
		}
	}

	cfg := loadConfig(cmd.ErrOrStderr())

	_, err := deps.Editor.RunEditor(tui.Options{
		Text: text,
		LoadRenderer: func() (preview.Renderer, error) {
			return markdown.New(), nil
		},
		Highlighter:    newHighlighter(cfg),
		RenderOptions:  renderOptions(cfg),
		HighlightStyle: cfg.Highlight.Style,
		Terminal:       render.OptionsFromConfig(cfg),
		Mode:           previewMode,
		Theme:          cfg.TUITheme,
		Clipboard:      deps.Clipboard,
	})
	return err
}
