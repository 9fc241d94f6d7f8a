package commands

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/mdlive/internal/config"
	"github.com/diogo/mdlive/internal/highlight"
	"github.com/diogo/mdlive/internal/render"
)

var standaloneTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>{{.Title}}</title>
<style>
{{.CSS}}</style>
</head>
<body>
{{.Body}}</body>
</html>
`))

// NewRenderCmd creates the render command
func NewRenderCmd(deps *Dependencies) *cobra.Command {
	var (
		outputFlag string
		terminal   bool
		width      int
		copyFlag   bool
		standalone bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Convert Markdown to HTML",
		Long: `Convert a Markdown file, or Markdown piped on stdin, to the same HTML
the live preview shows. Use "-" to force reading stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, cmd.InOrStdin(), deps)
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			cfg := loadConfig(stderr)
			logger := newLogger(cfg, logLevelFlag(cmd))

			var out string
			if terminal {
				w := width
				if w <= 0 {
					w = deps.TerminalWidth()
				}
				out, err = render.Markdown(text, render.OptionsFromConfig(cfg).WithWidth(w))
				if err != nil {
					return fmt.Errorf("terminal render failed: %w", err)
				}
			} else {
				out = renderHTML(cfg, text, logger)
				if standalone {
					if out, err = standalonePage(cfg, out, args); err != nil {
						return err
					}
				}
			}

			decorated := deps.StdoutIsTTY()

			if (copyFlag || cfg.CopyToClipboard) && !terminal {
				if err := deps.Clipboard(out); err != nil {
					fmt.Fprintln(stderr, warningStyle.Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
				} else if decorated {
					fmt.Fprintln(stderr, successStyle.Render("✓ Copied to clipboard"))
				}
			}

			if outputFlag != "" {
				if err := os.WriteFile(outputFlag, []byte(out), 0o644); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
				if decorated {
					fmt.Fprintln(stderr, successStyle.Render(fmt.Sprintf("✓ Saved to %s", outputFlag)))
				}
				return nil
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the result to a file")
	cmd.Flags().BoolVarP(&terminal, "terminal", "t", false, "Render for the terminal instead of HTML")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Wrap width for --terminal (default: terminal width)")
	cmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "Copy the HTML to the clipboard")
	cmd.Flags().BoolVarP(&standalone, "standalone", "s", false, "Wrap the HTML in a page with the highlight stylesheet")

	return cmd
}

// standalonePage wraps a fragment in a complete HTML document.
func standalonePage(cfg config.Config, body string, args []string) (string, error) {
	var css bytes.Buffer
	if cfg.Highlight.Enabled {
		if err := highlight.CSS(&css, cfg.Highlight.Style); err != nil {
			return "", fmt.Errorf("highlight css: %w", err)
		}
	}

	title := "mdlive"
	if len(args) > 0 && args[0] != "-" {
		title = strings.TrimSuffix(args[0], ".md")
	}

	var buf bytes.Buffer
	err := standaloneTemplate.Execute(&buf, struct {
		Title string
		CSS   template.CSS
		Body  template.HTML
	}{title, template.CSS(css.String()), template.HTML(body)})
	if err != nil {
		return "", fmt.Errorf("standalone page: %w", err)
	}
	return buf.String(), nil
}
