package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diogo/mdlive/internal/markdown"
	"github.com/diogo/mdlive/internal/metrics"
	"github.com/diogo/mdlive/internal/server"
)

// NewServeCmd creates the serve command
func NewServeCmd(deps *Dependencies) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the live preview editor over HTTP",
		Long: `Serve the editor page with a live preview. The optional file is loaded
into the editor. The server listens on localhost unless --addr or the
server.addr config key says otherwise; rendered HTML is not sanitized.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) > 0 {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				text = string(data)
			}

			cfg := loadConfig(cmd.ErrOrStderr())
			if addr == "" {
				addr = cfg.Server.Addr
			}

			srv := server.New(server.Options{
				Addr:           addr,
				Renderer:       markdown.New(),
				Highlighter:    newHighlighter(cfg),
				RenderOptions:  renderOptions(cfg),
				HighlightStyle: cfg.Highlight.Style,
				InitialText:    text,
				Metrics:        metrics.New(),
				Logger:         newLogger(cfg, logLevelFlag(cmd)),
			})

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(cmd.ErrOrStderr(), successStyle.Render(fmt.Sprintf("✓ Serving on http://%s (Ctrl+C to stop)", addr)))
			return deps.Serve(ctx, srv)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config, 127.0.0.1:8080)")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
