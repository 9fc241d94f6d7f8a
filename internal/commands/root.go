// Package commands provides CLI commands for mdlive.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd creates the base command with all subcommands attached.
func NewRootCmd(deps *Dependencies) *cobra.Command {
	var (
		logLevel string
		mode     string
	)

	cmd := &cobra.Command{
		Use:   "mdlive [file]",
		Short: "Markdown editor with a live preview",
		Long: `mdlive renders Markdown to HTML as you type, highlighting fenced code
blocks, in the terminal or in the browser.

Examples:
  mdlive notes.md                       Edit a file with a live preview
  mdlive render notes.md -o notes.html  Convert a file to HTML
  cat notes.md | mdlive render          Convert stdin
  mdlive render --terminal notes.md     Render for the terminal
  mdlive serve --addr 127.0.0.1:9000    Open the preview in a browser
  mdlive config set highlight.style monokai`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "mdlive %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runEditor(cmd, deps, args, mode)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")
	cmd.Flags().StringVar(&mode, "mode", "terminal", "Initial preview mode (terminal, html)")

	cmd.AddCommand(NewEditCmd(deps))
	cmd.AddCommand(NewRenderCmd(deps))
	cmd.AddCommand(NewServeCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// logLevelFlag returns the persistent --log-level value.
func logLevelFlag(cmd *cobra.Command) string {
	v, _ := cmd.Flags().GetString("log-level")
	return v
}

// Execute runs the root command
func Execute() {
	cmd := NewRootCmd(NewDependencies())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "mdlive"))
		os.Exit(1)
	}
}
