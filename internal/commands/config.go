package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/mdlive/internal/config"
	apierrors "github.com/diogo/mdlive/internal/errors"
	"github.com/diogo/mdlive/internal/highlight"
	"github.com/diogo/mdlive/internal/render"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Show or change mdlive settings stored in ~/.mdlive/config.json
(MDLIVE_CONFIG_DIR overrides the directory).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "List the keys accepted by config get and set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(config.Keys(), "\n"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List the terminal, editor and highlight styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printThemes(cmd)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get KEY",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting",
		Example: `  mdlive config set markdown.breaks false
  mdlive config set highlight.style monokai
  mdlive config set server.addr 127.0.0.1:9000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := validateStyle(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}
			value, _ := cfg.Get(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ %s = %s", args[0], value)))
			return nil
		},
	})

	return cmd
}

func showConfig(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// validateStyle rejects style names the renderers would not recognise.
// terminal.style also accepts a path to a glamour JSON style file.
func validateStyle(key, value string) error {
	switch key {
	case "highlight.style":
		if !highlight.HasStyle(value) {
			return apierrors.NewConfigError(key, fmt.Sprintf("unknown chroma style %q (see 'mdlive config themes')", value))
		}
	case "terminal.style":
		if render.IsBuiltinStyle(value) {
			return nil
		}
		if _, err := os.Stat(value); err != nil {
			return apierrors.NewConfigError(key, fmt.Sprintf("want one of %s or a style file path", strings.Join(render.ThemeNames(), ", ")))
		}
	case "tui_theme":
		if _, ok := render.TUIThemeByName(value); !ok {
			return apierrors.NewConfigError(key, fmt.Sprintf("want one of %s", strings.Join(render.TUIThemeNames(), ", ")))
		}
	}
	return nil
}

func printThemes(cmd *cobra.Command) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Terminal preview (terminal.style):")
	for _, t := range render.AvailableThemes() {
		fmt.Fprintf(out, "  %-12s %s\n", t.Name, t.Description)
	}

	fmt.Fprintln(out, "\nEditor (tui_theme):")
	for _, t := range render.AvailableTUIThemes() {
		fmt.Fprintf(out, "  %-12s %s\n", t.Name, t.Description)
	}

	fmt.Fprintln(out, "\nCode blocks (highlight.style):")
	fmt.Fprintln(out, "  "+strings.Join(highlight.StyleNames(), ", "))
}
