package render

import (
	"os"

	"github.com/diogo/mdlive/internal/config"
)

// OptionsFromConfig builds terminal render options from a loaded configuration.
// GLAMOUR_STYLE takes precedence over the configured style.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()

	term := cfg.Terminal
	if term.Style != "" {
		opts.Style = term.Style
	}
	opts.EnableEmoji = cfg.Markdown.Emoji
	opts.PreserveNewLines = term.PreserveNewLines
	opts.TableWrap = term.TableWrap
	opts.InlineTableLinks = term.InlineTableLinks

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}

// LoadOptionsFromConfig loads render options from the user configuration file,
// falling back to defaults when it cannot be read.
func LoadOptionsFromConfig() Options {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return OptionsFromConfig(cfg)
}
