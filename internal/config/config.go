// Package config handles configuration for mdlive.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apierrors "github.com/diogo/mdlive/internal/errors"
)

// MarkdownConfig configures the HTML renderer options
type MarkdownConfig struct {
	GFM        bool `json:"gfm"`         // GitHub-flavored extensions
	Breaks     bool `json:"breaks"`      // Single newlines become <br>
	Emoji      bool `json:"emoji"`       // Convert :emoji: to unicode
	HeadingIDs bool `json:"heading_ids"` // Generate id attributes on headings
	Footnotes  bool `json:"footnotes"`   // Enable [^1] footnotes
}

// HighlightConfig configures code block highlighting
type HighlightConfig struct {
	Enabled bool   `json:"enabled"`
	Style   string `json:"style"` // chroma style name
}

// TerminalConfig configures glamour rendering in the terminal preview
type TerminalConfig struct {
	Style            string `json:"style"`              // "auto", "dark", "light", ... or path to JSON theme
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// ServerConfig configures the HTTP preview server
type ServerConfig struct {
	Addr string `json:"addr"`
}

// Config represents the user configuration
type Config struct {
	Markdown  MarkdownConfig  `json:"markdown"`
	Highlight HighlightConfig `json:"highlight"`
	Terminal  TerminalConfig  `json:"terminal"`
	Server    ServerConfig    `json:"server"`
	// TUITheme selects the colour theme of the editor TUI.
	TUITheme string `json:"tui_theme,omitempty"`
	// CopyToClipboard copies the HTML produced by "mdlive render" to the clipboard.
	CopyToClipboard bool `json:"copy_to_clipboard"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		GFM:    true,
		Breaks: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Markdown: DefaultMarkdownConfig(),
		Highlight: HighlightConfig{
			Enabled: true,
			Style:   "github",
		},
		Terminal: TerminalConfig{
			Style:            "auto",
			PreserveNewLines: true,
			TableWrap:        true,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		TUITheme: "tokyonight",
		LogLevel: "warn",
	}
}

// GetConfigDir returns the configuration directory path.
// MDLIVE_CONFIG_DIR overrides the default ~/.mdlive.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("MDLIVE_CONFIG_DIR"); dir != "" {
		return filepath.Abs(dir)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".mdlive"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Keys returns the dotted keys accepted by Set, in display order.
func Keys() []string {
	return []string{
		"markdown.gfm",
		"markdown.breaks",
		"markdown.emoji",
		"markdown.heading_ids",
		"markdown.footnotes",
		"highlight.enabled",
		"highlight.style",
		"terminal.style",
		"terminal.preserve_newlines",
		"terminal.table_wrap",
		"terminal.inline_table_links",
		"server.addr",
		"tui_theme",
		"copy_to_clipboard",
		"log_level",
	}
}

// Set updates the field named by a dotted key from its string form.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	if ptr := c.boolField(key); ptr != nil {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return apierrors.NewConfigError(key, fmt.Sprintf("expected true or false, got %q", value))
		}
		*ptr = b
		return nil
	}

	switch key {
	case "highlight.style":
		if value == "" {
			return apierrors.NewConfigError(key, "style must not be empty")
		}
		c.Highlight.Style = value
	case "terminal.style":
		if value == "" {
			return apierrors.NewConfigError(key, "style must not be empty")
		}
		c.Terminal.Style = value
	case "server.addr":
		if !strings.Contains(value, ":") {
			return apierrors.NewConfigError(key, fmt.Sprintf("expected host:port, got %q", value))
		}
		c.Server.Addr = value
	case "tui_theme":
		c.TUITheme = value
	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(value)
		default:
			return apierrors.NewConfigError(key, fmt.Sprintf("unknown level %q", value))
		}
	default:
		return fmt.Errorf("%w: %s", apierrors.ErrUnknownConfigKey, key)
	}
	return nil
}

// Get returns the string form of the field named by a dotted key.
func (c Config) Get(key string) (string, error) {
	if ptr := (&c).boolField(key); ptr != nil {
		return strconv.FormatBool(*ptr), nil
	}
	switch key {
	case "highlight.style":
		return c.Highlight.Style, nil
	case "terminal.style":
		return c.Terminal.Style, nil
	case "server.addr":
		return c.Server.Addr, nil
	case "tui_theme":
		return c.TUITheme, nil
	case "log_level":
		return c.LogLevel, nil
	}
	return "", fmt.Errorf("%w: %s", apierrors.ErrUnknownConfigKey, key)
}

func (c *Config) boolField(key string) *bool {
	switch key {
	case "markdown.gfm":
		return &c.Markdown.GFM
	case "markdown.breaks":
		return &c.Markdown.Breaks
	case "markdown.emoji":
		return &c.Markdown.Emoji
	case "markdown.heading_ids":
		return &c.Markdown.HeadingIDs
	case "markdown.footnotes":
		return &c.Markdown.Footnotes
	case "highlight.enabled":
		return &c.Highlight.Enabled
	case "terminal.preserve_newlines":
		return &c.Terminal.PreserveNewLines
	case "terminal.table_wrap":
		return &c.Terminal.TableWrap
	case "terminal.inline_table_links":
		return &c.Terminal.InlineTableLinks
	case "copy_to_clipboard":
		return &c.CopyToClipboard
	}
	return nil
}
