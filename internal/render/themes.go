package render

import (
	"sync"

	"github.com/muesli/termenv"
)

// Style names understood by the terminal renderer
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
)

var (
	backgroundOnce sync.Once
	darkBackground bool
)

// ResolveStyle maps "auto" (or an empty style) to "dark" or "light" based on
// the terminal background. The background is queried once per process.
// Any other value is returned unchanged.
func ResolveStyle(style string) string {
	if style != "" && style != StyleAuto {
		return style
	}
	backgroundOnce.Do(func() {
		darkBackground = termenv.HasDarkBackground()
	})
	if darkBackground {
		return StyleDark
	}
	return StyleLight
}

// IsBuiltinStyle returns true if the style is one glamour ships with, or auto.
func IsBuiltinStyle(style string) bool {
	switch style {
	case StyleAuto, StyleDark, StyleLight, "dracula", "tokyo-night", "pink", "notty", "ascii":
		return true
	default:
		return false
	}
}

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns the glamour styles offered for the terminal preview.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: StyleAuto, Description: "Dark or light, following the terminal background (default)"},
		{Name: StyleDark, Description: "Dark theme"},
		{Name: StyleLight, Description: "Light theme for bright terminals"},
		{Name: "dracula", Description: "Dracula color scheme"},
		{Name: "tokyo-night", Description: "Tokyo Night color scheme"},
		{Name: "pink", Description: "Pink accents"},
		{Name: "notty", Description: "Plain text (no styling)"},
		{Name: "ascii", Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
