package render

import (
	"github.com/charmbracelet/lipgloss"
)

// DefaultTUITheme is used when the configured theme is unknown.
const DefaultTUITheme = "tokyonight"

// TUITheme is the color scheme of the editor: the input pane, the preview
// pane, and the status line below them.
type TUITheme struct {
	Name        string
	Description string

	// Pane borders. The focused border marks the input surface.
	Border      lipgloss.Color
	FocusBorder lipgloss.Color

	Title   lipgloss.Color
	Status  lipgloss.Color
	Key     lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Text    lipgloss.Color
	TextDim lipgloss.Color
}

var tuiThemes = []TUITheme{
	{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",
		Border:      lipgloss.Color("#414868"),
		FocusBorder: lipgloss.Color("#7aa2f7"),
		Title:       lipgloss.Color("#bb9af7"),
		Status:      lipgloss.Color("#565f89"),
		Key:         lipgloss.Color("#9ece6a"),
		Warning:     lipgloss.Color("#e0af68"),
		Error:       lipgloss.Color("#f7768e"),
		Text:        lipgloss.Color("#c0caf5"),
		TextDim:     lipgloss.Color("#565f89"),
	},
	{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - Warm dark theme with pastel colors",
		Border:      lipgloss.Color("#45475a"),
		FocusBorder: lipgloss.Color("#89b4fa"),
		Title:       lipgloss.Color("#cba6f7"),
		Status:      lipgloss.Color("#6c7086"),
		Key:         lipgloss.Color("#a6e3a1"),
		Warning:     lipgloss.Color("#f9e2af"),
		Error:       lipgloss.Color("#f38ba8"),
		Text:        lipgloss.Color("#cdd6f4"),
		TextDim:     lipgloss.Color("#6c7086"),
	},
	{
		Name:        "nord",
		Description: "Nord - Arctic-inspired theme with cool tones",
		Border:      lipgloss.Color("#4c566a"),
		FocusBorder: lipgloss.Color("#88c0d0"),
		Title:       lipgloss.Color("#b48ead"),
		Status:      lipgloss.Color("#7b88a1"),
		Key:         lipgloss.Color("#a3be8c"),
		Warning:     lipgloss.Color("#ebcb8b"),
		Error:       lipgloss.Color("#bf616a"),
		Text:        lipgloss.Color("#eceff4"),
		TextDim:     lipgloss.Color("#7b88a1"),
	},
	{
		Name:        "dracula",
		Description: "Dracula - Dark theme with vibrant colors",
		Border:      lipgloss.Color("#6272a4"),
		FocusBorder: lipgloss.Color("#8be9fd"),
		Title:       lipgloss.Color("#ff79c6"),
		Status:      lipgloss.Color("#6272a4"),
		Key:         lipgloss.Color("#50fa7b"),
		Warning:     lipgloss.Color("#f1fa8c"),
		Error:       lipgloss.Color("#ff5555"),
		Text:        lipgloss.Color("#f8f8f2"),
		TextDim:     lipgloss.Color("#6272a4"),
	},
}

// TUIThemeByName returns the named theme, or false if there is none.
func TUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range tuiThemes {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// TUIThemeOrDefault returns the named theme, or the default one.
func TUIThemeOrDefault(name string) TUITheme {
	if t, ok := TUIThemeByName(name); ok {
		return t
	}
	t, _ := TUIThemeByName(DefaultTUITheme)
	return t
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	out := make([]TUITheme, len(tuiThemes))
	copy(out, tuiThemes)
	return out
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	names := make([]string, len(tuiThemes))
	for i, t := range tuiThemes {
		names[i] = t.Name
	}
	return names
}
