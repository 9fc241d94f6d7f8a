package render

import (
	"regexp"
	"testing"
)

func TestTUIThemeByName(t *testing.T) {
	for _, name := range []string{"tokyonight", "catppuccin", "nord", "dracula"} {
		theme, ok := TUIThemeByName(name)
		if !ok {
			t.Errorf("TUIThemeByName(%q) not found", name)
			continue
		}
		if theme.Name != name {
			t.Errorf("TUIThemeByName(%q).Name = %q", name, theme.Name)
		}
		if theme.Description == "" {
			t.Errorf("theme %q has no description", name)
		}
	}

	if _, ok := TUIThemeByName("solarized"); ok {
		t.Error("TUIThemeByName(solarized) should not be found")
	}
}

func TestTUIThemeOrDefault(t *testing.T) {
	if got := TUIThemeOrDefault("nord").Name; got != "nord" {
		t.Errorf("TUIThemeOrDefault(nord) = %q", got)
	}
	if got := TUIThemeOrDefault("").Name; got != DefaultTUITheme {
		t.Errorf("TUIThemeOrDefault(\"\") = %q, want %q", got, DefaultTUITheme)
	}
	if got := TUIThemeOrDefault("missing").Name; got != DefaultTUITheme {
		t.Errorf("TUIThemeOrDefault(missing) = %q, want %q", got, DefaultTUITheme)
	}
}

func TestAvailableTUIThemes_IsCopy(t *testing.T) {
	themes := AvailableTUIThemes()
	if len(themes) != len(TUIThemeNames()) {
		t.Fatalf("AvailableTUIThemes() and TUIThemeNames() disagree")
	}
	themes[0].Name = "changed"
	if _, ok := TUIThemeByName("changed"); ok {
		t.Error("modifying the returned slice must not change the registry")
	}
}

func TestThemeColors_AreValidHex(t *testing.T) {
	hex := regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	for _, theme := range AvailableTUIThemes() {
		colors := map[string]string{
			"Border":      string(theme.Border),
			"FocusBorder": string(theme.FocusBorder),
			"Title":       string(theme.Title),
			"Status":      string(theme.Status),
			"Key":         string(theme.Key),
			"Warning":     string(theme.Warning),
			"Error":       string(theme.Error),
			"Text":        string(theme.Text),
			"TextDim":     string(theme.TextDim),
		}
		for field, c := range colors {
			if !hex.MatchString(c) {
				t.Errorf("theme %s: %s = %q is not a hex color", theme.Name, field, c)
			}
		}
	}
}
