// Package tui provides the terminal editor with a live Markdown preview.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	apierrors "github.com/diogo/mdlive/internal/errors"
	"github.com/diogo/mdlive/internal/render"
)

// Color variables (updated from theme)
var (
	colorBorder      lipgloss.Color
	colorFocusBorder lipgloss.Color
	colorTitle       lipgloss.Color
	colorStatus      lipgloss.Color
	colorKey         lipgloss.Color
	colorWarning     lipgloss.Color
	colorError       lipgloss.Color
	colorText        lipgloss.Color
	colorTextDim     lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	// Pane frames. The input pane carries the focus color.
	inputPanelStyle   lipgloss.Style
	previewPanelStyle lipgloss.Style

	// Pane label above each frame
	paneLabelStyle lipgloss.Style
	modeLabelStyle lipgloss.Style

	loadingStyle lipgloss.Style
	warningStyle lipgloss.Style

	// Status bar styles
	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	statusNoteStyle lipgloss.Style

	errorStyle lipgloss.Style
)

func init() {
	UpdateTheme(render.DefaultTUITheme)
}

// UpdateTheme refreshes all styles from the named TUI theme. Unknown names
// select the default theme.
func UpdateTheme(name string) {
	theme := render.TUIThemeOrDefault(name)

	colorBorder = theme.Border
	colorFocusBorder = theme.FocusBorder
	colorTitle = theme.Title
	colorStatus = theme.Status
	colorKey = theme.Key
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim

	rebuildStyles()
}

func rebuildStyles() {
	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorFocusBorder).
		Padding(0, 1)

	previewPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	paneLabelStyle = lipgloss.NewStyle().
		Foreground(colorTitle).
		Bold(true).
		PaddingLeft(1)

	modeLabelStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorTitle).
		Bold(true)

	warningStyle = lipgloss.NewStyle().
		Foreground(colorWarning)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorStatus)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorKey).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	statusNoteStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)
}

// FormatError returns a styled error message with a hint where one applies.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", err)))

	var renderErr *apierrors.RenderError
	switch {
	case errors.As(err, &renderErr):
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Stage: %s", renderErr.Stage)))
	case errors.Is(err, apierrors.ErrRendererUnavailable):
		sb.WriteString(dimStyle.Render("\n  Hint: The preview stays on the warning until a renderer loads"))
	case apierrors.IsConfigError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Run 'mdlive config show' to inspect the configuration"))
	}

	return sb.String()
}
