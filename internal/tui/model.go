package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/mdlive/internal/highlight"
	"github.com/diogo/mdlive/internal/logging"
	"github.com/diogo/mdlive/internal/preview"
	"github.com/diogo/mdlive/internal/render"
)

// Mode selects how the preview pane draws the rendered document.
type Mode int

const (
	// ModeTerminal draws the last rendered source with glamour.
	ModeTerminal Mode = iota
	// ModeHTML draws the HTML assigned to the preview surface, colored by chroma.
	ModeHTML
)

func (m Mode) String() string {
	if m == ModeHTML {
		return "html"
	}
	return "terminal"
}

// ParseMode maps "html" or "terminal" to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html":
		return ModeHTML, true
	case "terminal", "":
		return ModeTerminal, true
	}
	return ModeTerminal, false
}

// rendererLoadedMsg carries the result of the asynchronous renderer load.
type rendererLoadedMsg struct {
	renderer preview.Renderer
	err      error
}

// Options configures the editor.
type Options struct {
	// Text is the initial editor content.
	Text string

	// LoadRenderer supplies the Markdown collaborator. Init runs it off the
	// UI goroutine; the preview shows the warning until it returns.
	LoadRenderer  func() (preview.Renderer, error)
	Highlighter   preview.Highlighter
	// RenderOptions defaults to preview.DefaultRenderOptions when nil.
	RenderOptions *preview.RenderOptions

	// HighlightStyle is the chroma style of the html preview mode.
	HighlightStyle string
	// Terminal configures glamour for the terminal preview mode.
	Terminal render.Options
	Mode     Mode
	Theme    string

	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
	Logger    *slog.Logger
	Recorder  preview.Recorder
}

// Model represents the TUI state
type Model struct {
	opts Options

	// UI components. The textarea lives behind a pointer because the
	// binder holds it through the md-input surface.
	textarea *textarea.Model
	viewport viewport.Model

	output *previewOutput
	binder *preview.Binder

	// State
	mode    Mode
	ready   bool
	loading bool
	status  string
	err     error

	// Dimensions
	width  int
	height int
}

// NewModel creates the editor model and binds the preview. Nothing is
// rendered with a real renderer until Init's load command completes.
func NewModel(opts Options) Model {
	if opts.HighlightStyle == "" {
		opts.HighlightStyle = highlight.DefaultStyle
	}
	if opts.Terminal == (render.Options{}) {
		opts.Terminal = render.DefaultOptions()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	UpdateTheme(opts.Theme)

	ta := textarea.New()
	ta.Placeholder = "Start typing Markdown..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle
	ta.SetValue(opts.Text)
	ta.Focus()

	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}

	m := Model{
		opts:     opts,
		textarea: &ta,
		viewport: vp,
		output:   &previewOutput{},
		mode:     opts.Mode,
		loading:  opts.LoadRenderer != nil,
	}

	bindOpts := []preview.Option{
		preview.WithLogger(opts.Logger),
		preview.WithRecorder(opts.Recorder),
	}
	if opts.RenderOptions != nil {
		bindOpts = append(bindOpts, preview.WithRenderOptions(*opts.RenderOptions))
	}
	if opts.Highlighter != nil {
		bindOpts = append(bindOpts, preview.WithHighlighter(opts.Highlighter))
	}
	m.binder, _ = preview.Bind(newPage(textareaInput{ta: m.textarea}, m.output), bindOpts...)
	return m
}

// Init starts the cursor blink and the renderer load.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.opts.LoadRenderer != nil {
		cmds = append(cmds, loadRenderer(m.opts.LoadRenderer))
	}
	return tea.Batch(cmds...)
}

func loadRenderer(load func() (preview.Renderer, error)) tea.Cmd {
	return func() tea.Msg {
		r, err := load()
		return rendererLoadedMsg{renderer: r, err: err}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.refresh()
		return m, nil

	case rendererLoadedMsg:
		m.loading = false
		if msg.err != nil || msg.renderer == nil {
			m.err = msg.err
			return m, nil
		}
		m.binder.AttachRenderer(msg.renderer)
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+t":
			if m.mode == ModeHTML {
				m.mode = ModeTerminal
			} else {
				m.mode = ModeHTML
			}
			m.status = "Preview: " + m.mode.String()
			m.refresh()
			return m, nil

		case "ctrl+y":
			if err := m.opts.Clipboard(m.binder.HTML()); err != nil {
				m.err = fmt.Errorf("failed to copy to clipboard: %w", err)
			} else {
				m.err = nil
				m.status = "Copied HTML to clipboard"
			}
			return m, nil

		case "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if m.binder.HandleKey(msg.String()) {
			m.refresh()
			return m, nil
		}

		before := m.textarea.Value()
		*m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		if m.textarea.Value() != before {
			m.status = ""
			m.binder.OnInput()
			m.refresh()
		}
		return m, tea.Batch(cmds...)
	}

	*m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// layout splits the screen into two side-by-side panes over a status line.
func (m *Model) layout() {
	const (
		labelHeight  = 1
		statusHeight = 1
		frame        = 2 // border
		padding      = 2 // horizontal padding inside the frame
	)

	paneWidth := m.width/2 - frame - padding
	if paneWidth < 10 {
		paneWidth = 10
	}
	paneHeight := m.height - labelHeight - statusHeight - frame
	if paneHeight < 3 {
		paneHeight = 3
	}

	m.textarea.SetWidth(paneWidth)
	m.textarea.SetHeight(paneHeight)
	m.viewport.Width = m.width - m.width/2 - frame - padding
	m.viewport.Height = paneHeight
}

// refresh redraws the preview pane from the output surface.
func (m *Model) refresh() {
	m.viewport.SetContent(m.previewContent())
}

func (m Model) previewContent() string {
	if m.mode == ModeHTML {
		colored, err := highlight.Terminal(m.output.content, "html", m.opts.HighlightStyle)
		if err != nil {
			return m.output.content
		}
		return strings.TrimRight(colored, "\n")
	}

	if !m.binder.Available() {
		return warningStyle.Render("⚠ Markdown renderer not loaded yet. Try refreshing.")
	}
	width := m.viewport.Width
	if width <= 0 {
		width = m.opts.Terminal.Width
	}
	return render.Pane(m.binder.Source(), m.opts.Terminal.WithWidth(width))
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	inputPane := lipgloss.JoinVertical(lipgloss.Left,
		paneLabelStyle.Render("Markdown"),
		inputPanelStyle.Render(m.textarea.View()),
	)

	label := paneLabelStyle.Render("Preview") + " " + modeLabelStyle.Render(m.mode.String())
	if m.loading {
		label += " " + loadingStyle.Render("loading renderer...")
	}
	previewPane := lipgloss.JoinVertical(lipgloss.Left,
		label,
		previewPanelStyle.
			Width(m.viewport.Width+2).
			Height(m.viewport.Height).
			Render(m.viewport.View()),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, inputPane, previewPane)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

type shortcut struct {
	key  string
	desc string
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar() string {
	if m.err != nil {
		return FormatError(m.err)
	}

	shortcuts := []shortcut{
		{"Tab", "Indent"},
		{"Ctrl+T", "Mode"},
		{"Ctrl+Y", "Copy HTML"},
		{"PgUp/PgDn", "Scroll"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	bar := strings.Join(items, statusDescStyle.Render("  │  "))
	if m.status != "" {
		bar += "    " + statusNoteStyle.Render(m.status)
	}
	return statusBarStyle.Render(bar)
}

// Binder exposes the preview binder, mainly for tests.
func (m Model) Binder() *preview.Binder { return m.binder }

// Value returns the editor text.
func (m Model) Value() string { return m.textarea.Value() }

// RunEditor starts the editor TUI and returns the final text.
func RunEditor(opts Options) (string, error) {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(Model); ok {
		return m.Value(), nil
	}
	return "", nil
}
