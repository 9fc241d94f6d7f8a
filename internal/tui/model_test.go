package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	apierrors "github.com/diogo/mdlive/internal/errors"
	"github.com/diogo/mdlive/internal/highlight"
	"github.com/diogo/mdlive/internal/markdown"
	"github.com/diogo/mdlive/internal/preview"
	"github.com/diogo/mdlive/internal/render"
)

func newTestModel(t *testing.T, text string, copied *string) Model {
	t.Helper()
	m := NewModel(Options{
		Text:          text,
		Highlighter:   highlight.New(),
		Terminal:      render.DefaultOptions().WithStyle("notty"),
		LoadRenderer:  func() (preview.Renderer, error) { return markdown.New(), nil },
		Clipboard: func(s string) error {
			if copied != nil {
				*copied = s
			}
			return nil
		},
	})
	return resize(m)
}

func resize(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	r, err := m.opts.LoadRenderer()
	if err != nil {
		t.Fatalf("LoadRenderer() returned error: %v", err)
	}
	return send(m, rendererLoadedMsg{renderer: r})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel_ShowsWarningUntilLoaded(t *testing.T) {
	m := newTestModel(t, "# Hi", nil)

	if m.Binder().Available() {
		t.Fatal("renderer should not be attached before Init's load completes")
	}
	if m.output.content != preview.WarningHTML {
		t.Errorf("content = %q, want warning", m.output.content)
	}
	if !strings.Contains(m.previewContent(), "not loaded yet") {
		t.Errorf("terminal preview should show the warning, got %q", m.previewContent())
	}
	if m.Init() == nil {
		t.Error("Init() should return the load command")
	}

	m = loaded(t, m)
	if m.loading {
		t.Error("loading should be cleared")
	}
	if m.output.content != "<h1>Hi</h1>\n" {
		t.Errorf("content = %q", m.output.content)
	}
}

func TestNewModel_DefaultRenderOptionsWhenUnset(t *testing.T) {
	m := loaded(t, newTestModel(t, "a\nb ~~x~~", nil))

	for _, want := range []string{"<br>", "<del>x</del>"} {
		if !strings.Contains(m.output.content, want) {
			t.Errorf("content missing %q: %q", want, m.output.content)
		}
	}
}

func TestNewModel_ExplicitRenderOptions(t *testing.T) {
	m := NewModel(Options{
		Text:          "a\nb ~~x~~",
		RenderOptions: &preview.RenderOptions{},
		Terminal:      render.DefaultOptions().WithStyle("notty"),
		LoadRenderer:  func() (preview.Renderer, error) { return markdown.New(), nil },
	})
	m = loaded(t, resize(m))

	if m.output.content != "<p>a\nb ~~x~~</p>\n" {
		t.Errorf("content = %q, want plain CommonMark", m.output.content)
	}
}

func TestUpdate_RendererLoadError(t *testing.T) {
	m := newTestModel(t, "x", nil)
	m = send(m, rendererLoadedMsg{err: apierrors.ErrRendererUnavailable})

	if !errors.Is(m.err, apierrors.ErrRendererUnavailable) {
		t.Errorf("err = %v", m.err)
	}
	if m.output.content != preview.WarningHTML {
		t.Error("preview should keep the warning")
	}
	if !strings.Contains(m.View(), "renderer") {
		t.Error("View() should show the error")
	}
}

func TestUpdate_TypingRerenders(t *testing.T) {
	m := loaded(t, newTestModel(t, "", nil))
	if m.output.content != "<p><em>Start typing...</em></p>\n" {
		t.Fatalf("content = %q, want placeholder", m.output.content)
	}
	writes := m.output.writes

	m = send(m, runes("#"), runes(" "), runes("x"))

	if m.Value() != "# x" {
		t.Errorf("Value() = %q", m.Value())
	}
	if m.output.content != "<h1>x</h1>\n" {
		t.Errorf("content = %q", m.output.content)
	}
	if m.output.writes != writes+3 {
		t.Errorf("writes = %d, want %d", m.output.writes, writes+3)
	}
}

func TestUpdate_CursorMovementDoesNotRender(t *testing.T) {
	m := loaded(t, newTestModel(t, "abc", nil))
	writes := m.output.writes

	m = send(m, tea.KeyMsg{Type: tea.KeyLeft})

	if m.output.writes != writes {
		t.Errorf("writes = %d, want %d", m.output.writes, writes)
	}
}

func TestUpdate_TabIndentsAtCursor(t *testing.T) {
	m := loaded(t, newTestModel(t, "ab", nil))
	m = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	writes := m.output.writes

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})

	if m.Value() != "a  b" {
		t.Errorf("Value() = %q, want %q", m.Value(), "a  b")
	}
	if start, end := (textareaInput{ta: m.textarea}).Selection(); start != 3 || end != 3 {
		t.Errorf("cursor = (%d, %d), want (3, 3)", start, end)
	}
	if m.output.writes != writes+1 {
		t.Errorf("writes = %d, want %d", m.output.writes, writes+1)
	}
	if m.output.content != "<p>a  b</p>\n" {
		t.Errorf("content = %q", m.output.content)
	}
}

func TestUpdate_TabOnSecondLine(t *testing.T) {
	m := loaded(t, newTestModel(t, "one\ntwo", nil))
	m = send(m, tea.KeyMsg{Type: tea.KeyHome}, tea.KeyMsg{Type: tea.KeyTab})

	if m.Value() != "one\n  two" {
		t.Errorf("Value() = %q", m.Value())
	}
	if start, _ := (textareaInput{ta: m.textarea}).Selection(); start != 6 {
		t.Errorf("cursor = %d, want 6", start)
	}
}

func TestUpdate_ToggleMode(t *testing.T) {
	m := loaded(t, newTestModel(t, "**bold**", nil))
	if m.mode != ModeTerminal {
		t.Fatalf("mode = %v", m.mode)
	}
	if strings.Contains(m.previewContent(), "<strong>") {
		t.Error("terminal mode should not show markup")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.mode != ModeHTML {
		t.Fatalf("mode = %v after Ctrl+T", m.mode)
	}
	if !strings.Contains(m.previewContent(), "strong") {
		t.Errorf("html mode should show the markup, got %q", m.previewContent())
	}
	if !strings.Contains(m.status, "html") {
		t.Errorf("status = %q", m.status)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.mode != ModeTerminal {
		t.Errorf("mode = %v after second Ctrl+T", m.mode)
	}
}

func TestUpdate_CopyHTML(t *testing.T) {
	var copied string
	m := loaded(t, newTestModel(t, "*hi*", &copied))

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlY})

	if copied != "<p><em>hi</em></p>\n" {
		t.Errorf("copied %q", copied)
	}
	if m.status != "Copied HTML to clipboard" {
		t.Errorf("status = %q", m.status)
	}
}

func TestUpdate_CopyError(t *testing.T) {
	m := newTestModel(t, "x", nil)
	m.opts.Clipboard = func(string) error { return errors.New("no display") }

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlY})

	if m.err == nil || !strings.Contains(m.err.Error(), "no display") {
		t.Errorf("err = %v", m.err)
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := newTestModel(t, "", nil)
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := m.Update(tea.KeyMsg{Type: k})
		if cmd == nil {
			t.Fatalf("%v should quit", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v should produce tea.QuitMsg", k)
		}
	}
}

func TestView(t *testing.T) {
	m := NewModel(Options{Terminal: render.DefaultOptions().WithStyle("notty")})
	if !strings.Contains(m.View(), "Initializing") {
		t.Error("View() before sizing should show the initializing text")
	}

	m = resize(m)
	view := m.View()
	for _, want := range []string{"Markdown", "Preview", "Tab", "Ctrl+T", "Esc"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"html", ModeHTML, true},
		{" HTML ", ModeHTML, true},
		{"terminal", ModeTerminal, true},
		{"", ModeTerminal, true},
		{"pdf", ModeTerminal, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatError(t *testing.T) {
	if FormatError(nil) != "" {
		t.Error("FormatError(nil) should be empty")
	}

	out := FormatError(apierrors.NewRenderError("convert", errors.New("boom")))
	if !strings.Contains(out, "boom") || !strings.Contains(out, "convert") {
		t.Errorf("FormatError() = %q", out)
	}
}
