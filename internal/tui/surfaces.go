package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"

	"github.com/diogo/mdlive/internal/preview"
)

// textareaInput adapts a bubbles textarea to preview.InputSurface.
// Offsets count runes across the whole value; the textarea has no
// selection, so start and end always coincide.
type textareaInput struct {
	ta *textarea.Model
}

var _ preview.InputSurface = textareaInput{}

func (t textareaInput) Value() string { return t.ta.Value() }

// SetValue replaces the text and leaves the cursor at its end.
func (t textareaInput) SetValue(value string) { t.ta.SetValue(value) }

func (t textareaInput) Selection() (int, int) {
	off := cursorOffset(t.ta)
	return off, off
}

// SetSelection moves the cursor to start. A range collapses to its start.
func (t textareaInput) SetSelection(start, end int) {
	if end < start {
		start = end
	}
	moveCursor(t.ta, start)
}

// cursorOffset returns the cursor position as a rune offset into Value.
func cursorOffset(ta *textarea.Model) int {
	lines := strings.Split(ta.Value(), "\n")
	row := ta.Line()
	if row >= len(lines) {
		row = len(lines) - 1
	}

	off := 0
	for _, line := range lines[:row] {
		off += len([]rune(line)) + 1
	}

	info := ta.LineInfo()
	col := info.StartColumn + info.ColumnOffset
	if n := len([]rune(lines[row])); col > n {
		col = n
	}
	return off + col
}

// moveCursor places the cursor at a rune offset into Value.
func moveCursor(ta *textarea.Model, offset int) {
	lines := strings.Split(ta.Value(), "\n")
	if offset < 0 {
		offset = 0
	}

	row, col := len(lines)-1, len([]rune(lines[len(lines)-1]))
	for i, line := range lines {
		n := len([]rune(line))
		if offset <= n {
			row, col = i, offset
			break
		}
		offset -= n + 1
	}

	// CursorUp/Down step through soft-wrapped rows, so bound the walk by
	// the value length rather than the line count.
	for guard := len(ta.Value()) + len(lines); ta.Line() > row && guard > 0; guard-- {
		ta.CursorUp()
	}
	for guard := len(ta.Value()) + len(lines); ta.Line() < row && guard > 0; guard-- {
		ta.CursorDown()
	}
	ta.SetCursor(col)
}

// previewOutput is the md-preview surface. It keeps the latest content;
// the model draws it into the viewport in the current preview mode.
type previewOutput struct {
	content string
	writes  int
}

var _ preview.OutputSurface = (*previewOutput)(nil)

func (p *previewOutput) SetContent(html string) {
	p.content = html
	p.writes++
}

// newPage registers both surfaces under their element IDs.
func newPage(input textareaInput, output *previewOutput) *preview.Document {
	doc := preview.NewDocument()
	doc.AddInput(preview.InputID, input)
	doc.AddOutput(preview.PreviewID, output)
	return doc
}
