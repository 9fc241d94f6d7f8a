package preview

// Fixed element identifiers the binder looks up on a page.
const (
	InputID   = "md-input"
	PreviewID = "md-preview"
)

// InputSurface is the editable text control holding the raw Markdown source.
// Positions are rune offsets into Value.
type InputSurface interface {
	Value() string
	SetValue(value string)
	Selection() (start, end int)
	SetSelection(start, end int)
}

// OutputSurface is the display region showing rendered HTML.
type OutputSurface interface {
	SetContent(html string)
}

// Page resolves surfaces by identifier.
type Page interface {
	Input(id string) (InputSurface, bool)
	Output(id string) (OutputSurface, bool)
}

// TextArea is an in-memory InputSurface.
type TextArea struct {
	value      []rune
	start, end int
}

// NewTextArea creates a TextArea holding value with the cursor at the end.
func NewTextArea(value string) *TextArea {
	t := &TextArea{}
	t.SetValue(value)
	return t
}

// Value returns the current text.
func (t *TextArea) Value() string { return string(t.value) }

// SetValue replaces the text and moves the cursor to the end, like a
// browser textarea does on a programmatic value change.
func (t *TextArea) SetValue(value string) {
	t.value = []rune(value)
	t.start, t.end = len(t.value), len(t.value)
}

// Selection returns the selected range; start == end is a bare cursor.
func (t *TextArea) Selection() (int, int) { return t.start, t.end }

// SetSelection sets the selected range, clamped to the text and ordered.
func (t *TextArea) SetSelection(start, end int) {
	start, end = clamp(start, len(t.value)), clamp(end, len(t.value))
	if end < start {
		start, end = end, start
	}
	t.start, t.end = start, end
}

// Pane is an in-memory OutputSurface. It counts writes so callers can see
// how many renders reached it.
type Pane struct {
	content string
	writes  int
}

// NewPane creates an empty Pane.
func NewPane() *Pane { return &Pane{} }

// SetContent replaces the pane content.
func (p *Pane) SetContent(html string) {
	p.content = html
	p.writes++
}

// Content returns the last assigned HTML.
func (p *Pane) Content() string { return p.content }

// Writes returns how many times SetContent was called.
func (p *Pane) Writes() int { return p.writes }

// Document is an in-memory Page.
type Document struct {
	inputs  map[string]InputSurface
	outputs map[string]OutputSurface
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{
		inputs:  make(map[string]InputSurface),
		outputs: make(map[string]OutputSurface),
	}
}

// NewEditorDocument creates a Document holding the standard md-input and
// md-preview pair, with text preloaded into the input.
func NewEditorDocument(text string) (*Document, *TextArea, *Pane) {
	doc := NewDocument()
	input := NewTextArea(text)
	pane := NewPane()
	doc.AddInput(InputID, input)
	doc.AddOutput(PreviewID, pane)
	return doc, input, pane
}

// AddInput registers an input surface under id.
func (d *Document) AddInput(id string, s InputSurface) { d.inputs[id] = s }

// AddOutput registers an output surface under id.
func (d *Document) AddOutput(id string, s OutputSurface) { d.outputs[id] = s }

// Input implements Page.
func (d *Document) Input(id string) (InputSurface, bool) {
	s, ok := d.inputs[id]
	return s, ok
}

// Output implements Page.
func (d *Document) Output(id string) (OutputSurface, bool) {
	s, ok := d.outputs[id]
	return s, ok
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}
