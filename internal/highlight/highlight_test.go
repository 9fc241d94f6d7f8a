package highlight

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/diogo/mdlive/internal/markdown"
	"github.com/diogo/mdlive/internal/preview"
)

func firstBlock(t *testing.T, fragment string) *html.Node {
	t.Helper()
	blocks, err := preview.CodeBlocks(fragment)
	if err != nil {
		t.Fatalf("CodeBlocks() returned error: %v", err)
	}
	if len(blocks) == 0 {
		t.Fatalf("no code block in %q", fragment)
	}
	return blocks[0]
}

func renderNode(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		t.Fatalf("html.Render() returned error: %v", err)
	}
	return buf.String()
}

func highlightOK(t *testing.T, h *Highlighter, block *html.Node) {
	t.Helper()
	if err := h.Highlight(block); err != nil {
		t.Fatalf("Highlight() returned error: %v", err)
	}
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		fragment string
		want     string
	}{
		{`<pre><code class="language-go">x</code></pre>`, "go"},
		{`<pre><code class="wide language-python extra">x</code></pre>`, "python"},
		{`<pre><code>x</code></pre>`, ""},
		{`<pre><code class="nolang">x</code></pre>`, ""},
	}
	for _, tt := range tests {
		if got := Language(firstBlock(t, tt.fragment)); got != tt.want {
			t.Errorf("Language(%s) = %q, want %q", tt.fragment, got, tt.want)
		}
	}
}

func TestHighlight_RewritesBlock(t *testing.T) {
	code := "package main\n\nfunc main() { if a < b { return } }\n"
	block := firstBlock(t, `<pre><code class="language-go">`+html.EscapeString(code)+`</code></pre>`)

	highlightOK(t, New(), block)

	out := renderNode(t, block)
	for _, want := range []string{`class="language-go chroma"`, `data-highlighted="yes"`, "<span class="} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, "<pre") {
		t.Errorf("formatter should not wrap in pre: %s", out)
	}
	if got := textContent(block); got != code {
		t.Errorf("text changed to %q", got)
	}
}

func TestHighlight_NoLanguageFallsBack(t *testing.T) {
	block := firstBlock(t, "<pre><code>just some words\n</code></pre>")

	highlightOK(t, New(), block)

	if got := textContent(block); got != "just some words\n" {
		t.Errorf("text changed to %q", got)
	}
	if Language(block) != "" {
		t.Errorf("Language() = %q, want empty", Language(block))
	}
	if out := renderNode(t, block); !strings.Contains(out, `class="chroma"`) {
		t.Errorf("chroma class missing: %s", out)
	}
}

func TestHighlight_Twice(t *testing.T) {
	block := firstBlock(t, "<pre><code class=\"language-go\">x := 1\n</code></pre>")
	h := New()

	highlightOK(t, h, block)
	highlightOK(t, h, block)

	if n := strings.Count(renderNode(t, block), "chroma"); n != 1 {
		t.Errorf("chroma class added %d times", n)
	}
	if got := textContent(block); got != "x := 1\n" {
		t.Errorf("text changed to %q", got)
	}
}

func TestHighlight_RejectsNonElement(t *testing.T) {
	if New().Highlight(nil) == nil {
		t.Error("nil block should be rejected")
	}
	if New().Highlight(&html.Node{Type: html.TextNode, Data: "x"}) == nil {
		t.Error("text node should be rejected")
	}
}

func TestBinderIntegration(t *testing.T) {
	src := "# Title\n\n```go\nfmt.Println(\"a\")\n```\n\ntext\n\n```sh\necho hi\n```"
	doc, _, pane := preview.NewEditorDocument(src)

	_, ok := preview.Bind(doc,
		preview.WithRenderer(markdown.New()),
		preview.WithHighlighter(New()),
	)
	if !ok {
		t.Fatal("Bind() failed")
	}

	out := pane.Content()
	if n := strings.Count(out, `data-highlighted="yes"`); n != 2 {
		t.Errorf("highlighted %d blocks, want 2", n)
	}
	if strings.Index(out, "language-go") > strings.Index(out, "language-sh") {
		t.Error("blocks out of document order")
	}
	if !strings.Contains(out, "<h1>Title</h1>") {
		t.Errorf("heading missing: %s", out)
	}
}

func TestCSS(t *testing.T) {
	var buf bytes.Buffer
	if err := CSS(&buf, DefaultStyle); err != nil {
		t.Fatalf("CSS() returned error: %v", err)
	}
	if !strings.Contains(buf.String(), ".chroma") {
		t.Error("stylesheet missing .chroma rules")
	}
}

func TestTerminal(t *testing.T) {
	out, err := Terminal("<p>hi</p>", "html", "monokai")
	if err != nil {
		t.Fatalf("Terminal() returned error: %v", err)
	}
	if !strings.Contains(out, "\x1b[") || !strings.Contains(out, "hi") {
		t.Errorf("expected ANSI-coloured text, got %q", out)
	}
}

func TestStyles(t *testing.T) {
	if !HasStyle(DefaultStyle) {
		t.Errorf("HasStyle(%q) = false", DefaultStyle)
	}
	if HasStyle("no-such-style") {
		t.Error("HasStyle(no-such-style) = true")
	}

	found := false
	for _, name := range StyleNames() {
		if name == "monokai" {
			found = true
		}
	}
	if !found {
		t.Error("StyleNames() missing monokai")
	}
}
