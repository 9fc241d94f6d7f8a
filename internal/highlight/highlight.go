// Package highlight colours code blocks with chroma.
package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"

	apierrors "github.com/diogo/mdlive/internal/errors"
	"github.com/diogo/mdlive/internal/preview"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

const languagePrefix = "language-"

// Highlighter rewrites code elements into chroma token spans. The markup
// uses CSS classes; CSS writes the matching stylesheet.
type Highlighter struct {
	formatter *chromahtml.Formatter
}

var _ preview.Highlighter = (*Highlighter)(nil)

// New creates a Highlighter.
func New() *Highlighter {
	return &Highlighter{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Highlight replaces the children of a code element with highlighted markup,
// marks it with the "chroma" class and sets data-highlighted="yes".
func (h *Highlighter) Highlight(block *html.Node) error {
	if block == nil || block.Type != html.ElementNode {
		return apierrors.NewRenderError("highlight", fmt.Errorf("not an element"))
	}

	code := textContent(block)
	lexer := pickLexer(Language(block), code)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return apierrors.NewRenderError("highlight", err)
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, styles.Fallback, iterator); err != nil {
		return apierrors.NewRenderError("highlight", err)
	}

	nodes, err := html.ParseFragment(strings.NewReader(sb.String()), block)
	if err != nil {
		return apierrors.NewRenderError("highlight", err)
	}

	for c := block.FirstChild; c != nil; {
		next := c.NextSibling
		block.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		block.AppendChild(n)
	}

	addClass(block, "chroma")
	setAttr(block, "data-highlighted", "yes")
	return nil
}

// Language returns the language named by a language-* class, or "".
func Language(block *html.Node) string {
	for _, a := range block.Attr {
		if a.Key != "class" {
			continue
		}
		for _, cls := range strings.Fields(a.Val) {
			if strings.HasPrefix(cls, languagePrefix) {
				return strings.TrimPrefix(cls, languagePrefix)
			}
		}
	}
	return ""
}

// CSS writes the stylesheet for the named chroma style.
func CSS(w io.Writer, style string) error {
	s := styles.Get(style)
	return chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(w, s)
}

// Terminal colours src for a 256-colour terminal.
func Terminal(src, lang, style string) (string, error) {
	var sb strings.Builder
	if err := quick.Highlight(&sb, src, lang, "terminal256", style); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// StyleNames lists the available chroma styles.
func StyleNames() []string {
	return styles.Names()
}

// HasStyle reports whether chroma knows the named style.
func HasStyle(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

func pickLexer(lang, code string) chroma.Lexer {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func addClass(n *html.Node, cls string) {
	for i, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, existing := range strings.Fields(a.Val) {
			if existing == cls {
				return
			}
		}
		n.Attr[i].Val = strings.TrimSpace(a.Val + " " + cls)
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: cls})
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
