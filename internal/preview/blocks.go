package preview

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var codeBlockSelector = cascadia.MustCompile("pre code")

// parseFragment parses rendered HTML as the children of a detached div.
func parseFragment(fragment string) (*html.Node, error) {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), root)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// codeBlocks returns every code element inside a pre, in document order.
func codeBlocks(root *html.Node) []*html.Node {
	return codeBlockSelector.MatchAll(root)
}

func renderChildren(root *html.Node) (string, error) {
	var sb strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// CodeBlocks parses an HTML fragment and returns its pre code elements in
// document order.
func CodeBlocks(fragment string) ([]*html.Node, error) {
	root, err := parseFragment(fragment)
	if err != nil {
		return nil, err
	}
	return codeBlocks(root), nil
}
