package render

import "strings"

// Markdown renders content for a terminal with a pooled glamour renderer.
func Markdown(content string, opts Options) (string, error) {
	key := opts.normalize()
	r, err := panes.get(key)
	if err != nil {
		return "", err
	}
	defer panes.put(key, r)

	return r.Render(content)
}

// Pane renders content for a fixed-width preview pane. glamour's trailing
// blank lines are removed, and the raw text is returned when the style
// cannot be loaded.
func Pane(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
