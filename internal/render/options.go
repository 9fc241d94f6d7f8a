// Package render renders Markdown for terminal panes with glamour.
package render

// DefaultWidth is the wrap column used when a pane has no usable width.
const DefaultWidth = 80

// minPaneWidth keeps glamour's margins from swallowing a very narrow pane.
const minPaneWidth = 20

// Options configures a terminal preview pane. Options is comparable and,
// once normalized, doubles as the key of the renderer pool.
type Options struct {
	Width int
	// Style is "auto", a glamour style name, or a path to a JSON style file.
	Style string

	EnableEmoji bool
	// PreserveNewLines keeps single newlines, the terminal twin of hard breaks.
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the options of a pane with no configuration.
func DefaultOptions() Options {
	return Options{
		Width:            DefaultWidth,
		Style:            StyleAuto,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// WithWidth returns a copy of o wrapping at width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns a copy of o using style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// normalize resolves "auto" and clamps the width, so options that draw the
// same pane compare equal.
func (o Options) normalize() Options {
	o.Style = ResolveStyle(o.Style)
	switch {
	case o.Width <= 0:
		o.Width = DefaultWidth
	case o.Width < minPaneWidth:
		o.Width = minPaneWidth
	}
	return o
}
