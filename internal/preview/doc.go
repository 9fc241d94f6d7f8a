// Package preview binds a Markdown input surface to an HTML output surface.
//
// A Binder looks up the two surfaces on a Page by their fixed identifiers,
// configures the injected Markdown renderer and keeps the output surface a
// pure function of the input text: every input event re-renders the whole
// document and replaces the output wholesale. Code blocks in the rendered
// fragment are passed to an optional Highlighter in document order.
//
// The Tab key is intercepted by HandleKey and inserts two spaces at the
// current selection instead of moving focus.
//
// A Binder is not safe for concurrent use. Hosts that serve concurrent
// requests bind one Document per request and share the collaborators.
package preview
