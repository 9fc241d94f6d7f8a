package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxIdle bounds the idle renderers kept per pane configuration. The editor
// draws one pane at a time; the CLI renders once.
const maxIdle = 4

// glamour.TermRenderer is not safe for concurrent Render calls, so each
// caller checks one out and returns it when done.
type paneCache struct {
	mu      sync.Mutex
	idle    map[Options][]*glamour.TermRenderer
	created int
	reused  int
}

var panes = newPaneCache()

func newPaneCache() *paneCache {
	return &paneCache{idle: make(map[Options][]*glamour.TermRenderer)}
}

// get checks out a renderer for normalized options, building one when none
// is idle.
func (c *paneCache) get(key Options) (*glamour.TermRenderer, error) {
	c.mu.Lock()
	if list := c.idle[key]; len(list) > 0 {
		r := list[len(list)-1]
		c.idle[key] = list[:len(list)-1]
		c.reused++
		c.mu.Unlock()
		return r, nil
	}
	c.mu.Unlock()

	r, err := newTermRenderer(key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if _, ok := c.idle[key]; !ok {
		c.idle[key] = nil
	}
	c.created++
	c.mu.Unlock()
	return r, nil
}

// put returns a renderer. Renderers beyond maxIdle are dropped.
func (c *paneCache) put(key Options, r *glamour.TermRenderer) {
	if r == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.idle[key]) < maxIdle {
		c.idle[key] = append(c.idle[key], r)
	}
}

func newTermRenderer(key Options) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithStylePath(key.Style),
		glamour.WithWordWrap(key.Width),
		glamour.WithTableWrap(key.TableWrap),
		glamour.WithInlineTableLinks(key.InlineTableLinks),
	}
	if key.EnableEmoji {
		opts = append(opts, glamour.WithEmoji())
	}
	if key.PreserveNewLines {
		opts = append(opts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(opts...)
}

// CacheStats describes the renderer pool.
type CacheStats struct {
	// Configs counts distinct pane configurations seen.
	Configs int
	// Idle counts renderers waiting to be reused.
	Idle    int
	Created int
	Reused  int
}

// Stats reports the state of the renderer pool.
func Stats() CacheStats {
	panes.mu.Lock()
	defer panes.mu.Unlock()
	s := CacheStats{Configs: len(panes.idle), Created: panes.created, Reused: panes.reused}
	for _, list := range panes.idle {
		s.Idle += len(list)
	}
	return s
}

// ClearCache drops every pooled renderer and resets the counters.
func ClearCache() {
	panes.mu.Lock()
	panes.idle = make(map[Options][]*glamour.TermRenderer)
	panes.created, panes.reused = 0, 0
	panes.mu.Unlock()
}
