package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/pders01/hnterm/internal/debuglog"
	"github.com/pders01/hnterm/internal/item"
)

type renderKey struct {
	id    int
	width int
}

// markdownRenderer renders HN HTML bodies through glamour, caching the output
// per item and width since View runs after every message.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
	cache    map[renderKey]string
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{cache: map[renderKey]string{}}
}

func (m *markdownRenderer) termRenderer(width int) *glamour.TermRenderer {
	if m.renderer != nil && m.width == width {
		return m.renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		debuglog.Warnf("markdown renderer: %v", err)
		return nil
	}
	m.renderer, m.width = r, width
	return r
}

// Render returns the terminal form of an HTML body. id keys the cache; 0
// disables caching.
func (m *markdownRenderer) Render(id int, body string, width int) string {
	if width < 10 {
		width = 10
	}
	key := renderKey{id: id, width: width}
	if id != 0 {
		if out, ok := m.cache[key]; ok {
			return out
		}
	}

	out := m.render(body, width)
	if id != 0 {
		if len(m.cache) > 2048 {
			m.cache = map[renderKey]string{}
		}
		m.cache[key] = out
	}
	return out
}

func (m *markdownRenderer) render(body string, width int) string {
	md := item.ToMarkdown(body)
	if md == "" {
		return ""
	}
	r := m.termRenderer(width)
	if r == nil {
		return wrap(item.PlainText(body), width, 0)
	}
	out, err := r.Render(md)
	if err != nil {
		debuglog.Warnf("rendering markdown: %v", err)
		return wrap(item.PlainText(body), width, 0)
	}
	return strings.Trim(out, "\n")
}

// Forget drops cached output for id, e.g. after a refresh changed the text.
func (m *markdownRenderer) Forget(id int) {
	for k := range m.cache {
		if k.id == id {
			delete(m.cache, k)
		}
	}
}
