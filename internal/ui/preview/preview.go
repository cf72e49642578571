// Package preview renders the document with its decorations and maps mouse
// clicks back to the decorated span under the pointer.
package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/marktime/internal/cachemanager"
	"github.com/zjrosen/marktime/internal/log"
	"github.com/zjrosen/marktime/internal/markup"
	"github.com/zjrosen/marktime/internal/ui/styles"
)

const zonePrefix = "preview-span:"

// tabWidth matches lipgloss' default tab expansion.
const tabWidth = 4

type lineKey string

// Span is a clicked decoration.
type Span struct {
	Line  int
	Range markup.Range
	Text  string
}

// Model is the decorated, scrollable preview pane.
type Model struct {
	viewport viewport.Model
	zones    *zone.Manager
	ranges   *cachemanager.ReadThroughCache[lineKey, []markup.Range, string]
	text     string
	spans    map[string]Span
	width    int
	rendered bool
}

// New returns an empty preview. The zone manager is owned by the preview;
// the final program view must pass through Scan.
func New() Model {
	cache := cachemanager.NewInMemoryCacheManager[lineKey, []markup.Range](
		"preview-ranges", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)

	return Model{
		viewport: viewport.New(0, 0),
		zones:    zone.New(),
		ranges: cachemanager.NewReadThroughCache[lineKey, []markup.Range, string](
			cache,
			func(_ context.Context, line string) ([]markup.Range, error) {
				return markup.Decorate(line), nil
			},
			false,
		),
		spans: map[string]Span{},
	}
}

// SetSize sets the pane's inner dimensions and re-renders.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

// SetContent replaces the document text and re-renders, keeping the scroll
// offset where possible.
func (m *Model) SetContent(text string) {
	if text == m.text && m.rendered {
		return
	}
	m.text = text
	m.render()
}

func (m *Model) render() {
	m.spans = map[string]Span{}
	lines := strings.Split(m.text, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = m.renderLine(i, line)
	}
	m.viewport.SetContent(strings.Join(out, "\n"))
	m.rendered = true
}

func (m *Model) renderLine(n int, line string) string {
	ranges, err := m.ranges.Get(context.Background(), lineKey(line), line, cachemanager.DefaultExpiration)
	if err != nil {
		log.ErrorErr(log.CatCache, "decorating line", err, "line", n)
		ranges = nil
	}

	runes := []rune(line)
	var b strings.Builder
	pos := 0
	for i, r := range ranges {
		b.WriteString(expandTabs(string(runes[pos:r.Start])))

		id := fmt.Sprintf("%s%d:%d", zonePrefix, n, i)
		text := string(runes[r.Start:r.End])
		m.spans[id] = Span{Line: n, Range: r, Text: text}
		b.WriteString(m.zones.Mark(id, styles.Decoration(string(r.Kind)).Render(expandTabs(text))))
		pos = r.End
	}
	b.WriteString(expandTabs(string(runes[pos:])))

	rendered := b.String()
	if m.width > 0 {
		rendered = wrap.String(wordwrap.String(rendered, m.width), m.width)
	}
	return rendered
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// Update handles scrolling.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// GotoLine scrolls so line is visible.
func (m *Model) GotoLine(line int) {
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// View renders the visible part of the preview with zone markers.
func (m Model) View() string {
	return m.viewport.View()
}

// Scan strips zone markers from the final program view and records where
// each span was drawn.
func (m Model) Scan(view string) string {
	return m.zones.Scan(view)
}

// SpanAt returns the decorated span under a left click.
func (m Model) SpanAt(msg tea.MouseMsg) (Span, bool) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return Span{}, false
	}
	for id, span := range m.spans {
		if z := m.zones.Get(id); z != nil && z.InBounds(msg) {
			return span, true
		}
	}
	return Span{}, false
}

// Close stops the zone manager's worker.
func (m Model) Close() {
	m.zones.Close()
}
