package preview

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/marktime/internal/markup"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newPreview(t *testing.T, text string, width, height int) Model {
	t.Helper()
	m := New()
	t.Cleanup(m.Close)
	m.SetSize(width, height)
	m.SetContent(text)
	return m
}

func spanID(t *testing.T, m Model, text string) string {
	t.Helper()
	for id, span := range m.spans {
		if span.Text == text {
			return id
		}
	}
	t.Fatalf("no span with text %q", text)
	return ""
}

func waitZone(t *testing.T, m Model, id string) *zone.ZoneInfo {
	t.Helper()
	var z *zone.ZoneInfo
	for retries := 0; retries < 50; retries++ {
		_ = m.Scan(m.View())
		z = m.zones.Get(id)
		if z != nil && !z.IsZero() {
			break
		}
		// Zones are registered by the manager's worker goroutine.
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z)
	require.False(t, z.IsZero())
	return z
}

func TestView_StripsMarkersAndKeepsText(t *testing.T) {
	m := newPreview(t, "# Notes\n[00:01:02] intro *now*", 80, 10)

	view := m.Scan(m.View())
	require.Contains(t, view, "# Notes")
	require.Contains(t, view, "[00:01:02] intro *now*")
	require.NotContains(t, view, "\x1b[")
}

func TestSetContent_RegistersSpansPerLine(t *testing.T) {
	m := newPreview(t, "plain\n[00:00:05] and 00:00:07", 80, 10)

	var got []Span
	for _, s := range m.spans {
		got = append(got, s)
	}
	require.Len(t, got, 2)
	require.ElementsMatch(t, []Span{
		{Line: 1, Range: markup.Range{Kind: markup.KindTimecode, Start: 0, End: 10}, Text: "[00:00:05]"},
		{Line: 1, Range: markup.Range{Kind: markup.KindBareTimecode, Start: 15, End: 23}, Text: "00:00:07"},
	}, got)
}

func TestSetContent_ReplacesSpans(t *testing.T) {
	m := newPreview(t, "[00:00:05]", 80, 10)
	require.Len(t, m.spans, 1)

	m.SetContent("nothing here")
	require.Empty(t, m.spans)
}

func TestSpanAt_LeftClickOnTimecode(t *testing.T) {
	m := newPreview(t, "see [00:01:30] here", 80, 5)
	z := waitZone(t, m, spanID(t, m, "[00:01:30]"))

	span, ok := m.SpanAt(tea.MouseMsg{
		X:      z.StartX + (z.EndX-z.StartX)/2,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	require.True(t, ok)
	require.Equal(t, "[00:01:30]", span.Text)
	require.Equal(t, markup.KindTimecode, span.Range.Kind)
}

func TestSpanAt_IgnoresOtherButtonsAndMisses(t *testing.T) {
	m := newPreview(t, "see [00:01:30] here", 80, 5)
	z := waitZone(t, m, spanID(t, m, "[00:01:30]"))

	_, ok := m.SpanAt(tea.MouseMsg{X: z.StartX, Y: z.StartY, Button: tea.MouseButtonRight, Action: tea.MouseActionRelease})
	require.False(t, ok, "right click")

	_, ok = m.SpanAt(tea.MouseMsg{X: z.StartX, Y: z.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	require.False(t, ok, "motion")

	_, ok = m.SpanAt(tea.MouseMsg{X: 0, Y: z.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.False(t, ok, "outside the span")
}

func TestRender_WrapsToWidth(t *testing.T) {
	m := newPreview(t, "one two three four five six seven [00:00:01] eight", 12, 20)

	view := m.Scan(m.View())
	for _, line := range strings.Split(view, "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 12, "line %q", line)
	}
	require.Contains(t, view, "[00:00:01]")
}

func TestRender_ExpandsTabs(t *testing.T) {
	m := newPreview(t, "\tcode", 80, 5)

	view := m.Scan(m.View())
	require.NotContains(t, view, "\t")
	require.Contains(t, view, "    code")
}

func TestGotoLine_ScrollsIntoView(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	m := newPreview(t, strings.Join(lines, "\n"), 20, 5)

	m.GotoLine(20)
	require.Equal(t, 16, m.viewport.YOffset)

	m.GotoLine(2)
	require.Equal(t, 2, m.viewport.YOffset)
}
