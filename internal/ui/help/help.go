// Package help contains the help overlay component.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/marktime/internal/keys"
	"github.com/zjrosen/marktime/internal/log"
	"github.com/zjrosen/marktime/internal/ui/markdown"
	"github.com/zjrosen/marktime/internal/ui/overlay"
	"github.com/zjrosen/marktime/internal/ui/styles"
)

// contentWidth is the markdown wrap width inside the box.
const contentWidth = 56

var sections = []string{"Timecodes", "Transport", "General"}

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	style  string
	width  int
	height int
}

// New creates a help view for km rendered with a glamour style.
func New(km keys.KeyMap, style string) Model {
	return Model{keys: km, style: style}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Markdown returns the help text as markdown.
func (m Model) Markdown() string {
	var b strings.Builder
	b.WriteString("# marktime\n")
	for i, group := range m.keys.FullHelp() {
		fmt.Fprintf(&b, "\n## %s\n\n", sections[i])
		for _, binding := range group {
			writeBinding(&b, binding)
		}
	}

	b.WriteString("\n## Syntax\n\n")
	b.WriteString("- `[HH:MM:SS]` timecode, click it in the preview to seek\n")
	b.WriteString("- `HH:MM:SS` bare timecode, highlighted only\n")
	b.WriteString("- a run of timecodes ends at the current position\n")

	fmt.Fprintf(&b, "\nPress %s or esc to close\n", m.keys.Help.Help().Key)
	return b.String()
}

func writeBinding(b *strings.Builder, binding key.Binding) {
	h := binding.Help()
	fmt.Fprintf(b, "- `%s` %s\n", h.Key, h.Desc)
}

// View renders the help box on top of background.
func (m Model) View(background string) string {
	box := styles.HelpStyle.Render(m.render())
	if background == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return overlay.Center(box, background, m.width, m.height)
}

func (m Model) render() string {
	text := m.Markdown()

	r, err := markdown.New(m.style, contentWidth)
	if err != nil {
		log.ErrorErr(log.CatUI, "creating help renderer", err, "style", m.style)
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		log.ErrorErr(log.CatUI, "rendering help", err)
		return text
	}
	return strings.Trim(out, "\n")
}
