package app

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/marktime/internal/timecode"
	"github.com/zjrosen/marktime/internal/ui/styles"
)

const maxNameWidth = 32

type statusKind int

const (
	statusInfo statusKind = iota
	statusError
)

// renderStatus draws the one-line bar: transport, file, message on the left,
// short help on the right. The message is cut first when space runs out.
func (m Model) renderStatus() string {
	state := "⏸"
	if m.clock.Playing() {
		state = "▶"
	}
	left := state + " " + timecode.Timecode(m.clock.Position()).String()

	name := runewidth.Truncate(filepath.Base(m.doc.Path()), maxNameWidth, "…")
	if m.doc.Dirty() {
		left += "  " + styles.StatusDirtyStyle.Render(name+" *")
	} else {
		left += "  " + name
	}

	if m.status != "" {
		msg := m.status
		if m.statusKind == statusError {
			msg = styles.StatusErrorStyle.Render(msg)
		}
		left += "  " + msg
	}

	right := m.shortHelp.View(m.keys)

	room := m.width - ansi.StringWidth(right) - 1
	if room < 0 {
		right = ""
		room = m.width
	}
	left = ansi.Truncate(left, room, "…")

	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	line := left + strings.Repeat(" ", max(gap, 0)) + right
	return styles.StatusBarStyle.Render(strings.TrimRight(line, "\n"))
}
