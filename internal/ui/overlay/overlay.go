// Package overlay draws one rendered block over another without clearing
// what is underneath.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center draws fg in the middle of a width x height background. Background
// cells left and right of fg keep their styling.
func Center(fg, bg string, width, height int) string {
	x := max((width-lipgloss.Width(fg))/2, 0)
	y := max((height-lipgloss.Height(fg))/2, 0)
	return At(fg, bg, x, y, height)
}

// At draws fg with its top-left corner at column x, row y. The background is
// padded to height rows; fg rows past the last row are dropped.
func At(fg, bg string, x, y, height int) string {
	rows := strings.Split(bg, "\n")
	for len(rows) < height {
		rows = append(rows, "")
	}

	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row >= len(rows) {
			break
		}
		rows[row] = splice(rows[row], line, x)
	}
	return strings.Join(rows, "\n")
}

// splice replaces the cells of bg starting at column x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	var right string
	if end := x + ansi.StringWidth(fg); end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}
