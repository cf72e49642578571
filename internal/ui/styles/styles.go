// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	PaneStyle        lipgloss.Style
	FocusedPaneStyle lipgloss.Style
	StatusBarStyle   lipgloss.Style
	StatusDirtyStyle lipgloss.Style
	StatusErrorStyle lipgloss.Style
	HelpStyle        lipgloss.Style
)

// DefaultDecorationColors are the foreground colours per decoration kind
// (Catppuccin Mocha / Latte).
var DefaultDecorationColors = map[string]lipgloss.AdaptiveColor{
	"blockquote":    {Light: "#7C7F93", Dark: "#9399B2"}, // overlay2
	"code":          {Light: "#40A02B", Dark: "#A6E3A1"}, // green
	"heading":       {Light: "#1E66F5", Dark: "#89B4FA"}, // blue
	"hr":            {Light: "#9CA0B0", Dark: "#6C7086"}, // overlay0
	"list":          {Light: "#FE640B", Dark: "#FAB387"}, // peach
	"timecode":      {Light: "#DF8E1D", Dark: "#F9E2AF"}, // yellow
	"bare-timecode": {Light: "#179299", Dark: "#94E2D5"}, // teal
	"link":          {Light: "#04A5E5", Dark: "#89DCEB"}, // sky
	"bold":          {Light: "#4C4F69", Dark: "#CDD6F4"}, // text
	"italic":        {Light: "#4C4F69", Dark: "#CDD6F4"}, // text
	"punctuation":   {Light: "#9CA0B0", Dark: "#6C7086"}, // overlay0
	"variable":      {Light: "#8839EF", Dark: "#CBA6F7"}, // mauve
	"string":        {Light: "#D20F39", Dark: "#F38BA8"}, // red
}

var decorationStyles map[string]lipgloss.Style

func init() {
	rebuildStyles(DefaultDecorationColors)
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ApplyTheme replaces decoration colours. Keys are decoration kinds, values
// hex colours used for both light and dark backgrounds. Unknown kinds and
// malformed colours are rejected and nothing changes.
func ApplyTheme(colors map[string]string) error {
	next := maps.Clone(DefaultDecorationColors)
	for kind, hex := range colors {
		if _, ok := DefaultDecorationColors[kind]; !ok {
			return fmt.Errorf("unknown decoration kind: %s", kind)
		}
		if !hexColor.MatchString(hex) {
			return fmt.Errorf("invalid hex color for %s: %s", kind, hex)
		}
		next[kind] = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}
	rebuildStyles(next)
	return nil
}

func rebuildStyles(colors map[string]lipgloss.AdaptiveColor) {
	decorationStyles = make(map[string]lipgloss.Style, len(colors))
	for kind, c := range colors {
		s := lipgloss.NewStyle().Foreground(c)
		switch kind {
		case "heading", "bold":
			s = s.Bold(true)
		case "italic":
			s = s.Italic(true)
		case "link", "timecode":
			s = s.Underline(true)
		}
		decorationStyles[kind] = s
	}

	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderDefaultColor)
	FocusedPaneStyle = PaneStyle.BorderForeground(BorderFocusColor)
	StatusBarStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	StatusDirtyStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	HelpStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderFocusColor).
		Padding(0, 1)
}

// Decoration returns the style for a decoration kind. Plain text and
// unknown kinds get an empty style.
func Decoration(kind string) lipgloss.Style {
	if s, ok := decorationStyles[kind]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
