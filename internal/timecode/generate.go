package timecode

import (
	"math"
	"regexp"
)

// DefaultOffsets are the retrospective deltas, most distant first, used by
// the multi insert.
var DefaultOffsets = []float64{3, 2, 1}

// Generate builds bracketed tokens for current-offset for every offset that
// does not reach before zero, in the order given, followed by one token for
// current itself. Offsets larger than current are skipped, not clamped.
func Generate(current float64, offsets []float64) ([]string, error) {
	tokens := make([]string, 0, len(offsets)+1)
	for _, offset := range offsets {
		if math.IsNaN(offset) || offset < 0 || current < offset {
			continue
		}
		tok, err := Token(current - offset)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}

	tok, err := Token(current)
	if err != nil {
		return nil, err
	}
	return append(tokens, tok), nil
}

// Mention is a bracketed timecode found in a document.
type Mention struct {
	Text  string   `json:"text"`
	Start int      `json:"start"` // byte offset of '['
	End   int      `json:"end"`   // byte offset after ']'
	Value Timecode `json:"seconds"`
}

var mentionPattern = regexp.MustCompile(`\[(\d{2}:\d{2}:\d{2})\]`)

// Extract returns every bracketed, in-range timecode in text, in order.
func Extract(text string) []Mention {
	var out []Mention
	for _, loc := range mentionPattern.FindAllStringSubmatchIndex(text, -1) {
		value, err := Parse(text[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		out = append(out, Mention{
			Text:  text[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
			Value: value,
		})
	}
	return out
}
