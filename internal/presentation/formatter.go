package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	json   bool
}

// NewFormatter creates a formatter writing plain columns, or indented JSON
// when asJSON is set.
func NewFormatter(writer io.Writer, asJSON bool) *Formatter {
	return &Formatter{
		writer: writer,
		json:   asJSON,
	}
}

// FormatRanges writes one range per line: kind, start, end, quoted text.
func (f *Formatter) FormatRanges(ranges []RangeDTO) error {
	if f.json {
		return f.encode(ranges)
	}
	for _, r := range ranges {
		if _, err := fmt.Fprintf(f.writer, "%-13s %5d %5d  %s\n", r.Kind, r.Start, r.End, quote(r.Text)); err != nil {
			return err
		}
	}
	return nil
}

// FormatMentions writes one timecode per line: seconds, start, end, text.
func (f *Formatter) FormatMentions(mentions []MentionDTO) error {
	if f.json {
		return f.encode(mentions)
	}
	for _, m := range mentions {
		if _, err := fmt.Fprintf(f.writer, "%8s %5d %5d  %s\n",
			strconv.FormatFloat(m.Seconds, 'f', -1, 64), m.Start, m.End, m.Text); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokens writes generated timecode tokens space separated on one line,
// or as a JSON array.
func (f *Formatter) FormatTokens(tokens []string) error {
	if f.json {
		return f.encode(tokens)
	}
	_, err := fmt.Fprintln(f.writer, strings.Join(tokens, " "))
	return err
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// quote escapes line breaks and tabs so each range stays on one line.
func quote(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}
