package presentation

import (
	"github.com/zjrosen/marktime/internal/markup"
	"github.com/zjrosen/marktime/internal/timecode"
)

// RangeDTO is a decoration range with the text it covers.
type RangeDTO struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// MentionDTO is a bracketed timecode found in a document.
type MentionDTO struct {
	Text    string  `json:"text"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Seconds float64 `json:"seconds"`
}

// FromRanges pairs each range with its text. Offsets are characters of text.
func FromRanges(text string, ranges []markup.Range) []RangeDTO {
	dtos := make([]RangeDTO, 0, len(ranges))
	for _, r := range ranges {
		dtos = append(dtos, RangeDTO{
			Kind:  string(r.Kind),
			Start: r.Start,
			End:   r.End,
			Text:  markup.Span(text, r),
		})
	}
	return dtos
}

// FromMentions converts extracted timecodes. Offsets are bytes of the text.
func FromMentions(mentions []timecode.Mention) []MentionDTO {
	dtos := make([]MentionDTO, 0, len(mentions))
	for _, m := range mentions {
		dtos = append(dtos, MentionDTO{
			Text:    m.Text,
			Start:   m.Start,
			End:     m.End,
			Seconds: m.Value.Seconds(),
		})
	}
	return dtos
}
