package markup

// Range is a decoration over [Start, End) character offsets of the string
// that was tokenized.
type Range struct {
	Kind  Kind `json:"kind"`
	Start int  `json:"start"`
	End   int  `json:"end"`
}

// Len returns the number of characters the range covers.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether offset falls inside the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Map walks the top-level tokens left to right and emits one range per
// non-plain token. Plain runs only advance the offset. Nested kinds are not
// emitted; use MapDeep for those.
func Map(tokens []Token) []Range {
	var (
		ranges []Range
		start  int
	)
	for _, tok := range tokens {
		length := tok.Len()
		end := start + length
		if !tok.IsPlain() && length > 0 {
			ranges = append(ranges, Range{Kind: tok.Kind, Start: start, End: end})
		}
		start = end
	}
	return ranges
}

// MapDeep emits a range for every non-plain token at every depth. A parent
// comes before its children, so ranges stay sorted by Start; nested kinds
// over the same characters produce separate ranges with shared offsets.
func MapDeep(tokens []Token) []Range {
	var ranges []Range
	mapDeep(tokens, 0, &ranges)
	return ranges
}

func mapDeep(tokens []Token, start int, ranges *[]Range) {
	for _, tok := range tokens {
		length := tok.Len()
		if !tok.IsPlain() && length > 0 {
			*ranges = append(*ranges, Range{Kind: tok.Kind, Start: start, End: start + length})
		}
		if tok.Shape == ShapeContainer {
			mapDeep(tok.Children, start, ranges)
		}
		start += length
	}
}

// Decorate tokenizes text with the markdown grammar and maps the top level.
func Decorate(text string) []Range {
	return Map(Tokenize(text))
}

// Span returns the characters of text covered by r.
func Span(text string, r Range) string {
	runes := []rune(text)
	if r.Start < 0 || r.End > len(runes) || r.Start > r.End {
		return ""
	}
	return string(runes[r.Start:r.End])
}
