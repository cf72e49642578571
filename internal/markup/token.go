// Package markup tokenizes lightweight markdown with embedded [HH:MM:SS]
// timecodes and maps the token tree onto flat decoration ranges.
package markup

import (
	"strings"
	"unicode/utf8"
)

// Kind identifies the markup class of a token.
type Kind string

const (
	KindPlain        Kind = "plain"
	KindBlockquote   Kind = "blockquote"
	KindCode         Kind = "code"
	KindHeading      Kind = "heading"
	KindRule         Kind = "hr"
	KindList         Kind = "list"
	KindTimecode     Kind = "timecode"
	KindBareTimecode Kind = "bare-timecode"
	KindLink         Kind = "link"
	KindBold         Kind = "bold"
	KindItalic       Kind = "italic"

	// Sub-token kinds, only found inside containers.
	KindPunctuation Kind = "punctuation"
	KindVariable    Kind = "variable"
	KindString      Kind = "string"
)

// Kinds lists every non-plain kind in grammar order followed by the sub-token kinds.
var Kinds = []Kind{
	KindBlockquote, KindCode, KindHeading, KindRule, KindList,
	KindTimecode, KindBareTimecode, KindLink, KindBold, KindItalic,
	KindPunctuation, KindVariable, KindString,
}

// Shape tags which variant a Token holds.
type Shape uint8

const (
	ShapePlain Shape = iota
	ShapeLeaf
	ShapeContainer
)

func (s Shape) String() string {
	switch s {
	case ShapePlain:
		return "plain"
	case ShapeLeaf:
		return "leaf"
	case ShapeContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Token is a node of the tokenizer output. Plain and Leaf tokens carry Text;
// Container tokens carry Children whose literals concatenate to the matched text.
type Token struct {
	Shape    Shape
	Kind     Kind
	Text     string
	Children []Token
}

// Plain returns an unclassified text run.
func Plain(text string) Token {
	return Token{Shape: ShapePlain, Kind: KindPlain, Text: text}
}

// Leaf returns a typed token with literal content.
func Leaf(kind Kind, text string) Token {
	return Token{Shape: ShapeLeaf, Kind: kind, Text: text}
}

// Container returns a typed token holding nested tokens.
func Container(kind Kind, children []Token) Token {
	return Token{Shape: ShapeContainer, Kind: kind, Children: children}
}

// IsPlain reports whether the token is an unclassified text run.
func (t Token) IsPlain() bool {
	return t.Shape == ShapePlain
}

// Len returns the token's length in characters. Containers sum their
// children rather than measuring the source text.
func (t Token) Len() int {
	if t.Shape != ShapeContainer {
		return utf8.RuneCountInString(t.Text)
	}
	n := 0
	for _, c := range t.Children {
		n += c.Len()
	}
	return n
}

// Literal reconstructs the source text the token was parsed from.
func (t Token) Literal() string {
	if t.Shape != ShapeContainer {
		return t.Text
	}
	var b strings.Builder
	t.writeLiteral(&b)
	return b.String()
}

func (t Token) writeLiteral(b *strings.Builder) {
	if t.Shape != ShapeContainer {
		b.WriteString(t.Text)
		return
	}
	for _, c := range t.Children {
		c.writeLiteral(b)
	}
}

// Find returns the first descendant (depth first, including t) of the given kind.
func (t Token) Find(kind Kind) (Token, bool) {
	if t.Kind == kind {
		return t, true
	}
	for _, c := range t.Children {
		if found, ok := c.Find(kind); ok {
			return found, true
		}
	}
	return Token{}, false
}

// Join concatenates the literals of a token sequence.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		t.writeLiteral(&b)
	}
	return b.String()
}
