package markup

import (
	"github.com/dlclark/regexp2"
)

// rule is one grammar entry. Rules with an inside grammar produce Container
// tokens whose content is tokenized again against that grammar.
type rule struct {
	kind   Kind
	re     *regexp2.Regexp
	inside []rule
}

// Grammar is an ordered, immutable rule table. Earlier rules win when more
// than one rule matches at the same position.
type Grammar struct {
	rules []rule
}

// tc is the bracket-free HH:MM:SS body shared by the timecode rules.
const tc = `(?:[01][0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]`

// Patterns. Line-oriented rules opt into multiline anchors with (?m);
// sub-grammars keep ^ and $ bound to the matched content.
const (
	blockquotePattern = `(?m)^>(?:[\t ]*>)*`
	codeBlockPattern  = `(?m)^(?: {4}|\t).+`
	codeSpanPattern   = "``.+?``|`[^`\\n]+`"
	headingPattern    = `(?m)(?<=^[\t ]*)#+.+`
	rulePattern       = `(?m)(?<=^[\t ]*)([*-])(?:[\t ]*\1){2,}(?=[\t ]*$)`
	listPattern       = `(?m)(?<=^[\t ]*)(?:[*+-]|[0-9]+\.)(?=[\t ].)`

	// Bracketed timecodes: before a word, at the end of a line that does not
	// start with it, or alone on their line. Multiline $ only matches before
	// \n, so a CRLF line end is allowed explicitly.
	timecodeWordPattern  = `\[` + tc + `\](?=\s*\w)`
	timecodeTailPattern  = `(?m)(?<!^)\[` + tc + `\](?=\r?$)`
	timecodeAlonePattern = `(?m)^\[` + tc + `\](?=\s*$)`
	bareTimecodePattern  = tc

	// A bracketed timecode is never a link label.
	linkPattern = `!?\[(?!` + tc + `\])[^\]]+\](?:\([^\s)]+(?:[\t ]+"(?:\\.|[^"\\])*")?\)| ?\[[^\]\n]*\])`

	// The opening delimiter must not be escaped. Content may cross single
	// line breaks but not a blank line.
	boldPattern   = `(?<!\\)(\*\*|__)(?:(?:\r?\n|\r)(?!\r?\n|\r)|.)+?\1`
	italicPattern = `(?<!\\)([*_])(?:(?:\r?\n|\r)(?!\r?\n|\r)|.)+?\1`

	headingPunctuation = `^#+|#+$`
	boldPunctuation    = `^\*\*|^__|\*\*$|__$`
	italicPunctuation  = `^[*_]|[*_]$`
	linkLabel          = `(?<=^!?\[)[^\]]+`
	linkTitle          = `"(?:\\.|[^"\\])*"(?=\)$)`
)

// emphasisDepth is how many times bold and italic may nest inside each other.
const emphasisDepth = 1

var markdown = buildMarkdown()

// Markdown returns the markdown + timecode grammar. It is built once and shared.
func Markdown() *Grammar {
	return markdown
}

func buildMarkdown() *Grammar {
	return &Grammar{rules: []rule{
		leaf(KindBlockquote, blockquotePattern),
		leaf(KindCode, codeBlockPattern),
		leaf(KindCode, codeSpanPattern),
		container(KindHeading, headingPattern, leaf(KindPunctuation, headingPunctuation)),
		leaf(KindRule, rulePattern),
		leaf(KindList, listPattern),
		leaf(KindTimecode, timecodeWordPattern),
		leaf(KindTimecode, timecodeTailPattern),
		leaf(KindTimecode, timecodeAlonePattern),
		leaf(KindBareTimecode, bareTimecodePattern),
		link(),
		bold(emphasisDepth),
		italic(emphasisDepth),
	}}
}

func link() rule {
	return container(KindLink, linkPattern,
		leaf(KindVariable, linkLabel),
		leaf(KindString, linkTitle),
	)
}

// bold and italic reference each other through a depth counter instead of a
// cyclic rule graph; at depth zero the nested emphasis is dropped.
func bold(depth int) rule {
	inside := []rule{leaf(KindPunctuation, boldPunctuation), link()}
	if depth > 0 {
		inside = append(inside, italic(depth-1))
	}
	return container(KindBold, boldPattern, inside...)
}

func italic(depth int) rule {
	inside := []rule{leaf(KindPunctuation, italicPunctuation), link()}
	if depth > 0 {
		inside = append(inside, bold(depth-1))
	}
	return container(KindItalic, italicPattern, inside...)
}

func leaf(kind Kind, pattern string) rule {
	return rule{kind: kind, re: regexp2.MustCompile(pattern, regexp2.None)}
}

func container(kind Kind, pattern string, inside ...rule) rule {
	r := leaf(kind, pattern)
	r.inside = inside
	return r
}
