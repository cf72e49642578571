package markup

import (
	"github.com/dlclark/regexp2"
)

// Tokenize splits text into a lossless token sequence: the literals of the
// returned tokens concatenate to exactly text. It never fails; anything the
// grammar does not recognise becomes plain text. text must be valid UTF-8;
// invalid bytes come back as U+FFFD.
func (g *Grammar) Tokenize(text string) []Token {
	if text == "" {
		return nil
	}
	return tokenize([]rune(text), g.rules)
}

// Tokenize runs the markdown grammar over text.
func Tokenize(text string) []Token {
	return Markdown().Tokenize(text)
}

// cursor remembers the next match of one rule at or after the scan position,
// so every rule is searched at most once per match it produces.
type cursor struct {
	next *regexp2.Match
	done bool
}

func tokenize(src []rune, rules []rule) []Token {
	var (
		out        []Token
		cursors    = make([]cursor, len(rules))
		pos        = 0
		plainStart = 0
	)

	for pos < len(src) {
		r, m := matchAt(src, pos, rules, cursors)
		if m == nil {
			pos++
			continue
		}
		if plainStart < pos {
			out = append(out, Plain(string(src[plainStart:pos])))
		}
		out = append(out, r.build(src[pos:pos+m.Length]))
		pos += m.Length
		plainStart = pos
	}

	if plainStart < len(src) {
		out = append(out, Plain(string(src[plainStart:])))
	}
	return out
}

// matchAt returns the first rule, in grammar order, with a non-empty match
// starting exactly at pos.
func matchAt(src []rune, pos int, rules []rule, cursors []cursor) (*rule, *regexp2.Match) {
	for i := range rules {
		c := &cursors[i]
		if c.done {
			continue
		}
		if c.next == nil || c.next.Index < pos {
			m, err := rules[i].re.FindRunesMatchStartingAt(src, pos)
			if err != nil || m == nil {
				c.next, c.done = nil, true
				continue
			}
			c.next = m
		}
		if c.next.Index == pos && c.next.Length > 0 {
			return &rules[i], c.next
		}
	}
	return nil, nil
}

func (r *rule) build(content []rune) Token {
	if len(r.inside) == 0 {
		return Leaf(r.kind, string(content))
	}
	return Container(r.kind, tokenize(content, r.inside))
}
