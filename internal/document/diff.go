package document

import (
	"fmt"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Summary counts characters inserted and deleted going from one text to another.
type Summary struct {
	Inserted int
	Deleted  int
}

// Empty reports whether the texts were identical.
func (s Summary) Empty() bool {
	return s.Inserted == 0 && s.Deleted == 0
}

func (s Summary) String() string {
	return fmt.Sprintf("+%d -%d", s.Inserted, s.Deleted)
}

// Summarize diffs from against to.
func Summarize(from, to string) Summary {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, false))

	var s Summary
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			s.Inserted += n
		case diffmatchpatch.DiffDelete:
			s.Deleted += n
		}
	}
	return s
}
