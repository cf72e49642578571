package playback

import (
	"strings"

	"github.com/zjrosen/marktime/internal/log"
	"github.com/zjrosen/marktime/internal/timecode"
)

// Resolver turns the text of a clicked span into a seek request.
type Resolver struct {
	seeker Seeker
}

// NewResolver returns a Resolver that seeks s.
func NewResolver(s Seeker) *Resolver {
	return &Resolver{seeker: s}
}

// Seconds parses span text such as "[00:01:05]" into seconds. Surrounding
// whitespace and brackets are ignored.
func Seconds(text string) (float64, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimLeft(text, "[")
	text = strings.TrimRight(text, "]")
	text = strings.TrimSpace(text)

	// Append an explicit zero frame so "HH:MM:SS:FFF" input is rejected.
	tc, err := timecode.Parse(text + ":00")
	if err != nil {
		return 0, err
	}
	return tc.Seconds(), nil
}

// Resolve seeks to the timecode in text. Anything that does not parse is
// ignored; the return value reports whether a seek was issued.
func (r *Resolver) Resolve(text string) bool {
	seconds, err := Seconds(text)
	if err != nil {
		log.Debug(log.CatSeek, "click ignored", "text", text, "error", err)
		return false
	}
	log.Debug(log.CatSeek, "seek", "seconds", seconds)
	r.seeker.Seek(seconds)
	return true
}
