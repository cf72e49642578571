// Package hotkey turns fired timecode commands into text inserted at the
// editing cursor.
package hotkey

import (
	"strings"

	"github.com/zjrosen/marktime/internal/log"
	"github.com/zjrosen/marktime/internal/timecode"
)

// Command is a normalized hotkey event.
type Command string

const (
	// CommandSingle inserts one token for the current position.
	CommandSingle Command = "single-timecode-insert"
	// CommandMulti inserts a short retrospective run ending at the current position.
	CommandMulti Command = "multi-timecode-insert"
)

// Inserter receives text to splice in at the active cursor.
type Inserter interface {
	InsertString(s string)
}

// Orchestrator dispatches timecode commands.
type Orchestrator struct {
	offsets []float64
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithOffsets overrides the offsets used by CommandMulti. An empty slice
// keeps timecode.DefaultOffsets.
func WithOffsets(offsets []float64) Option {
	return func(o *Orchestrator) {
		if len(offsets) == 0 {
			return
		}
		o.offsets = append([]float64(nil), offsets...)
	}
}

// New returns an Orchestrator using timecode.DefaultOffsets for multi inserts.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{offsets: timecode.DefaultOffsets}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Text returns what cmd would insert at position. ok is false for commands
// this package does not handle and for positions the codec rejects.
func (o *Orchestrator) Text(cmd Command, position float64) (text string, ok bool) {
	var offsets []float64
	switch cmd {
	case CommandSingle:
	case CommandMulti:
		offsets = o.offsets
	default:
		return "", false
	}

	tokens, err := timecode.Generate(position, offsets)
	if err != nil {
		log.Debug(log.CatHotkey, "insert skipped", "command", cmd, "position", position, "error", err)
		return "", false
	}
	return strings.Join(tokens, " "), true
}

// Fire inserts the text for cmd at position into dst and reports whether
// anything was inserted.
func (o *Orchestrator) Fire(cmd Command, position float64, dst Inserter) bool {
	text, ok := o.Text(cmd, position)
	if !ok {
		return false
	}
	dst.InsertString(text)
	log.Debug(log.CatHotkey, "inserted", "command", cmd, "text", text)
	return true
}
