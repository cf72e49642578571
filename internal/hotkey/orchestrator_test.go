package hotkey

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/marktime/internal/markup"
)

// buffer is an Inserter that appends to a string.
type buffer struct {
	text  string
	calls int
}

func (b *buffer) InsertString(s string) {
	b.text += s
	b.calls++
}

func TestFire(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Command
		position float64
		want     string
	}{
		{"single", CommandSingle, 65, "[00:01:05]"},
		{"single truncates fraction", CommandSingle, 65.9, "[00:01:05]"},
		{"multi", CommandMulti, 62, "[00:00:59] [00:01:00] [00:01:01] [00:01:02]"},
		{"multi near zero skips negatives", CommandMulti, 1.5, "[00:00:00] [00:00:01]"},
		{"multi at zero", CommandMulti, 0, "[00:00:00]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b buffer
			require.True(t, New().Fire(tt.cmd, tt.position, &b))
			require.Equal(t, tt.want, b.text)
			require.Equal(t, 1, b.calls)
		})
	}
}

func TestFire_Ignored(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Command
		position float64
	}{
		{"unknown command", Command("save"), 10},
		{"negative position", CommandSingle, -1},
		{"position past a day", CommandMulti, 90000},
		{"NaN position", CommandSingle, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b buffer
			require.False(t, New().Fire(tt.cmd, tt.position, &b))
			require.Zero(t, b.calls)
		})
	}
}

func TestWithOffsets(t *testing.T) {
	offsets := []float64{10, 5}
	o := New(WithOffsets(offsets))
	offsets[0] = 99

	text, ok := o.Text(CommandMulti, 20)
	require.True(t, ok)
	require.Equal(t, "[00:00:10] [00:00:15] [00:00:20]", text)
}

func TestWithOffsets_EmptyKeepsDefaults(t *testing.T) {
	want, ok := New().Text(CommandMulti, 62)
	require.True(t, ok)

	for _, offsets := range [][]float64{nil, {}} {
		got, ok := New(WithOffsets(offsets)).Text(CommandMulti, 62)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestFire_InsertedRunTokenizes(t *testing.T) {
	var b buffer
	New().Fire(CommandMulti, 120, &b)

	ranges := markup.Decorate(b.text)
	require.NotEmpty(t, ranges)
	require.Equal(t, markup.KindTimecode, ranges[len(ranges)-1].Kind,
		"the closing token of a run sits at end of line")
}
