package playback

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fakeNow is a manually advanced time source.
type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time { return f.t }

func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestClock(opts ...ClockOption) (*Clock, *fakeNow) {
	f := &fakeNow{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewClock(append([]ClockOption{WithNow(f.now)}, opts...)...), f
}

func TestClock_StartsPausedAtZero(t *testing.T) {
	c, f := newTestClock()
	f.advance(time.Minute)

	require.False(t, c.Playing())
	require.Zero(t, c.Position())
}

func TestClock_PlayAdvancesPauseFreezes(t *testing.T) {
	c, f := newTestClock(WithPosition(10))

	c.Play()
	f.advance(2500 * time.Millisecond)
	require.InDelta(t, 12.5, c.Position(), 1e-9)

	c.Pause()
	f.advance(time.Hour)
	require.InDelta(t, 12.5, c.Position(), 1e-9)
}

func TestClock_PlayAndPauseAreIdempotent(t *testing.T) {
	c, f := newTestClock()

	c.Play()
	f.advance(time.Second)
	c.Play()
	f.advance(time.Second)
	require.InDelta(t, 2, c.Position(), 1e-9, "second Play must not reset the anchor")

	c.Pause()
	c.Pause()
	require.InDelta(t, 2, c.Position(), 1e-9)
}

func TestClock_Toggle(t *testing.T) {
	c, _ := newTestClock()

	require.True(t, c.Toggle())
	require.True(t, c.Playing())
	require.False(t, c.Toggle())
	require.False(t, c.Playing())
}

func TestClock_SeekWhilePlaying(t *testing.T) {
	c, f := newTestClock()
	c.Play()
	f.advance(5 * time.Second)

	c.Seek(100)
	require.InDelta(t, 100, c.Position(), 1e-9)

	f.advance(time.Second)
	require.InDelta(t, 101, c.Position(), 1e-9)
}

func TestClock_NeverNegative(t *testing.T) {
	tests := []struct {
		name string
		act  func(c *Clock)
	}{
		{"seek negative", func(c *Clock) { c.Seek(-4) }},
		{"seek NaN", func(c *Clock) { c.Seek(math.NaN()) }},
		{"nudge past zero", func(c *Clock) { c.Nudge(-30) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClock(WithPosition(3))
			tt.act(c)
			require.Zero(t, c.Position())
		})
	}
}

func TestClock_NudgeProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		start := rapid.Float64Range(0, 86399).Draw(rt, "start")
		delta := rapid.Float64Range(-1000, 1000).Draw(rt, "delta")

		c, _ := newTestClock(WithPosition(start))
		c.Nudge(delta)

		require.InDelta(rt, math.Max(0, start+delta), c.Position(), 1e-6)
	})
}
