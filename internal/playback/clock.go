// Package playback holds the transport clock that stands in for a media
// player, and the resolver that turns a clicked timecode into a seek.
package playback

import (
	"math"
	"sync"
	"time"
)

// Seeker accepts seek requests in seconds.
type Seeker interface {
	Seek(seconds float64)
}

// Clock is a virtual media transport. While playing, the position advances
// with wall time; while paused it stays put. The zero value is not usable;
// call NewClock.
type Clock struct {
	mu      sync.Mutex
	now     func() time.Time
	base    float64   // position at anchor
	anchor  time.Time // when base was last set while playing
	playing bool
}

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithNow replaces the wall clock, for tests.
func WithNow(now func() time.Time) ClockOption {
	return func(c *Clock) {
		c.now = now
	}
}

// WithPosition sets the starting position.
func WithPosition(seconds float64) ClockOption {
	return func(c *Clock) {
		c.base = clamp(seconds)
	}
}

// NewClock returns a paused clock at position zero unless options say otherwise.
func NewClock(opts ...ClockOption) *Clock {
	c := &Clock{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Position returns the current playback position in seconds.
func (c *Clock) Position() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked()
}

func (c *Clock) positionLocked() float64 {
	if !c.playing {
		return c.base
	}
	return c.base + c.now().Sub(c.anchor).Seconds()
}

// Playing reports whether the clock is advancing.
func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Play starts advancing from the current position. No-op when already playing.
func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		return
	}
	c.anchor = c.now()
	c.playing = true
}

// Pause freezes the position. No-op when already paused.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return
	}
	c.base = c.positionLocked()
	c.playing = false
}

// Toggle flips between playing and paused and returns the new state.
func (c *Clock) Toggle() bool {
	if c.Playing() {
		c.Pause()
		return false
	}
	c.Play()
	return true
}

// Seek jumps to seconds. Negative or NaN targets land on zero.
func (c *Clock) Seek(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(seconds)
}

// Nudge moves the position by delta seconds, stopping at zero.
func (c *Clock) Nudge(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(c.positionLocked() + delta)
}

func (c *Clock) setLocked(seconds float64) {
	c.base = clamp(seconds)
	if c.playing {
		c.anchor = c.now()
	}
}

func clamp(seconds float64) float64 {
	if math.IsNaN(seconds) || seconds < 0 {
		return 0
	}
	return seconds
}
