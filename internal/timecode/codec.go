// Package timecode converts between playback positions in seconds and the
// HH:MM:SS notation embedded in transcript notes.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Codec errors. Every error returned by Parse and Format wraps exactly one of these.
var (
	ErrMalformedTimecode = errors.New("malformed timecode")
	ErrOutOfRange        = errors.New("timecode out of range")
	ErrNegativeDuration  = errors.New("negative duration")
)

const (
	maxHour   = 23
	maxMinute = 59
	maxSecond = 59

	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute

	// limit is the first whole second that no longer fits in HH:MM:SS.
	limit = 24 * secondsPerHour

	// framesPerSecond is the rate of the optional ":FFF" suffix.
	framesPerSecond = 1000
)

// textPattern matches HH:MM:SS with an optional caller-appended frame suffix.
var textPattern = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(?::(\d{1,3}))?$`)

// Timecode is an elapsed duration in seconds.
type Timecode float64

// FromDuration converts a time.Duration into a Timecode.
func FromDuration(d time.Duration) Timecode {
	return Timecode(d.Seconds())
}

// Seconds returns the value as a float64 number of seconds.
func (t Timecode) Seconds() float64 {
	return float64(t)
}

// Duration returns the value as a time.Duration.
func (t Timecode) Duration() time.Duration {
	return time.Duration(float64(t) * float64(time.Second))
}

// String renders the value as HH:MM:SS, or "--:--:--" when it cannot be rendered.
func (t Timecode) String() string {
	s, err := Format(float64(t))
	if err != nil {
		return "--:--:--"
	}
	return s
}

// Parse reads "HH:MM:SS" (optionally followed by ":FFF" frames at 1000 fps)
// and returns the total number of seconds.
func Parse(text string) (Timecode, error) {
	m := textPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimecode, text)
	}

	// The pattern guarantees two ASCII digits per field.
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])

	switch {
	case hours > maxHour:
		return 0, fmt.Errorf("%w: hour %d exceeds %d", ErrOutOfRange, hours, maxHour)
	case minutes > maxMinute:
		return 0, fmt.Errorf("%w: minute %d exceeds %d", ErrOutOfRange, minutes, maxMinute)
	case seconds > maxSecond:
		return 0, fmt.Errorf("%w: second %d exceeds %d", ErrOutOfRange, seconds, maxSecond)
	}

	total := float64(hours*secondsPerHour + minutes*secondsPerMinute + seconds)
	if m[4] != "" {
		frames, _ := strconv.Atoi(m[4])
		total += float64(frames) / framesPerSecond
	}
	return Timecode(total), nil
}

// Format floors seconds to a whole second and renders it as zero-padded HH:MM:SS.
// It does not clamp: negative input fails with ErrNegativeDuration and
// anything at or beyond 24:00:00 fails with ErrOutOfRange.
func Format(seconds float64) (string, error) {
	switch {
	case math.IsNaN(seconds):
		return "", fmt.Errorf("%w: NaN", ErrOutOfRange)
	case seconds < 0:
		return "", fmt.Errorf("%w: %g", ErrNegativeDuration, seconds)
	case seconds >= limit:
		return "", fmt.Errorf("%w: %g seconds is past 23:59:59", ErrOutOfRange, seconds)
	}

	whole := int(math.Floor(seconds))
	h := whole / secondsPerHour
	m := whole % secondsPerHour / secondsPerMinute
	s := whole % secondsPerMinute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s), nil
}

// Wrap brackets a formatted timecode: "01:02:03" -> "[01:02:03]".
func Wrap(text string) string {
	return "[" + text + "]"
}

// Token formats seconds and wraps the result in brackets.
func Token(seconds float64) (string, error) {
	text, err := Format(seconds)
	if err != nil {
		return "", err
	}
	return Wrap(text), nil
}
