// Package domain holds the editing session entity: the last known buffer and
// playback position for one file. It has no infrastructure dependencies.
package domain

import (
	"fmt"
	"math"
	"time"
)

// Session is the remembered state of one document.
// Fields are unexported; use NewSession or ReconstituteSession.
type Session struct {
	id        int64
	guid      string
	path      string
	content   string
	position  float64
	createdAt time.Time
	updatedAt time.Time
}

// NewSession creates an unsaved session for the absolute file path.
func NewSession(guid, path string) *Session {
	now := time.Now()
	return &Session{
		guid:      guid,
		path:      path,
		createdAt: now,
		updatedAt: now,
	}
}

// ReconstituteSession rebuilds a session from storage.
func ReconstituteSession(id int64, guid, path, content string, position float64, createdAt, updatedAt time.Time) *Session {
	return &Session{
		id:        id,
		guid:      guid,
		path:      path,
		content:   content,
		position:  position,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Session) ID() int64            { return s.id }
func (s *Session) GUID() string         { return s.guid }
func (s *Session) Path() string         { return s.path }
func (s *Session) Content() string      { return s.content }
func (s *Session) Position() float64    { return s.position }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
func (s *Session) UpdatedAt() time.Time { return s.updatedAt }

// SetID is called by the repository after the first insert.
func (s *Session) SetID(id int64) { s.id = id }

// Record stores the buffer and playback position. Negative or NaN positions
// are stored as zero.
func (s *Session) Record(content string, position float64) {
	if math.IsNaN(position) || position < 0 {
		position = 0
	}
	s.content = content
	s.position = position
	s.updatedAt = time.Now()
}

// SessionNotFoundError is returned when no session exists for a path.
type SessionNotFoundError struct {
	Path string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("no session for %s", e.Path)
}
