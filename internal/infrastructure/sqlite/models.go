package sqlite

import (
	"time"

	"github.com/zjrosen/marktime/internal/sessions/domain"
)

// SessionModel is one row of the sessions table. Times are Unix milliseconds.
type SessionModel struct {
	ID        int64
	GUID      string
	Path      string
	Content   string
	Position  float64
	CreatedAt int64
	UpdatedAt int64
}

func toSessionModel(s *domain.Session) *SessionModel {
	return &SessionModel{
		ID:        s.ID(),
		GUID:      s.GUID(),
		Path:      s.Path(),
		Content:   s.Content(),
		Position:  s.Position(),
		CreatedAt: s.CreatedAt().UnixMilli(),
		UpdatedAt: s.UpdatedAt().UnixMilli(),
	}
}

func (m *SessionModel) toDomain() *domain.Session {
	return domain.ReconstituteSession(
		m.ID,
		m.GUID,
		m.Path,
		m.Content,
		m.Position,
		time.UnixMilli(m.CreatedAt),
		time.UnixMilli(m.UpdatedAt),
	)
}
