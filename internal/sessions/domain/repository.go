package domain

// SessionRepository defines the persistence interface for Session entities.
type SessionRepository interface {
	// Save persists a session. New sessions (ID == 0) are inserted and get an
	// ID; a session for a path that is already stored replaces it.
	Save(session *Session) error

	// FindByPath returns the session for an absolute file path.
	// Returns SessionNotFoundError if none exists.
	FindByPath(path string) (*Session, error)

	// Delete removes the session for path.
	// Returns SessionNotFoundError if none exists.
	Delete(path string) error

	// List returns up to limit sessions, most recently updated first.
	// A limit of 0 means no limit.
	List(limit int) ([]*Session, error)
}
