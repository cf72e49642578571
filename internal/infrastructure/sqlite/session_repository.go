package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/marktime/internal/sessions/domain"
)

const sessionColumns = `id, guid, path, content, position, created_at, updated_at`

// sessionRepository implements domain.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

func newSessionRepository(db *sql.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

var _ domain.SessionRepository = (*sessionRepository)(nil)

func scanSession(scanner interface{ Scan(...any) error }) (*SessionModel, error) {
	var model SessionModel
	err := scanner.Scan(
		&model.ID, &model.GUID, &model.Path, &model.Content, &model.Position,
		&model.CreatedAt, &model.UpdatedAt,
	)
	return &model, err
}

// Save upserts by path. The stored row keeps its original guid and
// created_at when the path already exists.
func (r *sessionRepository) Save(session *domain.Session) error {
	model := toSessionModel(session)

	var id int64
	err := r.db.QueryRow(
		`INSERT INTO sessions (guid, path, content, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			content = excluded.content,
			position = excluded.position,
			updated_at = excluded.updated_at
		 RETURNING id`,
		model.GUID, model.Path, model.Content, model.Position, model.CreatedAt, model.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	session.SetID(id)
	return nil
}

// FindByPath retrieves the session for path.
func (r *sessionRepository) FindByPath(path string) (*domain.Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE path = ?`, path)
	model, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.SessionNotFoundError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session by path: %w", err)
	}
	return model.toDomain(), nil
}

// Delete removes the session for path.
func (r *sessionRepository) Delete(path string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.SessionNotFoundError{Path: path}
	}
	return nil
}

// List returns sessions, most recently updated first.
func (r *sessionRepository) List(limit int) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY updated_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.Session
	for rows.Next() {
		model, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}
