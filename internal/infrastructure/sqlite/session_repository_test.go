package sqlite

import (
	"errors"
	"fmt"
	"testing"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/marktime/internal/sessions/domain"
)

func setupTestRepo(t *testing.T) domain.SessionRepository {
	t.Helper()
	return openTestDB(t).SessionRepository()
}

func newSession(path, content string, position float64) *domain.Session {
	s := domain.NewSession(uuid.NewString(), path)
	s.Record(content, position)
	return s
}

func TestSessionRepository_Save_Insert(t *testing.T) {
	repo := setupTestRepo(t)

	s := newSession("/notes/a.md", "[00:00:05] intro", 5.5)
	require.Zero(t, s.ID())

	require.NoError(t, repo.Save(s))
	require.Greater(t, s.ID(), int64(0), "Session should have ID assigned after insert")

	found, err := repo.FindByPath("/notes/a.md")
	require.NoError(t, err)
	require.Equal(t, s.ID(), found.ID())
	require.Equal(t, s.GUID(), found.GUID())
	require.Equal(t, "[00:00:05] intro", found.Content())
	require.Equal(t, 5.5, found.Position())
	require.WithinDuration(t, s.CreatedAt(), found.CreatedAt(), time.Millisecond)
	require.WithinDuration(t, s.UpdatedAt(), found.UpdatedAt(), time.Millisecond)
}

func TestSessionRepository_Save_UpsertByPath(t *testing.T) {
	repo := setupTestRepo(t)

	first := newSession("/notes/a.md", "v1", 1)
	require.NoError(t, repo.Save(first))

	// A second process that never loaded the row saves the same path.
	second := newSession("/notes/a.md", "v2", 2)
	require.NoError(t, repo.Save(second))
	require.Equal(t, first.ID(), second.ID())

	found, err := repo.FindByPath("/notes/a.md")
	require.NoError(t, err)
	require.Equal(t, "v2", found.Content())
	require.Equal(t, 2.0, found.Position())
	require.Equal(t, first.GUID(), found.GUID(), "guid is kept from the first insert")

	all, err := repo.List(0)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestSessionRepository_FindByPath_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByPath("/missing.md")
	var notFound *domain.SessionNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "/missing.md", notFound.Path)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	require.NoError(t, repo.Save(newSession("/notes/a.md", "x", 0)))

	require.NoError(t, repo.Delete("/notes/a.md"))

	_, err := repo.FindByPath("/notes/a.md")
	var notFound *domain.SessionNotFoundError
	require.True(t, errors.As(err, &notFound))

	err = repo.Delete("/notes/a.md")
	require.True(t, errors.As(err, &notFound), "second delete reports not found")
}

func TestSessionRepository_List_OrderAndLimit(t *testing.T) {
	repo := setupTestRepo(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(newSession(fmt.Sprintf("/notes/%d.md", i), "x", 0)))
		time.Sleep(2 * time.Millisecond)
	}

	all, err := repo.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "/notes/2.md", all[0].Path(), "most recently updated first")
	require.Equal(t, "/notes/0.md", all[2].Path())

	two, err := repo.List(2)
	require.NoError(t, err)
	require.Len(t, two, 2)
}

func TestSessionRepository_RoundTripProperty(t *testing.T) {
	repo := setupTestRepo(t)

	rapid.Check(t, func(rt *rapid.T) {
		path := "/notes/" + rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "name") + ".md"
		content := rapid.StringOf(rapid.RuneFrom(nil, unicode.L, unicode.N, unicode.P, unicode.Z)).Draw(rt, "content")
		position := rapid.Float64Range(0, 86399).Draw(rt, "position")

		require.NoError(rt, repo.Save(newSession(path, content, position)))

		found, err := repo.FindByPath(path)
		require.NoError(rt, err)
		require.Equal(rt, content, found.Content())
		require.Equal(rt, position, found.Position())
	})
}
