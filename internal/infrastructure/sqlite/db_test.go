package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/marktime/internal/sessions/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err, "NewDB should succeed")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestNewDB_CreatesDirectory verifies that NewDB creates the parent directory if missing.
func TestNewDB_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "nested", "sessions.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err, "Directory should exist after NewDB")
	require.True(t, info.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), info.Mode().Perm(), "Directory should have 0700 permissions")
	}

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "Database file should exist after NewDB")
}

func TestNewDB_RunsMigrations(t *testing.T) {
	db := openTestDB(t)

	var tableName string
	err := db.conn.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='sessions'",
	).Scan(&tableName)
	require.NoError(t, err, "sessions table should exist after migrations")

	var version int
	require.NoError(t, db.conn.QueryRow("PRAGMA user_version").Scan(&version))
	require.Equal(t, len(migrations), version)
}

func TestNewDB_Pragmas(t *testing.T) {
	db := openTestDB(t)

	var journalMode string
	require.NoError(t, db.conn.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	require.Equal(t, "wal", journalMode)

	var foreignKeys int
	require.NoError(t, db.conn.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	require.Equal(t, 1, foreignKeys)

	var busyTimeout int
	require.NoError(t, db.conn.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	require.Equal(t, 5000, busyTimeout)
}

func TestNewDB_ReopenKeepsDataWithoutBackup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sessions.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	s := domain.NewSession("guid-1", "/notes/a.md")
	s.Record("hello", 3)
	require.NoError(t, db1.SessionRepository().Save(s))
	require.NoError(t, db1.Close())

	db2, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db2.Close()

	found, err := db2.SessionRepository().FindByPath("/notes/a.md")
	require.NoError(t, err)
	require.Equal(t, "hello", found.Content())

	_, err = os.Stat(dbPath + ".bak")
	require.True(t, os.IsNotExist(err), "an up to date schema needs no backup")
}

func TestNewDB_BackupBeforePendingMigration(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sessions.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	// Pretend the last migration has not run yet.
	_, err = db1.conn.Exec("PRAGMA user_version = 1")
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db2.Close()

	info, err := os.Stat(dbPath + ".bak")
	require.NoError(t, err, "Backup file should exist")
	require.Greater(t, info.Size(), int64(0))
}

func TestDB_Close(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)

	require.NoError(t, db.Close())
	require.Error(t, db.conn.Ping(), "Ping should fail after Close")
}

func TestDB_Connection(t *testing.T) {
	db := openTestDB(t)

	conn := db.Connection()
	require.IsType(t, (*sql.DB)(nil), conn)
	require.NoError(t, conn.Ping())
	require.NotNil(t, db.SessionRepository())
}

func TestNewDB_MultipleCalls(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sessions.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db1.Close()

	db2, err := NewDB(dbPath)
	require.NoError(t, err, "WAL mode allows a second connection")
	defer db2.Close()

	var count int
	require.NoError(t, db1.conn.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count))
	require.NoError(t, db2.conn.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count))
}

func TestNewDB_InvalidPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := NewDB(filepath.Join(blocker, "sessions.db"))
	require.Error(t, err, "a regular file cannot be a parent directory")
}
