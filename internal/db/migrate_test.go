package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db, DialectSQLite))
	require.NoError(t, Migrate(db, DialectSQLite))
}

func TestMigrate_CreatesBlobsTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, "blobs").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "blobs", name)
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db := openTestDB(t)

	err := Migrate(db, Dialect("oracle"))
	assert.Error(t, err)
}

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/nested/showrunner.db"

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpenPostgres_RequiresDSN(t *testing.T) {
	_, err := OpenPostgres(t.Context(), "")
	assert.Error(t, err)
}
