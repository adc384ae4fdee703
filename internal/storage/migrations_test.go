package storage

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationRunner_FreshDB(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)

	err := runner.Run()
	require.NoError(t, err)

	for _, table := range []string{"kv", "schema_migrations"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrationRunner_IndexesCreated(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, NewMigrationRunner(db).Run())

	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name=?", "idx_kv_updated_at",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "idx_kv_updated_at", name)
}

func TestMigrationRunner_Idempotent(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)

	require.NoError(t, runner.Run())
	require.NoError(t, runner.Run(), "second run should be a no-op")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMigrationRunner_RecordsVersionAndName(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, NewMigrationRunner(db).Run())

	var version int
	var name string
	require.NoError(t, db.QueryRow("SELECT version, name FROM schema_migrations").Scan(&version, &name))
	assert.Equal(t, 1, version)
	assert.Equal(t, "kv_store", name)
}

func TestMigrationRunner_LatestVersion(t *testing.T) {
	runner := NewMigrationRunner(openTestDB(t))
	assert.Equal(t, 1, runner.LatestVersion())
}

func TestMigrationRunner_JournalMode(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, NewMigrationRunner(db).WithJournalMode("DELETE").Run())

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	// In-memory databases always report "memory".
	assert.Equal(t, "memory", mode)
}

func TestMigrationRunner_PreservesDataOnRerun(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, NewMigrationRunner(db).Run())

	_, err := db.Exec("INSERT INTO kv (key, value, byte_size) VALUES ('k', 'v', 1)")
	require.NoError(t, err)

	require.NoError(t, NewMigrationRunner(db).Run())

	var value string
	require.NoError(t, db.QueryRow("SELECT value FROM kv WHERE key = 'k'").Scan(&value))
	assert.Equal(t, "v", value)
}
