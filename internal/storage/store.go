package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Store defines the wordlens persistence operations.
type Store interface {
	KV
	Delete(ctx context.Context, key string) (bool, error)
	GetRecord(ctx context.Context, key string) (*Record, error)
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	getValue    *sql.Stmt
	getRecord   *sql.Stmt
	upsertValue *sql.Stmt
	deleteValue *sql.Stmt
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLiteStore from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		s.Close()
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getValue, err = s.db.Prepare(`SELECT value FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	s.getRecord, err = s.db.Prepare(`
		SELECT key, value, byte_size, updated_at FROM kv WHERE key = ?
	`)
	if err != nil {
		return err
	}

	// A single-row UPSERT replaces the value atomically, so readers see
	// either the previous or the new value, never a mix.
	s.upsertValue, err = s.db.Prepare(`
		INSERT INTO kv (key, value, byte_size, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			byte_size  = excluded.byte_size,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}

	s.deleteValue, err = s.db.Prepare(`DELETE FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	return nil
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05.999999999-07:00",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// Get returns the value stored under key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.getValue.QueryRowContext(ctx, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	ts := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.upsertValue.ExecContext(ctx, key, value, len(value), ts); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. It reports whether anything was removed.
func (s *SQLiteStore) Delete(ctx context.Context, key string) (bool, error) {
	res, err := s.deleteValue.ExecContext(ctx, key)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetRecord returns the stored value of key with its metadata, or nil if
// the key is absent.
func (s *SQLiteStore) GetRecord(ctx context.Context, key string) (*Record, error) {
	var r Record
	var tsStr string

	err := s.getRecord.QueryRowContext(ctx, key).Scan(&r.Key, &r.Value, &r.ByteSize, &tsStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get record %s: %w", key, err)
	}

	r.UpdatedAt, _ = parseTimestamp(tsStr)
	return &r, nil
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(byte_size), 0) FROM kv",
	).Scan(&stats.TotalKeys, &stats.TotalBytes)
	if err != nil {
		return nil, fmt.Errorf("count keys: %w", err)
	}

	if stats.TotalKeys > 0 {
		var newest string
		err = s.db.QueryRowContext(ctx, "SELECT MAX(updated_at) FROM kv").Scan(&newest)
		if err != nil {
			return nil, fmt.Errorf("last update: %w", err)
		}
		stats.LastUpdated, _ = parseTimestamp(newest)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version), 0) FROM schema_migrations",
	).Scan(&stats.SchemaVersion)
	if err != nil {
		return nil, fmt.Errorf("schema version: %w", err)
	}

	return stats, nil
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.getValue, s.getRecord, s.upsertValue, s.deleteValue,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
