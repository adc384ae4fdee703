package storage

import (
	"context"
	"time"
)

// KV is the persistence contract the history store depends on: a single
// string value per key, with each Set replacing the whole value atomically.
type KV interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been set or was deleted.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Record is one stored key with its metadata.
type Record struct {
	Key       string
	Value     string
	ByteSize  int64
	UpdatedAt time.Time
}

// Stats holds aggregate statistics about the wordlens database.
type Stats struct {
	TotalKeys     int64
	TotalBytes    int64
	LastUpdated   time.Time
	SchemaVersion int
}
