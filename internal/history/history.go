// Package history keeps the bounded, deduplicated log of words the user
// has looked up.
//
// The whole log lives in one serialized blob under a single key of a
// storage.KV. Every Record reads the blob, prepends the new word if it is
// not already present, and writes the blob back. A word's first lookup
// wins: recording it again changes neither its timestamp nor its position.
package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/runnerr0/wordlens/internal/logging"
	"github.com/runnerr0/wordlens/internal/storage"
)

const (
	// DefaultKey is the storage key the log is persisted under.
	DefaultKey = "searchHistory"
	// DefaultRecentLimit is how many entries the home screen shows.
	DefaultRecentLimit = 5
)

// Entry is one previously looked-up word and when it was first looked up.
type Entry struct {
	Word      string `json:"word"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// Time returns the entry timestamp as a time.Time.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Store records and lists history entries.
type Store struct {
	kv  storage.KV
	key string
	now func() time.Time
	log *log.Logger

	// mu serializes read-modify-write cycles so concurrent Record calls
	// cannot drop each other's entries.
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithKey stores the log under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock overrides the time source used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger persistence failures are reported to.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.log = logger
		}
	}
}

// NewStore creates a Store persisting to kv.
func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:  kv,
		key: DefaultKey,
		now: time.Now,
		log: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "history")
	return s
}

// Key returns the storage key the log is persisted under.
func (s *Store) Key() string {
	return s.key
}

// Record adds word to the log unless it is already there. It reports
// whether a new entry was persisted.
//
// Failures never reach the caller. If the stored log cannot be read or
// decoded the write is abandoned, since the absence of a duplicate cannot
// be confirmed. If the write fails the previous log stays in place.
func (s *Store) Record(ctx context.Context, word string) bool {
	if word == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, version, err := s.load(ctx)
	if err != nil {
		s.log.Error("history read failed, entry not recorded", "word", word, "err", err)
		return false
	}

	for _, e := range entries {
		if e.Word == word {
			s.log.Debug("word already in history", "word", word)
			return false
		}
	}

	updated := make([]Entry, 0, len(entries)+1)
	updated = append(updated, Entry{Word: word, Timestamp: s.now().UnixMilli()})
	updated = append(updated, entries...)

	blob, err := encode(updated)
	if err != nil {
		s.log.Error("history encode failed", "word", word, "err", err)
		return false
	}

	if err := s.kv.Set(ctx, s.key, blob); err != nil {
		s.log.Error("history write failed", "word", word, "err", err)
		return false
	}

	if version < SchemaVersion {
		s.log.Info("history migrated", "from", version, "to", SchemaVersion)
	}
	s.log.Debug("history recorded", "word", word, "entries", len(updated))
	return true
}

// Recent returns at most n entries, most recent first. Entries with equal
// timestamps keep their stored order. A missing or unreadable log is
// reported as empty history.
func (s *Store) Recent(ctx context.Context, n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}

	entries, _, err := s.load(ctx)
	if err != nil {
		s.log.Warn("history unreadable, showing none", "err", err)
		return []Entry{}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Entries returns the whole log in stored order. Unlike Recent it reports
// read and decode errors.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	entries, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// load reads and decodes the stored log. An absent key is an empty log.
func (s *Store) load(ctx context.Context) ([]Entry, int, error) {
	blob, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, SchemaVersion, nil
	}
	return decode(blob)
}
