package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaVersion is the layout version written by this build.
const SchemaVersion = 1

var (
	// ErrMalformed means the stored blob could not be decoded.
	ErrMalformed = errors.New("malformed history blob")
	// ErrUnsupportedVersion means the blob was written by a newer build.
	ErrUnsupportedVersion = errors.New("unsupported history schema version")
)

// document is the persisted layout. Version 0 is the legacy layout: a bare
// JSON array of entries with no envelope.
type document struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// decode parses a stored blob and returns its entries and layout version.
func decode(blob string) ([]Entry, int, error) {
	data := bytes.TrimSpace([]byte(blob))
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("%w: empty", ErrMalformed)
	}

	if data[0] == '[' {
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return entries, 0, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Version < 1 {
		return nil, 0, fmt.Errorf("%w: missing version", ErrMalformed)
	}
	if doc.Version > SchemaVersion {
		return nil, doc.Version, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	return doc.Entries, doc.Version, nil
}

// encode serializes entries in the current layout.
func encode(entries []Entry) (string, error) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(document{Version: SchemaVersion, Entries: entries})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
