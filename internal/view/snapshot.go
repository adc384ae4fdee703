// Package view holds the immutable screen snapshots and renders them as
// text. Snapshots are built by the caller from fresh data on every change;
// nothing here keeps state between renders.
package view

import (
	"github.com/runnerr0/wordlens/internal/history"
	"github.com/runnerr0/wordlens/internal/lookup"
)

// MaxRelated caps the synonyms and antonyms shown per meaning.
const MaxRelated = 15

// Item is one selectable row on the home screen.
type Item struct {
	Word   string `json:"word"`
	Source Source `json:"source"`
}

// Source tells which list an Item came from.
type Source string

const (
	SourceSuggestion Source = "suggestion"
	SourceHistory    Source = "history"
	SourcePopular    Source = "popular"
)

// Home is the search screen. When Results is non-empty only the results
// are shown; otherwise history and popular words.
type Home struct {
	Query   string          `json:"query"`
	Results []string        `json:"results"`
	History []history.Entry `json:"history"`
	Popular []string        `json:"popular"`
}

// Selectable returns the visible rows in display order. Row i is shown as
// number i+1.
func (h Home) Selectable() []Item {
	if len(h.Results) > 0 {
		items := make([]Item, 0, len(h.Results))
		for _, w := range h.Results {
			items = append(items, Item{Word: w, Source: SourceSuggestion})
		}
		return items
	}

	items := make([]Item, 0, len(h.History)+len(h.Popular))
	for _, e := range h.History {
		items = append(items, Item{Word: e.Word, Source: SourceHistory})
	}
	for _, w := range h.Popular {
		items = append(items, Item{Word: w, Source: SourcePopular})
	}
	return items
}

// State is the lifecycle of a detail screen.
type State int

const (
	StateLoading State = iota
	StateFailed
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateFailed:
		return "failed"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name in JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Detail is the word screen. Detail is set only in StateLoaded.
type Detail struct {
	Word   string         `json:"word"`
	State  State          `json:"state"`
	Detail *lookup.Detail `json:"detail,omitempty"`
}

// Loading returns the snapshot shown while word is being fetched.
func Loading(word string) Detail {
	return Detail{Word: word, State: StateLoading}
}

// FromLookup builds the snapshot for a finished lookup.
func FromLookup(word string, d *lookup.Detail, err error) Detail {
	if err != nil || d == nil {
		return Detail{Word: word, State: StateFailed}
	}
	return Detail{Word: word, State: StateLoaded, Detail: d}
}
