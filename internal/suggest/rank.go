// Package suggest orders the candidate words returned by a suggestion
// source for display.
//
// Single-token words are shown before compounds (words containing a hyphen
// or a space), and each group is sorted with a locale-aware collator. The
// relevance score supplied by the source takes no part in ordering.
package suggest

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Candidate is one suggested word.
type Candidate struct {
	Word  string `json:"word"`
	Score int    `json:"score,omitempty"`
}

// IsCompound reports whether word contains a hyphen or a space.
func IsCompound(word string) bool {
	return strings.ContainsAny(word, "- ")
}

// Ranker orders candidates using the collation rules of one locale.
// The zero value ranks with the root collation order.
type Ranker struct {
	tag language.Tag
}

// NewRanker returns a Ranker that collates according to tag.
func NewRanker(tag language.Tag) Ranker {
	return Ranker{tag: tag}
}

// Tag returns the locale the ranker collates with.
func (r Ranker) Tag() language.Tag {
	return r.tag
}

// Rank returns a new slice with simple words first, then compound words,
// each group in collation order. Ties keep their input order. The input
// slice is not modified.
func (r Ranker) Rank(candidates []Candidate) []Candidate {
	out := make([]Candidate, len(candidates))
	copy(out, candidates)
	if len(out) < 2 {
		return out
	}

	// A Collator keeps internal buffers and is not safe for concurrent use.
	c := collate.New(r.tag)

	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := IsCompound(out[i].Word), IsCompound(out[j].Word)
		if ci != cj {
			return !ci
		}
		return c.CompareString(out[i].Word, out[j].Word) < 0
	})
	return out
}

// RankWords is Rank for plain strings.
func (r Ranker) RankWords(words []string) []string {
	candidates := make([]Candidate, len(words))
	for i, w := range words {
		candidates[i] = Candidate{Word: w}
	}

	ranked := r.Rank(candidates)

	out := make([]string, len(ranked))
	for i, c := range ranked {
		out[i] = c.Word
	}
	return out
}

var english = NewRanker(language.English)

// Rank orders candidates with English collation.
func Rank(candidates []Candidate) []Candidate {
	return english.Rank(candidates)
}

// RankWords orders words with English collation.
func RankWords(words []string) []string {
	return english.RankWords(words)
}

// Words extracts the word strings from candidates.
func Words(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Word
	}
	return out
}
