// Package lookup coordinates the suggestion, dictionary and translation
// sources behind the two operations the UI needs: suggest a prefix and look
// up a selected word.
package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/runnerr0/wordlens/internal/logging"
	"github.com/runnerr0/wordlens/internal/provider"
	"github.com/runnerr0/wordlens/internal/suggest"
)

// ErrNoResult is returned by Lookup for every fetch failure. A missing word,
// a network error and a translation quota error all look the same to the
// user; the cause stays wrapped for logging.
var ErrNoResult = errors.New("no result found")

// ErrNotFound is the cause wrapped in ErrNoResult when the dictionary has no
// entry for the word.
var ErrNotFound = errors.New("word not in dictionary")

// Suggester returns raw candidates for a prefix.
type Suggester interface {
	Suggest(ctx context.Context, prefix string) ([]suggest.Candidate, error)
}

// Dictionary fetches a dictionary entry; nil, nil means the word is unknown.
type Dictionary interface {
	FetchEntry(ctx context.Context, word string) (*provider.Entry, error)
}

// Translator translates a word into the configured target language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Detail is everything the detail view shows for a word.
type Detail struct {
	provider.Entry
	Translation string `json:"translation"`
}

// Service combines the sources. All fields are required.
type Service struct {
	suggester  Suggester
	dictionary Dictionary
	translator Translator
	ranker     suggest.Ranker
	log        *log.Logger
}

// NewService creates a Service. A nil logger discards output.
func NewService(s Suggester, d Dictionary, t Translator, ranker suggest.Ranker, logger *log.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		suggester:  s,
		dictionary: d,
		translator: t,
		ranker:     ranker,
		log:        logger.With("component", "lookup"),
	}
}

// Suggest fetches candidates for prefix and returns them ranked.
func (s *Service) Suggest(ctx context.Context, prefix string) ([]suggest.Candidate, error) {
	candidates, err := s.suggester.Suggest(ctx, prefix)
	if err != nil {
		s.log.Warn("suggest failed", "prefix", prefix, "err", err)
		return nil, err
	}
	return s.ranker.Rank(candidates), nil
}

// Lookup fetches the dictionary entry and translation for word in parallel.
// Any failure of either fetch yields an error wrapping ErrNoResult.
func (s *Service) Lookup(ctx context.Context, word string) (*Detail, error) {
	var (
		entry       *provider.Entry
		translation string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := s.dictionary.FetchEntry(gctx, word)
		if err != nil {
			return err
		}
		if e == nil {
			return ErrNotFound
		}
		entry = e
		return nil
	})
	g.Go(func() error {
		t, err := s.translator.Translate(gctx, word)
		if err != nil {
			return err
		}
		translation = t
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Info("lookup failed", "word", word, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrNoResult, err)
	}

	s.log.Debug("lookup complete", "word", word, "meanings", len(entry.Meanings))
	return &Detail{Entry: *entry, Translation: translation}, nil
}
