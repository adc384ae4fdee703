package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/runnerr0/wordlens/internal/provider"
)

const defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// Provider fetches dictionary data from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *log.Logger
}

// NewProvider creates a Provider with the default FreeDictionary API URL.
func NewProvider(logger *log.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, 10*time.Second, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL and timeout.
// An empty baseURL selects the public API.
func NewProviderWithURL(baseURL string, timeout time.Duration, logger *log.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "freedict"),
	}
}

// FetchEntry fetches the dictionary entry for word.
// Returns nil, nil if the word is not found (HTTP 404).
func (p *Provider) FetchEntry(ctx context.Context, word string) (*provider.Entry, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.Debug("freedict request", "word", word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("freedict: create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.Error("freedict request failed", "word", word, "err", err)
		return nil, fmt.Errorf("freedict: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("freedict: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("freedict: read body: %w", err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("freedict: decode json: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	result := mapAPIEntry(entries[0])

	p.log.Debug("freedict response",
		"word", word,
		"meanings", len(result.Meanings),
		"audio", result.AudioURL != "",
	)

	return result, nil
}

// mapAPIEntry converts the first API entry into a provider.Entry. Later
// entries (other etymologies) are not shown.
func mapAPIEntry(entry apiEntry) *provider.Entry {
	result := &provider.Entry{
		Word:     entry.Word,
		Meanings: []provider.Meaning{},
	}

	for _, ph := range entry.Phonetics {
		if result.Pronunciation == "" && ph.Text != "" {
			result.Pronunciation = ph.Text
		}
		if result.AudioURL == "" && ph.Audio != "" {
			result.AudioURL = ph.Audio
		}
	}
	if result.Pronunciation == "" {
		result.Pronunciation = entry.Phonetic
	}

	for _, m := range entry.Meanings {
		meaning := provider.Meaning{
			PartOfSpeech: m.PartOfSpeech,
			Definitions:  make([]provider.Definition, 0, len(m.Definitions)),
			Synonyms:     m.Synonyms,
			Antonyms:     m.Antonyms,
		}
		for _, d := range m.Definitions {
			if d.Definition == "" {
				continue
			}
			meaning.Definitions = append(meaning.Definitions, provider.Definition{
				Definition: d.Definition,
				Example:    d.Example,
			})
		}
		result.Meanings = append(result.Meanings, meaning)
	}

	return result
}
