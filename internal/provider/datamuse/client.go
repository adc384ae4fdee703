// Package datamuse fetches word suggestions for a prefix from the Datamuse API.
package datamuse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/runnerr0/wordlens/internal/suggest"
)

const defaultBaseURL = "https://api.datamuse.com"

// apiWord is one element of the /words response array.
type apiWord struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// Client queries Datamuse's /words endpoint with a spelled-like pattern.
type Client struct {
	baseURL    string
	max        int
	httpClient *http.Client
	log        *log.Logger
}

// NewClient creates a Client. An empty baseURL selects the public API;
// max caps the number of suggestions requested (0 leaves the API default).
func NewClient(baseURL string, max int, timeout time.Duration, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		max:        max,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "datamuse"),
	}
}

// Suggest returns the words starting with prefix, in the order the API
// returned them. An empty prefix returns no candidates without a request.
func (c *Client) Suggest(ctx context.Context, prefix string) ([]suggest.Candidate, error) {
	if prefix == "" {
		return []suggest.Candidate{}, nil
	}

	q := url.Values{}
	q.Set("sp", prefix+"*")
	if c.max > 0 {
		q.Set("max", strconv.Itoa(c.max))
	}
	reqURL := c.baseURL + "/words?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("datamuse: create request: %w", err)
	}

	c.log.Debug("datamuse request", "prefix", prefix)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datamuse: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datamuse: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("datamuse: read body: %w", err)
	}

	var words []apiWord
	if err := json.Unmarshal(body, &words); err != nil {
		return nil, fmt.Errorf("datamuse: decode json: %w", err)
	}

	out := make([]suggest.Candidate, 0, len(words))
	for _, w := range words {
		if w.Word == "" {
			continue
		}
		out = append(out, suggest.Candidate{Word: w.Word, Score: w.Score})
	}

	c.log.Debug("datamuse response", "prefix", prefix, "candidates", len(out))
	return out, nil
}
