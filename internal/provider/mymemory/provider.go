// Package mymemory translates words with the MyMemory translation API.
package mymemory

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://api.mymemory.translated.net"

// Provider translates text between one fixed language pair.
type Provider struct {
	baseURL    string
	source     string
	target     string
	httpClient *http.Client
	log        *log.Logger
}

// NewProvider creates a Provider translating from source to target
// (ISO language codes such as "en" and "vi"). An empty baseURL selects the
// public API.
func NewProvider(baseURL, source, target string, timeout time.Duration, logger *log.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		source:     source,
		target:     target,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "mymemory"),
	}
}

// LangPair returns the pair in MyMemory's "src|dst" notation.
func (p *Provider) LangPair() string {
	return p.source + "|" + p.target
}

// Target returns the target language code.
func (p *Provider) Target() string {
	return p.target
}

// Translate returns the machine translation of text.
func (p *Provider) Translate(ctx context.Context, text string) (string, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", p.LangPair())
	reqURL := p.baseURL + "/get?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("mymemory: create request: %w", err)
	}

	p.log.Debug("mymemory request", "text", text, "langpair", p.LangPair())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mymemory: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mymemory: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("mymemory: read body: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("mymemory: invalid json")
	}

	// MyMemory reports quota and language errors in the body with HTTP 200.
	if status := gjson.GetBytes(body, "responseStatus"); status.Exists() && status.Int() != http.StatusOK {
		details := gjson.GetBytes(body, "responseDetails").String()
		return "", fmt.Errorf("mymemory: status %d: %s", status.Int(), details)
	}

	translated := gjson.GetBytes(body, "responseData.translatedText")
	if !translated.Exists() || translated.Type != gjson.String {
		return "", fmt.Errorf("mymemory: response has no translatedText")
	}

	p.log.Debug("mymemory response", "text", text, "match", gjson.GetBytes(body, "responseData.match").Float())
	return translated.String(), nil
}
