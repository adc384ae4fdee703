package freedict

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/wordlens/internal/logging"
)

func newTestProvider(url string) *Provider {
	return NewProviderWithURL(url, 5*time.Second, logging.Discard())
}

func TestProvider_FetchEntry_Success(t *testing.T) {
	t.Parallel()

	body := `[{
		"word": "hello",
		"phonetics": [
			{"text": "/həˈloʊ/", "audio": ""},
			{"text": "/hɛˈləʊ/", "audio": "https://example.com/hello-uk.mp3"}
		],
		"meanings": [
			{
				"partOfSpeech": "noun",
				"definitions": [
					{"definition": "A greeting.", "example": "She gave a cheerful hello."}
				],
				"synonyms": ["greeting"],
				"antonyms": ["goodbye"]
			},
			{
				"partOfSpeech": "interjection",
				"definitions": [
					{"definition": "Used as a greeting."},
					{"definition": "Used to attract attention.", "example": ""}
				]
			}
		]
	},
	{"word": "hello", "meanings": [{"partOfSpeech": "verb", "definitions": [{"definition": "ignored"}]}]}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hello", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	result, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "hello")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "hello", result.Word)
	assert.Equal(t, "/həˈloʊ/", result.Pronunciation, "first phonetic text")
	assert.Equal(t, "https://example.com/hello-uk.mp3", result.AudioURL, "first non-empty audio")

	require.Len(t, result.Meanings, 2, "only the first entry is used")

	noun := result.Meanings[0]
	assert.Equal(t, "noun", noun.PartOfSpeech)
	require.Len(t, noun.Definitions, 1)
	assert.Equal(t, "A greeting.", noun.Definitions[0].Definition)
	assert.Equal(t, "She gave a cheerful hello.", noun.Definitions[0].Example)
	assert.Equal(t, []string{"greeting"}, noun.Synonyms)
	assert.Equal(t, []string{"goodbye"}, noun.Antonyms)

	interj := result.Meanings[1]
	require.Len(t, interj.Definitions, 2)
	assert.Empty(t, interj.Definitions[0].Example)
	assert.Empty(t, interj.Synonyms)
}

func TestProvider_FetchEntry_MissingPhonetics(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"word":"run","phonetic":"/ɹʌn/","meanings":[{"partOfSpeech":"verb","definitions":[{"definition":"To move swiftly."}]}]}]`))
	}))
	defer srv.Close()

	result, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "run")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "/ɹʌn/", result.Pronunciation, "falls back to entry-level phonetic")
	assert.Empty(t, result.AudioURL)
	require.Len(t, result.Meanings, 1)
}

func TestProvider_FetchEntry_NoPronunciationAtAll(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"word":"zyzzyva","phonetics":[{}],"meanings":[]}]`))
	}))
	defer srv.Close()

	result, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "zyzzyva")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Pronunciation)
	assert.Empty(t, result.AudioURL)
	assert.NotNil(t, result.Meanings)
	assert.Empty(t, result.Meanings)
}

func TestProvider_FetchEntry_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title":"No Definitions Found"}`))
	}))
	defer srv.Close()

	result, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "asdfxyz")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestProvider_FetchEntry_EmptyArray(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	result, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestProvider_FetchEntry_ServerErrorNoRetry(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	result, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
	assert.Nil(t, result)
	assert.Equal(t, int32(1), callCount.Load(), "a failed request is not retried")
}

func TestProvider_FetchEntry_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode json")
}

func TestProvider_FetchEntry_EscapesWord(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ice cream", r.URL.Path)
		assert.Equal(t, "/ice%20cream", r.URL.EscapedPath())
		w.Write([]byte(`[{"word":"ice cream","meanings":[]}]`))
	}))
	defer srv.Close()

	result, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "ice cream")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "ice cream", result.Word)
}

func TestProvider_FetchEntry_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestProvider(srv.URL).FetchEntry(ctx, "test")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewProvider_DefaultURL(t *testing.T) {
	p := NewProvider(logging.Discard())
	assert.Equal(t, defaultBaseURL, p.baseURL)

	p = NewProviderWithURL("", time.Second, logging.Discard())
	assert.Equal(t, defaultBaseURL, p.baseURL)

	p = NewProviderWithURL("http://localhost:1234/", time.Second, logging.Discard())
	assert.Equal(t, "http://localhost:1234", p.baseURL)
}
