package datamuse

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
	"github.com/runnerr0/wordlens/internal/suggest"
)

func TestSuggest_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/words", r.URL.Path)
		assert.Equal(t, "run*", r.URL.Query().Get("sp"))
		assert.Empty(t, r.URL.Query().Get("max"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"word":"run","score":3000},{"word":"run-fast","score":20},{"word":"","score":1},{"word":"runner"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, 5*time.Second, logging.Discard())
	got, err := c.Suggest(context.Background(), "run")
	require.NoError(t, err)
	assert.Equal(t, []suggest.Candidate{
		{Word: "run", Score: 3000},
		{Word: "run-fast", Score: 20},
		{Word: "runner"},
	}, got, "source order is preserved and empty words dropped")
}

func TestSuggest_Max(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("max"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, 25, time.Second, logging.Discard()).Suggest(context.Background(), "a")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSuggest_EmptyPrefixSkipsRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, 0, time.Second, logging.Discard()).Suggest(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, int32(0), calls.Load())
}

func TestSuggest_EscapesPrefix(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ice cr&m*", r.URL.Query().Get("sp"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, time.Second, logging.Discard()).Suggest(context.Background(), "ice cr&m")
	require.NoError(t, err)
}

func TestSuggest_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, time.Second, logging.Discard()).Suggest(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestSuggest_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"word":"not an array"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, time.Second, logging.Discard()).Suggest(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode json")
}

func TestNewClient_DefaultURL(t *testing.T) {
	c := NewClient("", 0, time.Second, logging.Discard())
	assert.Equal(t, defaultBaseURL, c.baseURL)
}
