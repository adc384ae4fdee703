package cli

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/wordlens/internal/config"
	"github.com/runnerr0/wordlens/internal/logging"
	"github.com/runnerr0/wordlens/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// fakeAPI serves the three upstream APIs from one test server.
type fakeAPI struct {
	srv *httptest.Server

	// words are returned by /words when they start with the requested prefix.
	words []string
	// entries maps a word to its dictionaryapi.dev response body.
	entries map[string]string
	// translations maps a word to its translation; missing words echo back.
	translations map[string]string

	mu       sync.Mutex
	prefixes []string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{
		words: []string{"run-fast", "runner", "run fast", "runs", "hello"},
		entries: map[string]string{
			"hello": `[{"word":"hello","phonetics":[{"text":"/həˈloʊ/","audio":"https://example.com/hello.mp3"}],
				"meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"A greeting.","example":"She said hello."}],"synonyms":["greeting"]}]}]`,
			"runner": `[{"word":"runner","meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"One who runs."}]}]}]`,
		},
		translations: map[string]string{"hello": "xin chào", "runner": "người chạy"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/words", func(w http.ResponseWriter, r *http.Request) {
		prefix := strings.TrimSuffix(r.URL.Query().Get("sp"), "*")
		api.mu.Lock()
		api.prefixes = append(api.prefixes, prefix)
		api.mu.Unlock()

		var parts []string
		for i, word := range api.words {
			if strings.HasPrefix(word, prefix) {
				parts = append(parts, fmt.Sprintf(`{"word":%q,"score":%d}`, word, 100-i))
			}
		}
		fmt.Fprintf(w, "[%s]", strings.Join(parts, ","))
	})
	mux.HandleFunc("/entries/en/", func(w http.ResponseWriter, r *http.Request) {
		word := strings.TrimPrefix(r.URL.Path, "/entries/en/")
		body, ok := api.entries[word]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"title":"No Definitions Found"}`))
			return
		}
		w.Write([]byte(body))
	})
	mux.HandleFunc("/get", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		text, ok := api.translations[q]
		if !ok {
			text = q
		}
		fmt.Fprintf(w, `{"responseData":{"translatedText":%q},"responseStatus":200}`, text)
	})

	api.srv = httptest.NewServer(mux)
	t.Cleanup(api.srv.Close)
	return api
}

func (f *fakeAPI) requestedPrefixes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prefixes...)
}

// testConfig returns defaults pointed at the fake API.
func testConfig(api *fakeAPI) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Suggest.BaseURL = api.srv.URL
	cfg.Dictionary.BaseURL = api.srv.URL + "/entries/en"
	cfg.Translate.BaseURL = api.srv.URL
	cfg.Logging.File = ""
	return cfg
}

// openTestDB creates a migrated in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	runner := storage.NewMigrationRunner(db).WithJournalMode("memory")
	require.NoError(t, runner.Run())

	return db
}

// newTestApp builds an app over an in-memory database and the fake API.
func newTestApp(t *testing.T, cfg *config.Config) *app {
	t.Helper()
	a, err := newAppWithDB(cfg, logging.Discard(), openTestDB(t))
	require.NoError(t, err)
	a.dbPath = ":memory:"
	t.Cleanup(func() { a.Close() })
	return a
}

// seedHistory stores a versioned history blob directly.
func seedHistory(t *testing.T, a *app, entriesJSON string) {
	t.Helper()
	blob := fmt.Sprintf(`{"version":1,"entries":%s}`, entriesJSON)
	require.NoError(t, a.store.Set(t.Context(), a.history.Key(), blob))
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
