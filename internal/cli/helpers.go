package cli

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/text/language"

	"github.com/runnerr0/wordlens/internal/config"
	"github.com/runnerr0/wordlens/internal/history"
	"github.com/runnerr0/wordlens/internal/logging"
	"github.com/runnerr0/wordlens/internal/lookup"
	"github.com/runnerr0/wordlens/internal/provider/datamuse"
	"github.com/runnerr0/wordlens/internal/provider/freedict"
	"github.com/runnerr0/wordlens/internal/provider/mymemory"
	"github.com/runnerr0/wordlens/internal/storage"
	"github.com/runnerr0/wordlens/internal/suggest"
	"github.com/runnerr0/wordlens/internal/view"
)

// app is everything a command needs, built once per invocation.
type app struct {
	cfg        *config.Config
	configPath string
	dbPath     string
	logPath    string

	log     *log.Logger
	db      *sql.DB
	store   *storage.SQLiteStore
	history *history.Store
	service *lookup.Service
	labels  view.Labels

	closers []io.Closer
}

// newApp loads configuration, sets up logging and opens the database.
func newApp(globals *GlobalFlags) (*app, error) {
	cfg, cfgPath, err := loadConfig(globals.Config)
	if err != nil {
		return nil, err
	}

	dbPath := globals.DBPath
	if dbPath != "" {
		dbPath, err = config.ExpandPath(dbPath)
	} else {
		dbPath, err = cfg.DatabasePath()
	}
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	logger, logCloser, err := logging.New(cfg.Logging, logging.Options{Path: logPath, Verbose: globals.Verbose})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	logger = logger.With("session", uuid.NewString())

	db, err := openDB(dbPath, cfg.Storage.SQLiteJournalMode)
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	a, err := newAppWithDB(cfg, logger, db)
	if err != nil {
		db.Close()
		logCloser.Close()
		return nil, err
	}
	a.configPath = cfgPath
	a.dbPath = dbPath
	a.logPath = logPath
	a.closers = append(a.closers, db, logCloser)

	logger.Debug("app ready", "config", cfgPath, "db", dbPath)
	return a, nil
}

// newAppWithDB wires the store, providers and services over an already
// migrated database. The caller owns db.
func newAppWithDB(cfg *config.Config, logger *log.Logger, db *sql.DB) (*app, error) {
	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	tag, err := language.Parse(cfg.Suggest.Locale)
	if err != nil {
		tag = language.English
	}

	suggester := datamuse.NewClient(cfg.Suggest.BaseURL, cfg.Suggest.Max, seconds(cfg.Suggest.TimeoutSeconds), logger)
	dictionary := freedict.NewProviderWithURL(cfg.Dictionary.BaseURL, seconds(cfg.Dictionary.TimeoutSeconds), logger)
	translator := mymemory.NewProvider(cfg.Translate.BaseURL, cfg.Translate.Source, cfg.Translate.Target,
		seconds(cfg.Translate.TimeoutSeconds), logger)

	return &app{
		cfg:     cfg,
		log:     logger,
		db:      db,
		store:   store,
		history: history.NewStore(store, history.WithKey(cfg.History.Key), history.WithLogger(logger)),
		service: lookup.NewService(suggester, dictionary, translator, suggest.NewRanker(tag), logger),
		labels:  view.LabelsFor(cfg.Translate.Target),
		closers: []io.Closer{store},
	}, nil
}

// Close releases the store, database and log file in that order.
func (a *app) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// recentLimit returns n, or the configured limit when n is zero.
func (a *app) recentLimit(n int) int {
	if n > 0 {
		return n
	}
	return a.cfg.History.RecentLimit
}

// home builds the home snapshot for the current query and results.
func (a *app) home(query string, results []string, recent []history.Entry) view.Home {
	return view.Home{
		Query:   query,
		Results: results,
		History: recent,
		Popular: a.cfg.PopularWords,
	}
}

// loadConfig reads the config at path, or the default location (created on
// first run) when path is empty.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		expanded, err := config.ExpandPath(config.DefaultConfigPath)
		if err != nil {
			return nil, "", err
		}
		cfg, err := config.LoadOrCreateAt(expanded)
		if err != nil {
			return nil, "", fmt.Errorf("load config: %w", err)
		}
		return cfg, expanded, nil
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(expanded)
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}
	return cfg, expanded, nil
}

// openDB opens the SQLite database at dbPath and runs migrations.
func openDB(dbPath, journalMode string) (*sql.DB, error) {
	if dbPath != ":memory:" && !strings.HasPrefix(dbPath, "file:") {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every :memory: connection is its own database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	runner := storage.NewMigrationRunner(db).WithJournalMode(journalMode)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatAge formats how long ago t was, like "3 days ago".
func formatAge(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour") + " ago"
	default:
		return plural(int(d.Hours()/24), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
