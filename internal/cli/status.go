package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string `json:"version"`
	ConfigPath        string `json:"config_path,omitempty"`
	DatabasePath      string `json:"database_path"`
	DatabaseSizeBytes int64  `json:"database_size_bytes"`
	LogPath           string `json:"log_path,omitempty"`
	SchemaVersion     int    `json:"schema_version"`
	StoredKeys        int64  `json:"stored_keys"`
	StoredBytes       int64  `json:"stored_bytes"`
	LastUpdated       string `json:"last_updated,omitempty"`
	HistoryKey        string `json:"history_key"`
	HistoryEntries    int    `json:"history_entries"`
	HistoryReadable   bool   `json:"history_readable"`
	Locale            string `json:"locale"`
	LangPair          string `json:"langpair"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	a, err := newApp(c.globals)
	if err != nil {
		return err
	}
	defer a.Close()

	return c.executeWithApp(a)
}

// executeWithApp runs status against a provided app (for testing).
func (c *StatusCommand) executeWithApp(a *app) error {
	ctx := context.Background()

	stats, err := a.store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	entries, histErr := a.history.Entries(ctx)
	if histErr != nil {
		a.log.Warn("history unreadable", "err", histErr)
	}

	out := statusJSON{
		Version:           c.version,
		ConfigPath:        a.configPath,
		DatabasePath:      a.dbPath,
		DatabaseSizeBytes: getDatabaseSize(a.db, a.dbPath),
		LogPath:           a.logPath,
		SchemaVersion:     stats.SchemaVersion,
		StoredKeys:        stats.TotalKeys,
		StoredBytes:       stats.TotalBytes,
		HistoryKey:        a.history.Key(),
		HistoryEntries:    len(entries),
		HistoryReadable:   histErr == nil,
		Locale:            a.cfg.Suggest.Locale,
		LangPair:          a.cfg.Translate.Source + "|" + a.cfg.Translate.Target,
	}
	if !stats.LastUpdated.IsZero() {
		out.LastUpdated = stats.LastUpdated.UTC().Format(time.RFC3339)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return c.printStatusHuman(out, stats.LastUpdated)
}

func (c *StatusCommand) printStatusHuman(s statusJSON, lastUpdated time.Time) error {
	fmt.Println("Wordlens Status")
	fmt.Println("===============")
	fmt.Printf("Version:       %s\n", s.Version)
	if s.ConfigPath != "" {
		fmt.Printf("Config:        %s\n", s.ConfigPath)
	}
	fmt.Printf("Database:      %s (%s)\n", s.DatabasePath, formatBytes(s.DatabaseSizeBytes))
	fmt.Printf("Schema:        v%d\n", s.SchemaVersion)
	if s.LogPath != "" {
		fmt.Printf("Log:           %s\n", s.LogPath)
	} else {
		fmt.Println("Log:           stderr")
	}

	fmt.Println()
	if s.HistoryReadable {
		fmt.Printf("History:       %d entries (key %q)\n", s.HistoryEntries, s.HistoryKey)
	} else {
		fmt.Printf("History:       unreadable (key %q)\n", s.HistoryKey)
	}
	fmt.Printf("Stored:        %d keys, %s\n", s.StoredKeys, formatBytes(s.StoredBytes))
	if !lastUpdated.IsZero() {
		fmt.Printf("Last update:   %s (%s)\n", lastUpdated.Local().Format("2006-01-02 15:04"), formatAge(time.Now(), lastUpdated))
	}

	fmt.Println()
	fmt.Printf("Locale:        %s\n", s.Locale)
	fmt.Printf("Translation:   %s\n", s.LangPair)
	return nil
}

// getDatabaseSize returns the database file size in bytes.
// For on-disk databases, it uses os.Stat. For in-memory databases,
// it queries page_count * page_size.
func getDatabaseSize(db *sql.DB, dbPath string) int64 {
	if info, err := os.Stat(dbPath); err == nil {
		return info.Size()
	}

	var pageCount, pageSize int64
	if err := db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0
	}
	if err := db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0
	}
	return pageCount * pageSize
}
