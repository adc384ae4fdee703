package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

var journalModes = map[string]bool{
	"delete":   true,
	"truncate": true,
	"persist":  true,
	"memory":   true,
	"wal":      true,
	"off":      true,
}

var logFormats = map[string]bool{
	"text":   true,
	"json":   true,
	"logfmt": true,
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.History.Key == "" {
		errs = append(errs, errors.New("history.key must not be empty"))
	}
	if c.History.RecentLimit < 0 {
		errs = append(errs, fmt.Errorf("history.recent_limit must be >= 0, got %d", c.History.RecentLimit))
	}

	if c.Suggest.BaseURL == "" {
		errs = append(errs, errors.New("suggest.base_url must not be empty"))
	}
	if _, err := language.Parse(c.Suggest.Locale); err != nil {
		errs = append(errs, fmt.Errorf("suggest.locale %q: %w", c.Suggest.Locale, err))
	}
	if c.Suggest.Max < 0 {
		errs = append(errs, fmt.Errorf("suggest.max must be >= 0, got %d", c.Suggest.Max))
	}
	if c.Suggest.DebounceMillis < 0 {
		errs = append(errs, fmt.Errorf("suggest.debounce_ms must be >= 0, got %d", c.Suggest.DebounceMillis))
	}

	if c.Dictionary.BaseURL == "" {
		errs = append(errs, errors.New("dictionary.base_url must not be empty"))
	}
	if c.Translate.BaseURL == "" {
		errs = append(errs, errors.New("translate.base_url must not be empty"))
	}
	if c.Translate.Source == "" || c.Translate.Target == "" {
		errs = append(errs, errors.New("translate.source and translate.target must not be empty"))
	}

	if !journalModes[strings.ToLower(c.Storage.SQLiteJournalMode)] {
		errs = append(errs, fmt.Errorf("storage.sqlite_journal_mode %q is not a SQLite journal mode", c.Storage.SQLiteJournalMode))
	}
	if c.Storage.SQLiteFile == "" {
		errs = append(errs, errors.New("storage.sqlite_file must not be empty"))
	}

	if !logFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Errorf("logging.format %q must be text, json or logfmt", c.Logging.Format))
	}
	if c.Logging.MaxSize < 0 || c.Logging.MaxBackups < 0 {
		errs = append(errs, errors.New("logging.max_size and logging.max_backups must be >= 0"))
	}

	return errors.Join(errs...)
}
