package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/runnerr0/wordlens/internal/history"
)

// historyEntryJSON is one row of the history command's JSON output.
type historyEntryJSON struct {
	Word      string `json:"word"`
	Timestamp int64  `json:"timestamp"`
	Time      string `json:"time"`
}

// entrySource adapts history entries to fuzzy.Source.
type entrySource []history.Entry

func (s entrySource) String(i int) string { return s[i].Word }
func (s entrySource) Len() int            { return len(s) }

// Execute implements the go-flags Commander interface for HistoryCommand.
func (c *HistoryCommand) Execute(args []string) error {
	a, err := newApp(c.globals)
	if err != nil {
		return err
	}
	defer a.Close()

	return c.executeWithApp(a)
}

// executeWithApp runs history against a provided app (for testing).
func (c *HistoryCommand) executeWithApp(a *app) error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	ctx := context.Background()
	limit := a.recentLimit(c.Limit)

	var entries []history.Entry
	if c.Filter == "" {
		entries = a.history.Recent(ctx, limit)
	} else {
		entries = filterEntries(a.history.Recent(ctx, math.MaxInt), c.Filter, limit)
	}

	if c.globals != nil && c.globals.JSON {
		out := make([]historyEntryJSON, len(entries))
		for i, e := range entries {
			out[i] = historyEntryJSON{
				Word:      e.Word,
				Timestamp: e.Timestamp,
				Time:      e.Time().UTC().Format(time.RFC3339),
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(entries) == 0 {
		fmt.Println("No search history.")
		return nil
	}

	fmt.Println(a.labels.History)
	now := time.Now()
	for i, e := range entries {
		fmt.Printf("%3d. %-24s %s\n", i+1, e.Word, formatAge(now, e.Time()))
	}
	return nil
}

// filterEntries keeps the entries whose word fuzzy-matches pattern, best
// match first, at most limit of them.
func filterEntries(entries []history.Entry, pattern string, limit int) []history.Entry {
	matches := fuzzy.FindFrom(pattern, entrySource(entries))
	out := make([]history.Entry, 0, min(len(matches), limit))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, entries[m.Index])
	}
	return out
}
