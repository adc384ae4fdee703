package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/wordlens/internal/suggest"
	"github.com/runnerr0/wordlens/internal/view"
)

// suggestJSON is the JSON output structure for the suggest command.
type suggestJSON struct {
	Prefix  string              `json:"prefix"`
	Results []suggest.Candidate `json:"results"`
}

// Execute implements the go-flags Commander interface for SuggestCommand.
func (c *SuggestCommand) Execute(args []string) error {
	a, err := newApp(c.globals)
	if err != nil {
		return err
	}
	defer a.Close()

	return c.executeWithApp(a)
}

// executeWithApp runs suggest against a provided app (for testing).
func (c *SuggestCommand) executeWithApp(a *app) error {
	ctx := context.Background()

	results, err := a.service.Suggest(ctx, c.Args.Prefix)
	if err != nil {
		return fmt.Errorf("suggest: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(suggestJSON{Prefix: c.Args.Prefix, Results: results})
	}

	if len(results) == 0 {
		fmt.Printf("No suggestions for %q.\n", c.Args.Prefix)
		return nil
	}

	view.NewRenderer(os.Stdout, a.labels).Home(a.home(c.Args.Prefix, suggest.Words(results), nil))
	return nil
}
