package cli

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/runnerr0/wordlens/internal/view"
)

// Execute implements the go-flags Commander interface for DefineCommand.
func (c *DefineCommand) Execute(args []string) error {
	a, err := newApp(c.globals)
	if err != nil {
		return err
	}
	defer a.Close()

	return c.executeWithApp(a)
}

// executeWithApp runs define against a provided app (for testing).
//
// A failed lookup is rendered as the not-found screen and is not an error.
func (c *DefineCommand) executeWithApp(a *app) error {
	ctx := context.Background()
	word := strings.TrimSpace(c.Args.Word)

	if !c.NoHistory {
		a.history.Record(ctx, word)
	}

	detail, err := a.service.Lookup(ctx, word)
	snap := view.FromLookup(word, detail, err)

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	view.NewRenderer(os.Stdout, a.labels).Detail(snap)
	return nil
}
