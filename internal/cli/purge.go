package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	a, err := newApp(c.globals)
	if err != nil {
		return err
	}
	defer a.Close()

	return c.executeWithApp(a)
}

// executeWithApp runs purge against a provided app (for testing).
func (c *PurgeCommand) executeWithApp(a *app) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	if !c.Force {
		fmt.Println("⚠ WARNING: This will permanently delete your wordlens search history.")
		fmt.Println()
		fmt.Println("This action cannot be undone.")
		fmt.Println()
		fmt.Print(`Type "PURGE" to confirm: `)

		var in io.Reader = os.Stdin
		if c.in != nil {
			in = c.in
		}
		scanner := bufio.NewScanner(in)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		if strings.TrimSpace(scanner.Text()) != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	ctx := context.Background()
	deleted, err := a.store.Delete(ctx, a.history.Key())
	if err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}
	a.log.Info("history purged", "key", a.history.Key(), "existed", deleted)

	if c.globals != nil && c.globals.JSON {
		out := map[string]interface{}{
			"purged":  deleted,
			"key":     a.history.Key(),
			"message": "search history deleted",
		}
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(out)
	}

	if !deleted {
		fmt.Println("No search history to purge.")
		return nil
	}
	fmt.Println("Purged search history.")
	return nil
}
