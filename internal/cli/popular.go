package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/wordlens/internal/view"
)

// Execute implements the go-flags Commander interface for PopularCommand.
// It only needs configuration, so no database is opened.
func (c *PopularCommand) Execute(args []string) error {
	cfg, _, err := loadConfig(c.globals.Config)
	if err != nil {
		return err
	}
	return c.executeWithWords(cfg.PopularWords, view.LabelsFor(cfg.Translate.Target))
}

// executeWithWords prints words as the popular list (for testing).
func (c *PopularCommand) executeWithWords(words []string, labels view.Labels) error {
	if c.globals != nil && c.globals.JSON {
		if words == nil {
			words = []string{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(words)
	}

	if len(words) == 0 {
		fmt.Println("No popular words configured.")
		return nil
	}

	view.NewRenderer(os.Stdout, labels).Home(view.Home{Popular: words})
	return nil
}
