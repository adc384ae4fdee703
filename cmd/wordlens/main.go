// Command wordlens is a terminal dictionary with live suggestions,
// definitions, phonetics and translation.
package main

import (
	"os"

	"github.com/runnerr0/wordlens/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// The parser prints both flag and command errors before returning them.
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}
