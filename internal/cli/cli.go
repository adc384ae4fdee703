package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Suggest     *SuggestCommand
	Define      *DefineCommand
	History     *HistoryCommand
	Popular     *PopularCommand
	Status      *StatusCommand
	Purge       *PurgeCommand
	Interactive *InteractiveCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "wordlens"
	parser.LongDescription = "Terminal dictionary: live suggestions, definitions, phonetics and translation."

	cmds := &commands{
		Suggest:     &SuggestCommand{globals: &globals, version: version},
		Define:      &DefineCommand{globals: &globals, version: version},
		History:     &HistoryCommand{globals: &globals, version: version},
		Popular:     &PopularCommand{globals: &globals, version: version},
		Status:      &StatusCommand{globals: &globals, version: version},
		Purge:       &PurgeCommand{globals: &globals, version: version},
		Interactive: &InteractiveCommand{globals: &globals, version: version},
	}

	parser.AddCommand("suggest", "Suggest words for a prefix", "Fetch word suggestions for a prefix, simple words first.", cmds.Suggest)
	parser.AddCommand("define", "Look up a word", "Show definitions, phonetics, audio and translation for a word.", cmds.Define)
	parser.AddCommand("history", "List recent lookups", "List recently looked-up words, newest first.", cmds.History)
	parser.AddCommand("popular", "List popular words", "List the configured popular lookups.", cmds.Popular)
	parser.AddCommand("status", "Show database statistics", "Show database statistics and configuration summary.", cmds.Status)
	parser.AddCommand("purge", "Delete search history", "Delete the stored search history. Destructive operation with safety prompt.", cmds.Purge)
	parser.AddCommand("interactive", "Start a type-ahead session", "Type a prefix to get suggestions, :N to open a row, an empty line to clear, :q to quit.", cmds.Interactive)

	return parser, &globals, cmds
}

// Run is the main entry point for the wordlens CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("wordlens %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
