package cli

import "io"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	DBPath  string `long:"db-path" description:"Override the SQLite database path"`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// SuggestCommand prints ranked suggestions for a prefix.
type SuggestCommand struct {
	Args struct {
		Prefix string `positional-arg-name:"prefix" required:"yes"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}

// DefineCommand looks up a word, recording it in history first.
type DefineCommand struct {
	NoHistory bool `long:"no-history" description:"Do not record the word in search history"`

	Args struct {
		Word string `positional-arg-name:"word" required:"yes"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}

// HistoryCommand lists recent lookups.
type HistoryCommand struct {
	Limit  int    `long:"limit" description:"Maximum entries (0 uses history.recent_limit)" default:"0"`
	Filter string `long:"filter" description:"Fuzzy-match words against a pattern"`

	globals *GlobalFlags
	version string
}

// PopularCommand lists the configured popular words.
type PopularCommand struct {
	globals *GlobalFlags
	version string
}

// StatusCommand shows database statistics and a configuration summary.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// PurgeCommand deletes the stored search history after confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	in      io.Reader // confirmation input; nil means stdin
}

// InteractiveCommand runs the type-ahead lookup session.
type InteractiveCommand struct {
	globals *GlobalFlags
	version string
	in      io.Reader // nil means stdin
	out     io.Writer // nil means stdout
}
