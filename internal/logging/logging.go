// Package logging builds the charmbracelet/log loggers used across wordlens.
// Operational messages go to a rotating file so stdout stays reserved for
// command output.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/runnerr0/wordlens/internal/config"
)

const bytesPerMegabyte = 1 << 20

// Options controls how New builds the logger.
type Options struct {
	// Path is the log file. Empty means stderr.
	Path string
	// Verbose forces debug level regardless of the configured level.
	Verbose bool
}

// New creates the root logger from cfg. The returned closer flushes and
// closes the log file; it is a no-op for stderr.
func New(cfg config.LoggingConfig, opts Options) (*log.Logger, io.Closer, error) {
	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, nil, err
		}
		rotating := &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    maxSizeMB(cfg.MaxSize),
			MaxBackups: cfg.MaxBackups,
		}
		w = rotating
		closer = rotating
	}

	level := ParseLevel(cfg.Level)
	if opts.Verbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    level == log.DebugLevel,
		Formatter:       formatter(cfg.Format),
	})

	return logger, closer, nil
}

// Discard returns a logger that drops everything. Used by tests and by
// components constructed without a logger.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel maps a config level name to a log.Level, defaulting to info.
func ParseLevel(s string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func formatter(name string) log.Formatter {
	switch strings.ToLower(name) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// maxSizeMB converts the configured byte size into lumberjack's megabytes,
// rounding up so small limits still rotate.
func maxSizeMB(bytes int) int {
	if bytes <= 0 {
		return 0
	}
	return (bytes + bytesPerMegabyte - 1) / bytesPerMegabyte
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
