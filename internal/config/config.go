// Package config handles application configuration and setup
package config

import (
	"os"

	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// IsTerminal returns whether the given file is connected to a terminal.
func IsTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// ListingToPipe returns whether the listing is written to stdout while
// stdout is redirected to a file or pipe. Log output would mix with the
// listing in that case.
func ListingToPipe(output string) bool {
	return output == "" && !IsTerminal(os.Stdout)
}
