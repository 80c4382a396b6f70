// Package logger builds the root structured logger. Components derive named
// sub-loggers from it with Named.
package logger

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// New returns the application logger writing to stderr.
func New(level string, json bool) hclog.Logger {
	return NewWithOutput(level, json, os.Stderr)
}

// NewWithOutput is New with an explicit writer.
func NewWithOutput(level string, json bool, w io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "film-rental-api",
		Level:      lvl,
		Output:     w,
		JSONFormat: json,
	})
}
