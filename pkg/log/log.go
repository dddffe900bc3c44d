// Package log provides structured logging for machine learning operations
// built on zerolog. Loggers carry a component name and use the standard
// attribute keys defined in attributes.go so that training runs, metric
// computations and sweeps can be filtered and analysed consistently.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var root = zerolog.New(os.Stderr).With().Timestamp().Logger()

// SetOutput redirects all loggers created afterwards to w.
func SetOutput(w io.Writer) {
	root = zerolog.New(w).With().Timestamp().Logger()
}

// SetConsole switches to human-readable console output, as used by the CLI.
func SetConsole() {
	root = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

// SetLevel sets the global logging level.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// GetLogger returns the root logger.
func GetLogger() zerolog.Logger {
	return root
}

// GetLoggerWithName returns a logger tagged with a component name,
// typically the model or package performing the operation.
func GetLoggerWithName(name string) zerolog.Logger {
	return root.With().Str(ComponentKey, name).Logger()
}
