// Package logger builds the zerolog loggers used by the region feature
// binaries. Output always goes to the given writer, normally stderr, because
// stdout carries the MCP protocol or the result tables.
package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// ParseLevel converts a level name to a zerolog level. Empty or unknown
// names yield info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "trace":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a JSON logger writing to w at the given level, with timestamps
// and a component field.
func New(w io.Writer, level zerolog.Level, component string) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

// NewConsole is like New but writes human readable lines.
func NewConsole(w io.Writer, level zerolog.Level, component string) zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: w, NoColor: true}, level, component)
}
