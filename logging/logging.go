// Package logging builds the viewer's zerolog loggers.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a configuration string to a zerolog level. Unknown values select info.
//
// Parameters:
//   - s: one of trace, debug, info, warn, error (case-insensitive)
//
// Returns:
//   - zerolog.Level: the matching level
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a timestamped console logger writing to out at level.
//
// Parameters:
//   - out: console destination
//   - level: minimum level to emit
//   - noColor: disables ANSI colours
//
// Returns:
//   - zerolog.Logger: the logger
func New(out io.Writer, level zerolog.Level, noColor bool) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}).Level(level).With().Timestamp().Logger()
}

// NewWithFile creates a logger that writes coloured output to out and uncoloured output to
// the file at path. An empty path behaves like New.
//
// Parameters:
//   - out: console destination
//   - level: minimum level to emit
//   - path: log file, appended to and created if missing
//
// Returns:
//   - zerolog.Logger: the logger
//   - io.Closer: closes the log file; a no-op closer when path is empty
//   - error: an error if the file cannot be opened
func NewWithFile(out io.Writer, level zerolog.Level, path string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return New(out, level, false), io.NopCloser(nil), nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	mlw := zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339},
		zerolog.ConsoleWriter{Out: file, TimeFormat: time.RFC3339, NoColor: true},
	)
	return zerolog.New(mlw).Level(level).With().Timestamp().Logger(), file, nil
}
