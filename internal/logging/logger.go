// Package logging builds the zerolog loggers used for run diagnostics.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Field names shared by all log events.
const (
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldSource    = "source"
	FieldLine      = "line"
)

// Logger is an alias so callers do not need to import zerolog directly.
type Logger = zerolog.Logger

// New creates a logger writing to w at the given level.
// Format is FormatConsole (human readable) or FormatJSON.
func New(level, format string, w io.Writer) (Logger, error) {
	zerologLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	var out io.Writer
	switch format {
	case FormatJSON:
		out = w
	case FormatConsole, "":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (use console or json)", format)
	}

	logger := zerolog.New(out).
		Level(zerologLevel).
		With().
		Timestamp().
		Logger()

	return logger, nil
}

// NewRunID returns a fresh, time-sortable run identifier.
func NewRunID() string {
	return ulid.Make().String()
}

// WithRunID returns a child logger tagged with runID.
func WithRunID(logger Logger, runID string) Logger {
	return logger.With().Str(FieldRunID, runID).Logger()
}
