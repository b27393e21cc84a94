package logging

import (
	"log/slog"
	"time"
)

// Standard attribute keys.
const (
	FieldComponent = "component"
	// FieldRunID identifies one purge run across all of its log lines.
	FieldRunID     = "run_id"
	FieldFile      = "file"
	FieldIteration = "iteration"
	FieldScore     = "score"
	FieldState     = "state"
)

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func String(key string, value string) slog.Attr { return slog.String(key, value) }

// Error keys err under "error". A nil err logs as "<nil>".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with a component attribute. A nil logger
// yields a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}
