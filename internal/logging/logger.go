package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"textpurge/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Console receives every line. Nil means os.Stderr.
	Console io.Writer
	// File, when set, receives a copy of every line. Missing parent
	// directories are created.
	File string
}

// New constructs a slog logger using the provided options. Debug loggers
// annotate each line with its call site.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)

	out, err := openSink(opts.Console, opts.File)
	if err != nil {
		return nil, err
	}
	addSource := level <= slog.LevelDebug

	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "", "console":
		return slog.New(newConsoleHandler(out, level, addSource)), nil
	case "json":
		return slog.New(newJSONHandler(out, level, addSource)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromConfig creates a logger using application config. Logs go to stderr
// so stdout stays free for command output, plus the configured log file.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{})
	}
	return New(Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
}

// parseLevel accepts the names slog.Level prints, in any case, plus
// "warning". Anything else is info.
func parseLevel(name string) slog.Level {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "warning") {
		return slog.LevelWarn
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func openSink(console io.Writer, file string) (io.Writer, error) {
	if console == nil {
		console = os.Stderr
	}
	if file == "" {
		return console, nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", file, err)
	}
	return io.MultiWriter(console, f), nil
}
