// Package logging builds the slog loggers textpurge writes its progress to.
//
// Two formats exist: a single-line console format led by the component name,
// and JSON lines. Either goes to stderr and optionally to a log file. Loggers
// are built once in the CLI and passed down; nothing configures logging at
// import time.
package logging
