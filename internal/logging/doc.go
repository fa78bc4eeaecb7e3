// Package logging constructs the slog loggers used across mkvmux.
//
// It supplies json and console output formats, optional log-file teeing, a
// no-op logger for tests and silent library use, and typed attribute
// helpers so call sites stay terse.
package logging
