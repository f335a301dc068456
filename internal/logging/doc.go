// Package logging assembles structured slog loggers and formatting helpers
// used by the fusion engine and the CLI.
//
// It owns the console ("pretty") and JSON handlers, centralizes level and
// output plumbing, and exposes context helpers so pipeline code can tag log
// lines with the run ID and faculty under evaluation. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Console output goes to stderr so that command results written to stdout
// stay machine-readable.
package logging
