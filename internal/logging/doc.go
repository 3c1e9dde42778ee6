// Package logging assembles structured slog loggers and formatting helpers used
// across notarycheck.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so checker code can tag log
// lines with run and submission identifiers. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every command emits
// data with the same shape.
package logging
