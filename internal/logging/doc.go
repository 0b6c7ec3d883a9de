// Package logging assembles the structured slog loggers used by the stardate
// CLI and its pipeline packages.
//
// It owns the console (key=value) and JSON handlers, maps configured levels
// and output paths onto them, and exposes context helpers so every line of a
// batch run carries the same run ID. A no-op logger is provided for tests and
// for wiring code that must not fail.
package logging
