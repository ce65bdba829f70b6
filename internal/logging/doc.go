// Package logging assembles structured slog loggers and formatting helpers used
// across movconv.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so conversion code can tag log
// lines with run and job identifiers. A no-op logger is provided for tests
// and wiring code that cannot fail. ProgressSampler throttles the encoder's
// high-frequency progress stream down to a readable cadence.
package logging
