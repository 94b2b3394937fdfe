// Package logging assembles structured slog loggers and attr helpers used
// across Instatory components.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes component loggers so pipeline code tags every line
// consistently. A no-op logger is provided for tests and wiring code that
// cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape as the rest of the system.
package logging
