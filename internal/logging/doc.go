// Package logging assembles the structured slog loggers used across dynoctl
// commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes typed attribute helpers so transport and dispatch
// code tag log lines with the same host, operation, and batch keys. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
