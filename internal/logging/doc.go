// Package logging assembles the structured slog loggers used across
// shorttrack. It owns the console/JSON handlers, centralizes level and
// output plumbing, and exposes context-aware helpers so tracker code can
// automatically tag log lines with item and correlation IDs. A no-op logger
// is provided for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape as the rest of the system.
package logging
