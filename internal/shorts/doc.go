// Package shorts defines the domain model for tracked Shorts: the lifecycle
// status enum, the content-type grid that gates channel assignment, actor
// roles, and the Item struct persisted by the store.
//
// The package holds data and invariant checks only. Transition legality and
// side effects live in internal/lifecycle; channel compatibility lives in
// internal/compat. Treat this package as the single source of truth for
// status and content-type values; new values must be added to the enum
// tables here before any other package can use them.
package shorts
