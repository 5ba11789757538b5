// Package store persists Shorts, channels, actors, and comments in SQLite
// and enforces the optimistic-concurrency contract the lifecycle requires.
//
// Status changes go through UpdateFrom, which compares-and-swaps on the
// status column: a mismatch means the caller computed its transition from a
// stale snapshot and receives lifecycle.StaleStateError instead of a silent
// overwrite. A file lock beside the database keeps concurrent shorttrack
// processes from interleaving writes.
//
// The database is the single source of truth for item state. Schema changes
// bump the version in schema.go; users clear the database to adopt the new
// schema.
package store
