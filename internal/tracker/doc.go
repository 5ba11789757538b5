// Package tracker orchestrates the production pipeline: it loads items,
// asks the lifecycle for a decision, persists the outcome, and dispatches
// the decision's side effects.
//
// Persistence happens before dispatch. Effects are at-least-once: a failed
// notification or blob deletion is logged and never rolls back a committed
// transition.
package tracker
