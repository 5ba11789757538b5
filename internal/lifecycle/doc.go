// Package lifecycle is the authoritative definition of Short status
// transitions: which target statuses are reachable from which current
// statuses, which actor may request each transition, the inputs each guard
// requires, and the side effects a successful transition must produce.
//
// ApplyTransition is a pure decision function. It performs no I/O: given an
// item snapshot, the requested status, the acting user, the transition
// inputs, and a clock sample, it returns the field updates to persist plus
// the ordered side effects to dispatch, or a typed error. Persistence,
// notification delivery, and blob deletion belong to internal/tracker,
// which must persist the new status before dispatching effects.
package lifecycle
