package shorts

import "strings"

// Status represents the lifecycle of a tracked Short.
type Status string

const (
	StatusRolled     Status = "rolled"
	StatusRetained   Status = "retained"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusValidated  Status = "validated"
	StatusPublished  Status = "published"
	StatusRejected   Status = "rejected"
)

var allStatuses = []Status{
	StatusRolled,
	StatusRetained,
	StatusAssigned,
	StatusInProgress,
	StatusCompleted,
	StatusValidated,
	StatusPublished,
	StatusRejected,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Valid reports whether the status is one of the known enum values.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// Delivered reports whether the item's edit has been delivered: the statuses
// where a viable upload exists and lateness no longer applies.
func (s Status) Delivered() bool {
	switch s {
	case StatusCompleted, StatusValidated, StatusPublished:
		return true
	default:
		return false
	}
}

// Assignable reports whether the status carries an active assignment
// (target channel, assignee, and deadline are all set).
func (s Status) Assignable() bool {
	switch s {
	case StatusAssigned, StatusInProgress, StatusCompleted, StatusValidated, StatusPublished:
		return true
	default:
		return false
	}
}

// Terminal reports whether the state machine offers no further transitions.
// Rejected items are not terminal in general: a rejection after review keeps
// its assignment and may return to completed through a re-upload.
func (s Status) Terminal() bool {
	return s == StatusPublished
}
