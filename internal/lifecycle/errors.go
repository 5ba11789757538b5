package lifecycle

import (
	"fmt"
	"time"

	"shorttrack/internal/shorts"
)

// Error kinds used for classification by internal/services. Kinds map user
// mistakes to actionable failures and conflicts to retry guidance.
const (
	KindValidation = "validation"
	KindForbidden  = "forbidden"
	KindConflict   = "conflict"
)

// InvalidTransitionError reports a target status unreachable from the
// item's current status.
type InvalidTransitionError struct {
	ItemID string
	From   shorts.Status
	To     shorts.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("item %s: no transition from %s to %s", e.ItemID, e.From, e.To)
}

// ErrorKind classifies the error for status mapping.
func (e *InvalidTransitionError) ErrorKind() string { return KindValidation }

// ForbiddenTransitionError reports an actor whose role or identity does not
// permit the requested transition.
type ForbiddenTransitionError struct {
	ItemID  string
	From    shorts.Status
	To      shorts.Status
	ActorID string
	Role    shorts.Role
}

func (e *ForbiddenTransitionError) Error() string {
	return fmt.Sprintf("item %s: actor %s (%s) may not move %s to %s", e.ItemID, e.ActorID, e.Role, e.From, e.To)
}

func (e *ForbiddenTransitionError) ErrorKind() string { return KindForbidden }

// IncompatibleChannelError reports a target channel whose content type fails
// the compatibility check against the source channel.
type IncompatibleChannelError struct {
	ItemID     string
	ChannelID  string
	SourceType shorts.ContentType
	TargetType shorts.ContentType
}

func (e *IncompatibleChannelError) Error() string {
	return fmt.Sprintf("item %s: channel %s type %s is not compatible with source type %s",
		e.ItemID, e.ChannelID, e.TargetType, e.SourceType)
}

func (e *IncompatibleChannelError) ErrorKind() string { return KindValidation }

// MissingFeedbackError reports a review rejection attempted without
// feedback text.
type MissingFeedbackError struct {
	ItemID string
}

func (e *MissingFeedbackError) Error() string {
	return fmt.Sprintf("item %s: rejection requires admin feedback", e.ItemID)
}

func (e *MissingFeedbackError) ErrorKind() string { return KindValidation }

// MissingInputError reports a transition attempted without a required input.
type MissingInputError struct {
	ItemID string
	To     shorts.Status
	Field  string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("item %s: transition to %s requires %s", e.ItemID, e.To, e.Field)
}

func (e *MissingInputError) ErrorKind() string { return KindValidation }

// PastDeadlineError reports an assignment whose deadline is already behind
// the clock sample used for the transition.
type PastDeadlineError struct {
	ItemID   string
	Deadline time.Time
	Now      time.Time
}

func (e *PastDeadlineError) Error() string {
	return fmt.Sprintf("item %s: deadline %s is before %s", e.ItemID,
		e.Deadline.Format(time.RFC3339), e.Now.Format(time.RFC3339))
}

func (e *PastDeadlineError) ErrorKind() string { return KindValidation }

// StaleStateError reports an optimistic-concurrency mismatch: the item's
// persisted status no longer matches the snapshot the transition was
// computed from. Callers must re-fetch and retry, never overwrite.
type StaleStateError struct {
	ItemID   string
	Expected shorts.Status
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("item %s: status changed since snapshot (expected %s)", e.ItemID, e.Expected)
}

func (e *StaleStateError) ErrorKind() string { return KindConflict }
