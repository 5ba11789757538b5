package lifecycle

import "shorttrack/internal/shorts"

// NotifyKind names the notification a NotifyUser effect requests.
type NotifyKind string

const (
	NotifyAssigned            NotifyKind = "assigned"
	NotifyCompleted           NotifyKind = "completed"
	NotifyValidated           NotifyKind = "validated"
	NotifyRejected            NotifyKind = "rejected"
	NotifyDeadlineApproaching NotifyKind = "deadline_approaching"
)

// Effect is a side effect the caller must dispatch after persisting the
// transition. The variant is closed: NotifyUser and DeleteBlob only.
type Effect interface {
	isEffect()
}

// NotifyUser requests a notification to a single user.
type NotifyUser struct {
	UserID  string
	Kind    NotifyKind
	Payload map[string]string
}

func (NotifyUser) isEffect() {}

// DeleteBlob requests deletion of an uploaded video blob.
type DeleteBlob struct {
	File shorts.FileRef
}

func (DeleteBlob) isEffect() {}
