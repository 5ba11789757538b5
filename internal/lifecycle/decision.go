package lifecycle

import (
	"time"

	"shorttrack/internal/shorts"
)

// Input carries the optional inputs a transition guard may require.
type Input struct {
	TargetChannel *shorts.Channel
	AssigneeID    string
	Deadline      *time.Time
	Notes         string
	Feedback      string
	DeleteFile    bool
	File          *shorts.FileRef
}

// Update is the partial set of item fields a transition writes. Nil pointer
// fields are left untouched; ClearFile removes the file reference after a
// rejection that requested blob deletion.
type Update struct {
	Status        *shorts.Status
	TargetChannel *shorts.Channel
	AssignedTo    *string
	AssignedBy    *string
	Deadline      *time.Time
	Notes         *string
	AdminFeedback *string
	File          *shorts.FileRef
	ClearFile     bool
	AssignedAt    *time.Time
	CompletedAt   *time.Time
	UploadedAt    *time.Time
	PublishedAt   *time.Time
}

// Decision is the outcome of a legal transition: the fields to persist and
// the side effects to dispatch once persistence succeeds.
type Decision struct {
	Update  Update
	Effects []Effect
}

// NoOp reports whether the decision changes nothing. Idempotent re-applies
// of the current status produce a no-op decision.
func (d *Decision) NoOp() bool {
	return d != nil && d.Update == (Update{}) && len(d.Effects) == 0
}

// ApplyTo writes the decision's updates onto the item in place.
func (d *Decision) ApplyTo(item *shorts.Item) {
	if d == nil || item == nil {
		return
	}
	u := d.Update
	if u.Status != nil {
		item.Status = *u.Status
	}
	if u.TargetChannel != nil {
		cp := *u.TargetChannel
		item.TargetChannel = &cp
	}
	if u.AssignedTo != nil {
		item.AssignedToID = *u.AssignedTo
	}
	if u.AssignedBy != nil {
		item.AssignedByID = *u.AssignedBy
	}
	if u.Deadline != nil {
		dl := *u.Deadline
		item.Deadline = &dl
	}
	if u.Notes != nil {
		item.Notes = *u.Notes
	}
	if u.AdminFeedback != nil {
		item.AdminFeedback = *u.AdminFeedback
	}
	if u.File != nil {
		ref := *u.File
		item.File = &ref
	}
	if u.ClearFile {
		item.File = nil
	}
	if u.AssignedAt != nil {
		at := *u.AssignedAt
		item.AssignedAt = &at
	}
	if u.CompletedAt != nil {
		at := *u.CompletedAt
		item.CompletedAt = &at
	}
	if u.UploadedAt != nil {
		at := *u.UploadedAt
		item.UploadedAt = &at
	}
	if u.PublishedAt != nil {
		at := *u.PublishedAt
		item.PublishedAt = &at
	}
}
