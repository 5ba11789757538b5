package tracker

import (
	"context"
	"strings"
	"time"

	"shorttrack/internal/lifecycle"
	"shorttrack/internal/services"
	"shorttrack/internal/shorts"
)

// Roll records a freshly spotted Short. Curators only.
func (t *Tracker) Roll(ctx context.Context, actorID, title, sourceChannelID, notes string) (*shorts.Item, error) {
	actor, err := t.store.GetActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanCurate() {
		return nil, services.Wrap(services.ErrForbidden, "tracker", "roll",
			"role "+string(actor.Role)+" cannot roll items", nil)
	}
	return t.store.CreateRolled(ctx, title, sourceChannelID, notes)
}

// Retain marks a rolled item as worth producing.
func (t *Tracker) Retain(ctx context.Context, itemID, actorID string) (*shorts.Item, error) {
	return t.transition(ctx, itemID, actorID, shorts.StatusRetained, lifecycle.Input{})
}

// Discard drops an item during curation, before any work happens.
func (t *Tracker) Discard(ctx context.Context, itemID, actorID string) (*shorts.Item, error) {
	return t.transition(ctx, itemID, actorID, shorts.StatusRejected, lifecycle.Input{})
}

// AssignArgs carries the inputs of an assignment.
type AssignArgs struct {
	AssigneeID      string
	TargetChannelID string
	Deadline        *time.Time
	Notes           string
}

// Assign hands a retained item to a videaste with a target channel and a
// deadline. A nil deadline defaults to the configured lead time.
func (t *Tracker) Assign(ctx context.Context, itemID, actorID string, args AssignArgs) (*shorts.Item, error) {
	input := lifecycle.Input{
		AssigneeID: strings.TrimSpace(args.AssigneeID),
		Deadline:   args.Deadline,
		Notes:      args.Notes,
	}
	if input.AssigneeID != "" {
		if _, err := t.store.GetActor(ctx, input.AssigneeID); err != nil {
			return nil, err
		}
	}
	if channelID := strings.TrimSpace(args.TargetChannelID); channelID != "" {
		channel, err := t.store.GetChannel(ctx, channelID)
		if err != nil {
			return nil, err
		}
		input.TargetChannel = channel
	}
	if input.Deadline == nil && t.deadlineDays > 0 {
		due := t.clock.Now().AddDate(0, 0, t.deadlineDays)
		input.Deadline = &due
	}
	return t.transition(ctx, itemID, actorID, shorts.StatusAssigned, input)
}

// Start marks an assignment as being worked on. Assignee only.
func (t *Tracker) Start(ctx context.Context, itemID, actorID string) (*shorts.Item, error) {
	return t.transition(ctx, itemID, actorID, shorts.StatusInProgress, lifecycle.Input{})
}

// Complete attaches the produced video and hands the item to review. Also
// the re-upload path after a rejection: the assignment is kept and the item
// returns to completed.
func (t *Tracker) Complete(ctx context.Context, itemID, actorID string, file *shorts.FileRef) (*shorts.Item, error) {
	return t.transition(ctx, itemID, actorID, shorts.StatusCompleted, lifecycle.Input{File: file})
}

// Validate approves a completed upload. Admin only; feedback is optional.
func (t *Tracker) Validate(ctx context.Context, itemID, actorID, feedback string) (*shorts.Item, error) {
	return t.transition(ctx, itemID, actorID, shorts.StatusValidated, lifecycle.Input{Feedback: feedback})
}

// Reject sends a completed upload back with mandatory feedback. When
// deleteFile is set the stored blob is removed after the rejection commits.
func (t *Tracker) Reject(ctx context.Context, itemID, actorID, feedback string, deleteFile bool) (*shorts.Item, error) {
	return t.transition(ctx, itemID, actorID, shorts.StatusRejected, lifecycle.Input{
		Feedback:   feedback,
		DeleteFile: deleteFile,
	})
}

// Publish marks a validated item as live.
func (t *Tracker) Publish(ctx context.Context, itemID, actorID string) (*shorts.Item, error) {
	return t.transition(ctx, itemID, actorID, shorts.StatusPublished, lifecycle.Input{})
}

// Comment appends a note to an item without touching its state.
func (t *Tracker) Comment(ctx context.Context, itemID, authorID, body string) (*shorts.Comment, error) {
	return t.store.AddComment(ctx, itemID, authorID, body)
}
