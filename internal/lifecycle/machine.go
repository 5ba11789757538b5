package lifecycle

import (
	"errors"
	"strings"
	"time"

	"shorttrack/internal/compat"
	"shorttrack/internal/shorts"
)

// ApplyTransition validates a requested status change against the transition
// table and returns the decision to persist. Re-applying the status the item
// already holds is an idempotent no-op so a double-submit never errors.
func ApplyTransition(item *shorts.Item, to shorts.Status, actor shorts.Actor, input Input, now time.Time) (*Decision, error) {
	if item == nil {
		return nil, errors.New("item snapshot is nil")
	}
	if !to.Valid() {
		return nil, &InvalidTransitionError{ItemID: item.ID, From: item.Status, To: to}
	}
	if item.Status == to {
		return &Decision{}, nil
	}

	switch to {
	case shorts.StatusRetained:
		return retain(item, actor)
	case shorts.StatusRejected:
		return reject(item, actor, input)
	case shorts.StatusAssigned:
		return assign(item, actor, input, now)
	case shorts.StatusInProgress:
		return start(item, actor)
	case shorts.StatusCompleted:
		return complete(item, actor, input, now)
	case shorts.StatusValidated:
		return validate(item, actor, input)
	case shorts.StatusPublished:
		return publish(item, actor, now)
	case shorts.StatusRolled:
		// Items enter the pipeline at rolled through discovery, never by
		// transition.
		return nil, &InvalidTransitionError{ItemID: item.ID, From: item.Status, To: to}
	default:
		return nil, &InvalidTransitionError{ItemID: item.ID, From: item.Status, To: to}
	}
}

func retain(item *shorts.Item, actor shorts.Actor) (*Decision, error) {
	if item.Status != shorts.StatusRolled {
		return nil, &InvalidTransitionError{ItemID: item.ID, From: item.Status, To: shorts.StatusRetained}
	}
	if !actor.Role.CanCurate() {
		return nil, forbidden(item, shorts.StatusRetained, actor)
	}
	return &Decision{Update: Update{Status: statusPtr(shorts.StatusRetained)}}, nil
}

func reject(item *shorts.Item, actor shorts.Actor, input Input) (*Decision, error) {
	switch item.Status {
	case shorts.StatusRolled, shorts.StatusRetained:
		// Discard before assignment: no feedback, no side effects.
		if !actor.Role.CanCurate() {
			return nil, forbidden(item, shorts.StatusRejected, actor)
		}
		return &Decision{Update: Update{Status: statusPtr(shorts.StatusRejected)}}, nil
	case shorts.StatusCompleted:
		if !actor.Role.CanReview() {
			return nil, forbidden(item, shorts.StatusRejected, actor)
		}
		feedback := strings.TrimSpace(input.Feedback)
		if feedback == "" {
			return nil, &MissingFeedbackError{ItemID: item.ID}
		}
		decision := &Decision{
			Update: Update{
				Status:        statusPtr(shorts.StatusRejected),
				AdminFeedback: &feedback,
			},
		}
		if input.DeleteFile && item.File != nil {
			decision.Update.ClearFile = true
			decision.Effects = append(decision.Effects, DeleteBlob{File: *item.File})
		}
		decision.Effects = append(decision.Effects, NotifyUser{
			UserID: item.AssignedToID,
			Kind:   NotifyRejected,
			Payload: map[string]string{
				"title":    item.Title,
				"feedback": feedback,
			},
		})
		return decision, nil
	default:
		return nil, &InvalidTransitionError{ItemID: item.ID, From: item.Status, To: shorts.StatusRejected}
	}
}

func assign(item *shorts.Item, actor shorts.Actor, input Input, now time.Time) (*Decision, error) {
	if item.Status != shorts.StatusRetained {
		return nil, &InvalidTransitionError{ItemID: item.ID, From: item.Status, To: shorts.StatusAssigned}
	}
	if !actor.Role.CanReview() {
		return nil, forbidden(item, shorts.StatusAssigned, actor)
	}
	if strings.TrimSpace(input.AssigneeID) == "" {
		return nil, &MissingInputError{ItemID: item.ID, To: shorts.StatusAssigned, Field: "assignee"}
	}
	if input.TargetChannel == nil {
		return nil, &MissingInputError{ItemID: item.ID, To: shorts.StatusAssigned, Field: "target channel"}
	}
	if input.Deadline == nil {
		return nil, &MissingInputError{ItemID: item.ID, To: shorts.StatusAssigned, Field: "deadline"}
	}
	if input.Deadline.Before(now) {
		return nil, &PastDeadlineError{ItemID: item.ID, Deadline: *input.Deadline, Now: now}
	}
	if !compat.Compatible(item.SourceChannel.ContentType, input.TargetChannel.ContentType) {
		return nil, &IncompatibleChannelError{
			ItemID:     item.ID,
			ChannelID:  input.TargetChannel.ID,
			SourceType: item.SourceChannel.ContentType,
			TargetType: input.TargetChannel.ContentType,
		}
	}

	assignee := strings.TrimSpace(input.AssigneeID)
	notes := strings.TrimSpace(input.Notes)
	decision := &Decision{
		Update: Update{
			Status:        statusPtr(shorts.StatusAssigned),
			TargetChannel: input.TargetChannel,
			AssignedTo:    &assignee,
			AssignedBy:    &actor.ID,
			Deadline:      input.Deadline,
			AssignedAt:    &now,
		},
		Effects: []Effect{NotifyUser{
			UserID: assignee,
			Kind:   NotifyAssigned,
			Payload: map[string]string{
				"title":    item.Title,
				"channel":  input.TargetChannel.Name,
				"deadline": input.Deadline.UTC().Format(time.RFC3339),
			},
		}},
	}
	if notes != "" {
		decision.Update.Notes = &notes
	}
	return decision, nil
}

func start(item *shorts.Item, actor shorts.Actor) (*Decision, error) {
	if item.Status != shorts.StatusAssigned {
		return nil, &InvalidTransitionError{ItemID: item.ID, From: item.Status, To: shorts.StatusInProgress}
	}
	if actor.ID == "" || actor.ID != item.AssignedToID {
		return nil, forbidden(item, shorts.StatusInProgress, actor)
	}
	return &Decision{Update: Update{Status: statusPtr(shorts.StatusInProgress)}}, nil
}

func complete(item *shorts.Item, actor shorts.Actor, input Input, now time.Time) (*Decision, error) {
	reupload := item.CanReupload()
	if item.Status != shorts.StatusInProgress && !reupload {
		return nil, &InvalidTransitionError{ItemID: item.ID, From: item.Status, To: shorts.StatusCompleted}
	}
	if actor.ID == "" || actor.ID != item.AssignedToID {
		return nil, forbidden(item, shorts.StatusCompleted, actor)
	}
	if input.File == nil {
		return nil, &MissingInputError{ItemID: item.ID, To: shorts.StatusCompleted, Field: "uploaded file"}
	}

	return &Decision{
		Update: Update{
			Status:      statusPtr(shorts.StatusCompleted),
			File:        input.File,
			UploadedAt:  timestampOnce(item.UploadedAt, now),
			CompletedAt: timestampOnce(item.CompletedAt, now),
		},
		Effects: []Effect{NotifyUser{
			UserID: item.AssignedByID,
			Kind:   NotifyCompleted,
			Payload: map[string]string{
				"title": item.Title,
				"file":  input.File.Name,
			},
		}},
	}, nil
}

func validate(item *shorts.Item, actor shorts.Actor, input Input) (*Decision, error) {
	if item.Status != shorts.StatusCompleted {
		return nil, &InvalidTransitionError{ItemID: item.ID, From: item.Status, To: shorts.StatusValidated}
	}
	if !actor.Role.CanReview() {
		return nil, forbidden(item, shorts.StatusValidated, actor)
	}
	payload := map[string]string{"title": item.Title}
	decision := &Decision{
		Update: Update{Status: statusPtr(shorts.StatusValidated)},
		Effects: []Effect{NotifyUser{
			UserID:  item.AssignedToID,
			Kind:    NotifyValidated,
			Payload: payload,
		}},
	}
	if feedback := strings.TrimSpace(input.Feedback); feedback != "" {
		decision.Update.AdminFeedback = &feedback
		payload["feedback"] = feedback
	}
	return decision, nil
}

func publish(item *shorts.Item, actor shorts.Actor, now time.Time) (*Decision, error) {
	if item.Status != shorts.StatusValidated {
		return nil, &InvalidTransitionError{ItemID: item.ID, From: item.Status, To: shorts.StatusPublished}
	}
	if !actor.Role.CanReview() {
		return nil, forbidden(item, shorts.StatusPublished, actor)
	}
	return &Decision{Update: Update{
		Status:      statusPtr(shorts.StatusPublished),
		PublishedAt: &now,
	}}, nil
}

func forbidden(item *shorts.Item, to shorts.Status, actor shorts.Actor) error {
	return &ForbiddenTransitionError{
		ItemID:  item.ID,
		From:    item.Status,
		To:      to,
		ActorID: actor.ID,
		Role:    actor.Role,
	}
}

func statusPtr(s shorts.Status) *shorts.Status { return &s }

// timestampOnce preserves an already-set timestamp; lifecycle timestamps are
// written exactly once and never cleared.
func timestampOnce(existing *time.Time, now time.Time) *time.Time {
	if existing != nil {
		return nil
	}
	return &now
}
