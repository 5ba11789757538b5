package tracker

import (
	"context"

	"shorttrack/internal/deadline"
	"shorttrack/internal/lifecycle"
	"shorttrack/internal/logging"
	"shorttrack/internal/shorts"
)

// ItemView bundles an item with derived scheduling state and its comments.
type ItemView struct {
	Item     *shorts.Item
	Late     bool
	Comments []shorts.Comment
}

// Show loads one item with comments and lateness resolved.
func (t *Tracker) Show(ctx context.Context, itemID string) (*ItemView, error) {
	item, err := t.store.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	comments, err := t.store.CommentsForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &ItemView{
		Item:     item,
		Late:     deadline.IsLate(item.Deadline, item.Status, t.clock.Now()),
		Comments: comments,
	}, nil
}

// List returns items, optionally filtered by status, with lateness resolved.
func (t *Tracker) List(ctx context.Context, statuses ...shorts.Status) ([]ItemView, error) {
	items, err := t.store.List(ctx, statuses...)
	if err != nil {
		return nil, err
	}
	return t.toViews(items), nil
}

// Mine returns the open items assigned to an actor.
func (t *Tracker) Mine(ctx context.Context, actorID string) ([]ItemView, error) {
	items, err := t.store.ItemsByAssignee(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return t.toViews(items), nil
}

// LateItems returns the items whose deadline has passed without delivery.
func (t *Tracker) LateItems(ctx context.Context) ([]ItemView, error) {
	views, err := t.List(ctx)
	if err != nil {
		return nil, err
	}
	late := views[:0]
	for _, view := range views {
		if view.Late {
			late = append(late, view)
		}
	}
	return late, nil
}

// Stats returns item counts per status.
func (t *Tracker) Stats(ctx context.Context) (map[shorts.Status]int, error) {
	return t.store.Stats(ctx)
}

// SendDeadlineReminders notifies assignees of undelivered items whose
// deadline falls inside the configured reminder window. Returns the number
// of reminders dispatched.
func (t *Tracker) SendDeadlineReminders(ctx context.Context) (int, error) {
	items, err := t.store.List(ctx)
	if err != nil {
		return 0, err
	}

	log := logging.WithContext(ctx, t.logger)
	now := t.clock.Now()
	sent := 0
	for _, item := range items {
		if !deadline.Approaching(item.Deadline, item.Status, now, t.reminderWindow) {
			continue
		}
		if item.AssignedToID == "" {
			continue
		}
		err := t.notify(ctx, lifecycle.NotifyUser{
			UserID: item.AssignedToID,
			Kind:   lifecycle.NotifyDeadlineApproaching,
			Payload: map[string]string{
				"title":    item.Title,
				"deadline": item.Deadline.UTC().Format("2006-01-02 15:04"),
			},
		})
		if err != nil {
			log.Warn("deadline reminder failed",
				logging.String("item", item.ID),
				logging.Error(err),
			)
			continue
		}
		sent++
	}
	return sent, nil
}

func (t *Tracker) toViews(items []*shorts.Item) []ItemView {
	now := t.clock.Now()
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ItemView{
			Item: item,
			Late: deadline.IsLate(item.Deadline, item.Status, now),
		})
	}
	return views
}
