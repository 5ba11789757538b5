package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shorttrack/internal/config"
	"shorttrack/internal/deadline"
	"shorttrack/internal/lifecycle"
	"shorttrack/internal/logging"
	"shorttrack/internal/notifications"
	"shorttrack/internal/services"
	"shorttrack/internal/shorts"
	"shorttrack/internal/store"
)

// BlobDeleter removes stored video blobs. Satisfied by blobstore.Store.
type BlobDeleter interface {
	Delete(ctx context.Context, ref shorts.FileRef) error
}

// Tracker coordinates transitions between the store, the lifecycle rules,
// and the effect targets.
type Tracker struct {
	store          *store.Store
	blobs          BlobDeleter
	notifier       notifications.Service
	clock          deadline.Clock
	logger         *slog.Logger
	deadlineDays   int
	reminderWindow time.Duration
}

// Option customizes a Tracker.
type Option func(*Tracker)

// WithClock overrides the clock, primarily for tests.
func WithClock(clock deadline.Clock) Option {
	return func(t *Tracker) {
		t.clock = clock
	}
}

// New builds a Tracker over the given collaborators.
func New(cfg *config.Config, st *store.Store, notifier notifications.Service, blobs BlobDeleter, logger *slog.Logger, opts ...Option) *Tracker {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	t := &Tracker{
		store:          st,
		blobs:          blobs,
		notifier:       notifier,
		clock:          deadline.SystemClock{},
		logger:         logging.NewComponentLogger(logger, "tracker"),
		deadlineDays:   cfg.Workflow.DefaultDeadlineDays,
		reminderWindow: time.Duration(cfg.Workflow.ReminderWindowHours) * time.Hour,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// transition runs one lifecycle step end to end: load, decide, persist with
// a status compare-and-swap, then dispatch effects.
func (t *Tracker) transition(ctx context.Context, itemID, actorID string, to shorts.Status, input lifecycle.Input) (*shorts.Item, error) {
	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithItemID(ctx, itemID)
	ctx = services.WithActorID(ctx, actorID)
	log := logging.WithContext(ctx, t.logger)

	actor, err := t.store.GetActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	item, err := t.store.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	decision, err := lifecycle.ApplyTransition(item, to, *actor, input, t.clock.Now())
	if err != nil {
		return nil, err
	}
	if decision.NoOp() {
		log.Debug("transition is a no-op", logging.String("status", string(to)))
		return item, nil
	}

	expected := item.Status
	decision.ApplyTo(item)
	if err := t.store.UpdateFrom(ctx, item, expected); err != nil {
		return nil, err
	}
	log.Info("transition applied",
		logging.String("from", string(expected)),
		logging.String("to", string(item.Status)),
	)

	t.dispatch(ctx, log, decision.Effects)
	return item, nil
}

// dispatch runs the decision's effects after the transition is durable.
// Effect failures are logged and do not fail the transition.
func (t *Tracker) dispatch(ctx context.Context, log *slog.Logger, effects []lifecycle.Effect) {
	for _, effect := range effects {
		switch e := effect.(type) {
		case lifecycle.NotifyUser:
			if err := t.notify(ctx, e); err != nil {
				log.Warn("notification dispatch failed",
					logging.String("kind", string(e.Kind)),
					logging.String("user", e.UserID),
					logging.Error(err),
				)
			}
		case lifecycle.DeleteBlob:
			if t.blobs == nil {
				log.Warn("blob deletion requested but no blob store configured",
					logging.String("file", e.File.Name))
				continue
			}
			if err := t.blobs.Delete(ctx, e.File); err != nil {
				log.Warn("blob deletion failed",
					logging.String("file", e.File.Name),
					logging.Error(err),
				)
			}
		default:
			log.Warn("unknown effect dropped")
		}
	}
}

func (t *Tracker) notify(ctx context.Context, e lifecycle.NotifyUser) error {
	if e.UserID == "" {
		return nil
	}
	recipient, err := t.store.GetActor(ctx, e.UserID)
	if err != nil {
		return err
	}
	if recipient.NotifyOptOut {
		return nil
	}
	event, ok := eventForKind(e.Kind)
	if !ok {
		return services.Wrap(services.ErrValidation, "tracker", "notify",
			"no notification event for kind "+string(e.Kind), nil)
	}
	payload := notifications.Payload{"recipient": recipient.Name}
	for k, v := range e.Payload {
		payload[k] = v
	}
	return t.notifier.Publish(ctx, event, payload)
}

func eventForKind(kind lifecycle.NotifyKind) (notifications.Event, bool) {
	switch kind {
	case lifecycle.NotifyAssigned:
		return notifications.EventAssigned, true
	case lifecycle.NotifyCompleted:
		return notifications.EventCompleted, true
	case lifecycle.NotifyValidated:
		return notifications.EventValidated, true
	case lifecycle.NotifyRejected:
		return notifications.EventRejected, true
	case lifecycle.NotifyDeadlineApproaching:
		return notifications.EventDeadlineApproaching, true
	default:
		return "", false
	}
}
