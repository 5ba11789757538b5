package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shorttrack/internal/lifecycle"
	"shorttrack/internal/services"
	"shorttrack/internal/shorts"
	"shorttrack/internal/testsupport"
)

func vf(edit shorts.Edit) shorts.ContentType {
	return shorts.ContentType{Language: shorts.LanguageVF, Edit: edit}
}

func TestCreateRolledAndGet(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.SeedChannel(t, st, "source-vf", vf(shorts.EditSans))

	item, err := st.CreateRolled(context.Background(), "  Clip one  ", "source-vf", "spotted during stream")
	if err != nil {
		t.Fatalf("CreateRolled: %v", err)
	}
	if item.Status != shorts.StatusRolled {
		t.Fatalf("expected rolled status, got %s", item.Status)
	}
	if item.Title != "Clip one" {
		t.Fatalf("expected trimmed title, got %q", item.Title)
	}
	if item.SourceChannel.ContentType != vf(shorts.EditSans) {
		t.Fatalf("unexpected source content type %s", item.SourceChannel.ContentType)
	}
	if item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	loaded, err := st.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if loaded.Title != item.Title || loaded.Notes != "spotted during stream" {
		t.Fatalf("unexpected loaded item: %+v", loaded)
	}
}

func TestCreateRolledRequiresKnownChannel(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	if _, err := st.CreateRolled(context.Background(), "Clip", "missing", ""); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGetByIDMissing(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	if _, err := st.GetByID(context.Background(), "nope"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.SeedChannel(t, st, "source-vf", vf(shorts.EditSans))

	first := testsupport.NewRolled(t, st, "first", "source-vf")
	second := testsupport.NewRolled(t, st, "second", "source-vf")

	second.Status = shorts.StatusRetained
	if err := st.UpdateFrom(context.Background(), second, shorts.StatusRolled); err != nil {
		t.Fatalf("UpdateFrom: %v", err)
	}

	rolled, err := st.List(context.Background(), shorts.StatusRolled)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rolled) != 1 || rolled[0].ID != first.ID {
		t.Fatalf("expected only the first item rolled, got %d items", len(rolled))
	}

	all, err := st.List(context.Background())
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 items, got %d", len(all))
	}
}

func TestUpdateFromPersistsTransitionFields(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.SeedChannel(t, st, "source-vf", vf(shorts.EditSans))
	target := testsupport.SeedChannel(t, st, "target-vf", vf(shorts.EditAvec))
	testsupport.SeedActor(t, st, "vid", shorts.RoleVideaste)
	testsupport.SeedActor(t, st, "boss", shorts.RoleAdmin)

	item := testsupport.NewRolled(t, st, "clip", "source-vf")
	now := time.Now().UTC().Truncate(time.Second)
	deadline := now.Add(72 * time.Hour)

	item.Status = shorts.StatusAssigned
	item.TargetChannel = &target
	item.AssignedToID = "vid"
	item.AssignedByID = "boss"
	item.Deadline = &deadline
	item.AssignedAt = &now
	if err := st.UpdateFrom(context.Background(), item, shorts.StatusRolled); err != nil {
		t.Fatalf("UpdateFrom: %v", err)
	}

	loaded, err := st.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if loaded.Status != shorts.StatusAssigned {
		t.Fatalf("expected assigned, got %s", loaded.Status)
	}
	if loaded.TargetChannel == nil || loaded.TargetChannel.ID != "target-vf" {
		t.Fatalf("expected target channel, got %+v", loaded.TargetChannel)
	}
	if loaded.AssignedToID != "vid" || loaded.AssignedByID != "boss" {
		t.Fatalf("unexpected assignment: %+v", loaded)
	}
	if loaded.Deadline == nil || !loaded.Deadline.Equal(deadline) {
		t.Fatalf("unexpected deadline: %v", loaded.Deadline)
	}
	if loaded.AssignedAt == nil {
		t.Fatal("expected assigned_at to persist")
	}
}

func TestUpdateFromStaleStatus(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.SeedChannel(t, st, "source-vf", vf(shorts.EditSans))
	item := testsupport.NewRolled(t, st, "clip", "source-vf")

	item.Status = shorts.StatusRetained
	if err := st.UpdateFrom(context.Background(), item, shorts.StatusRolled); err != nil {
		t.Fatalf("first UpdateFrom: %v", err)
	}

	// Second writer still holds the rolled snapshot.
	stale := *item
	stale.Status = shorts.StatusRetained
	err := st.UpdateFrom(context.Background(), &stale, shorts.StatusRolled)
	var staleErr *lifecycle.StaleStateError
	if !errors.As(err, &staleErr) {
		t.Fatalf("expected StaleStateError, got %v", err)
	}
	if staleErr.ItemID != item.ID || staleErr.Expected != shorts.StatusRolled {
		t.Fatalf("unexpected stale error: %+v", staleErr)
	}
	if services.Classify(err) != services.ErrConflict {
		t.Fatalf("expected conflict classification, got %v", services.Classify(err))
	}
}

func TestUpdateFromMissingItem(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	ghost := &shorts.Item{ID: "ghost", Status: shorts.StatusRetained}
	if err := st.UpdateFrom(context.Background(), ghost, shorts.StatusRolled); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestItemsByAssignee(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.SeedChannel(t, st, "source-vf", vf(shorts.EditSans))
	target := testsupport.SeedChannel(t, st, "target-vf", vf(shorts.EditAvec))
	testsupport.SeedActor(t, st, "vid", shorts.RoleVideaste)
	testsupport.SeedActor(t, st, "boss", shorts.RoleAdmin)

	deadline := time.Now().UTC().Add(48 * time.Hour)
	assigned := testsupport.NewRolled(t, st, "mine", "source-vf")
	assigned.Status = shorts.StatusAssigned
	assigned.TargetChannel = &target
	assigned.AssignedToID = "vid"
	assigned.AssignedByID = "boss"
	assigned.Deadline = &deadline
	if err := st.UpdateFrom(context.Background(), assigned, shorts.StatusRolled); err != nil {
		t.Fatalf("UpdateFrom: %v", err)
	}
	testsupport.NewRolled(t, st, "unassigned", "source-vf")

	items, err := st.ItemsByAssignee(context.Background(), "vid")
	if err != nil {
		t.Fatalf("ItemsByAssignee: %v", err)
	}
	if len(items) != 1 || items[0].ID != assigned.ID {
		t.Fatalf("expected one assigned item, got %d", len(items))
	}
}

func TestCommentsRoundTrip(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.SeedChannel(t, st, "source-vf", vf(shorts.EditSans))
	testsupport.SeedActor(t, st, "boss", shorts.RoleAdmin)
	item := testsupport.NewRolled(t, st, "clip", "source-vf")

	if _, err := st.AddComment(context.Background(), item.ID, "boss", "   "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for blank comment, got %v", err)
	}

	comment, err := st.AddComment(context.Background(), item.ID, "boss", "please recheck audio")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if comment.AuthorName != "boss" {
		t.Fatalf("expected author name resolved, got %q", comment.AuthorName)
	}

	comments, err := st.CommentsForItem(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("CommentsForItem: %v", err)
	}
	if len(comments) != 1 || comments[0].Body != "please recheck audio" {
		t.Fatalf("unexpected comments: %+v", comments)
	}
}

func TestStatsIncludesEmptyStatuses(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.SeedChannel(t, st, "source-vf", vf(shorts.EditSans))
	testsupport.NewRolled(t, st, "one", "source-vf")
	testsupport.NewRolled(t, st, "two", "source-vf")

	stats, err := st.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats[shorts.StatusRolled] != 2 {
		t.Fatalf("expected 2 rolled, got %d", stats[shorts.StatusRolled])
	}
	if count, ok := stats[shorts.StatusPublished]; !ok || count != 0 {
		t.Fatalf("expected zero entry for published, got %d (present=%v)", count, ok)
	}
}

func TestActorUpsertAndList(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.SeedActor(t, st, "vid", shorts.RoleVideaste)

	updated := shorts.Actor{ID: "vid", Name: "Vincent", Role: shorts.RoleVideaste, NotifyOptOut: true}
	if err := st.UpsertActor(context.Background(), updated); err != nil {
		t.Fatalf("UpsertActor: %v", err)
	}

	actor, err := st.GetActor(context.Background(), "vid")
	if err != nil {
		t.Fatalf("GetActor: %v", err)
	}
	if actor.Name != "Vincent" || !actor.NotifyOptOut {
		t.Fatalf("unexpected actor: %+v", actor)
	}

	if err := st.UpsertActor(context.Background(), shorts.Actor{ID: "x", Role: "producer"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for bad role, got %v", err)
	}
}

func TestChannelUpsertValidation(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	bad := shorts.Channel{ID: "c", Name: "c", ContentType: shorts.ContentType{Language: "en", Edit: shorts.EditSans}}
	if err := st.UpsertChannel(context.Background(), bad); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	good := testsupport.SeedChannel(t, st, "c", vf(shorts.EditAvec))
	channels, err := st.ListChannels(context.Background())
	if err != nil {
		t.Fatalf("ListChannels: %v", err)
	}
	if len(channels) != 1 || channels[0] != good {
		t.Fatalf("unexpected channels: %+v", channels)
	}
}
