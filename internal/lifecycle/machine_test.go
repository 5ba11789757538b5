package lifecycle_test

import (
	"errors"
	"testing"
	"time"

	"shorttrack/internal/lifecycle"
	"shorttrack/internal/shorts"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func admin() shorts.Actor {
	return shorts.Actor{ID: "admin-1", Name: "Ana", Role: shorts.RoleAdmin}
}

func assistant() shorts.Actor {
	return shorts.Actor{ID: "assist-1", Name: "Bela", Role: shorts.RoleAssistant}
}

func videaste() shorts.Actor {
	return shorts.Actor{ID: "vid-1", Name: "Chris", Role: shorts.RoleVideaste}
}

func rolledItem() *shorts.Item {
	return &shorts.Item{
		ID:     "item-1",
		Title:  "Morning Routine",
		Status: shorts.StatusRolled,
		SourceChannel: shorts.Channel{
			ID:          "src-1",
			Name:        "Source VF",
			ContentType: shorts.ContentType{Language: shorts.LanguageVF, Edit: shorts.EditAvec},
		},
		CreatedAt: testNow.Add(-time.Hour),
	}
}

func assignedItem() *shorts.Item {
	item := rolledItem()
	deadline := testNow.Add(24 * time.Hour)
	assignedAt := testNow.Add(-30 * time.Minute)
	item.Status = shorts.StatusAssigned
	item.TargetChannel = &shorts.Channel{
		ID:          "pub-1",
		Name:        "Publication VF",
		ContentType: shorts.ContentType{Language: shorts.LanguageVF, Edit: shorts.EditSans},
	}
	item.AssignedToID = "vid-1"
	item.AssignedByID = "admin-1"
	item.Deadline = &deadline
	item.AssignedAt = &assignedAt
	return item
}

func completedItem() *shorts.Item {
	item := assignedItem()
	completedAt := testNow.Add(-10 * time.Minute)
	item.Status = shorts.StatusCompleted
	item.File = &shorts.FileRef{ID: "blob-1", Name: "short.mp4", Size: 1 << 20, MIMEType: "video/mp4"}
	item.CompletedAt = &completedAt
	item.UploadedAt = &completedAt
	return item
}

func assignInput(target shorts.ContentType) lifecycle.Input {
	deadline := testNow.Add(24 * time.Hour)
	return lifecycle.Input{
		TargetChannel: &shorts.Channel{ID: "pub-1", Name: "Publication", ContentType: target},
		AssigneeID:    "vid-1",
		Deadline:      &deadline,
	}
}

func TestRetainRequiresCuratorRole(t *testing.T) {
	item := rolledItem()
	if _, err := lifecycle.ApplyTransition(item, shorts.StatusRetained, videaste(), lifecycle.Input{}, testNow); err == nil {
		t.Fatal("expected videaste retain to fail")
	} else {
		var forbidden *lifecycle.ForbiddenTransitionError
		if !errors.As(err, &forbidden) {
			t.Fatalf("expected ForbiddenTransitionError, got %T", err)
		}
	}

	decision, err := lifecycle.ApplyTransition(item, shorts.StatusRetained, assistant(), lifecycle.Input{}, testNow)
	if err != nil {
		t.Fatalf("assistant retain failed: %v", err)
	}
	if decision.Update.Status == nil || *decision.Update.Status != shorts.StatusRetained {
		t.Fatalf("unexpected update: %+v", decision.Update)
	}
	if len(decision.Effects) != 0 {
		t.Fatalf("retain must not produce effects, got %d", len(decision.Effects))
	}
}

func TestDiscardFromRolledAndRetained(t *testing.T) {
	for _, from := range []shorts.Status{shorts.StatusRolled, shorts.StatusRetained} {
		item := rolledItem()
		item.Status = from
		decision, err := lifecycle.ApplyTransition(item, shorts.StatusRejected, assistant(), lifecycle.Input{}, testNow)
		if err != nil {
			t.Fatalf("discard from %s failed: %v", from, err)
		}
		if len(decision.Effects) != 0 {
			t.Fatalf("discard from %s must not produce effects", from)
		}
		decision.ApplyTo(item)
		if err := item.Validate(); err != nil {
			t.Fatalf("invariants broken after discard: %v", err)
		}
	}
}

func TestAssignCompatibleChannel(t *testing.T) {
	item := rolledItem()
	item.Status = shorts.StatusRetained

	input := assignInput(shorts.ContentType{Language: shorts.LanguageVF, Edit: shorts.EditSans})
	decision, err := lifecycle.ApplyTransition(item, shorts.StatusAssigned, admin(), input, testNow)
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if decision.Update.AssignedAt == nil || !decision.Update.AssignedAt.Equal(testNow) {
		t.Fatalf("expected assignedAt %s, got %v", testNow, decision.Update.AssignedAt)
	}
	if len(decision.Effects) != 1 {
		t.Fatalf("expected exactly one effect, got %d", len(decision.Effects))
	}
	notify, ok := decision.Effects[0].(lifecycle.NotifyUser)
	if !ok {
		t.Fatalf("expected NotifyUser effect, got %T", decision.Effects[0])
	}
	if notify.UserID != "vid-1" || notify.Kind != lifecycle.NotifyAssigned {
		t.Fatalf("unexpected notify effect: %+v", notify)
	}

	decision.ApplyTo(item)
	if err := item.Validate(); err != nil {
		t.Fatalf("invariants broken after assign: %v", err)
	}
	if item.Deadline == nil || item.TargetChannel == nil {
		t.Fatal("deadline and target channel must be set together")
	}
}

func TestAssignCrossLanguageFails(t *testing.T) {
	item := rolledItem()
	item.Status = shorts.StatusRetained

	input := assignInput(shorts.ContentType{Language: shorts.LanguageVA, Edit: shorts.EditSans})
	_, err := lifecycle.ApplyTransition(item, shorts.StatusAssigned, admin(), input, testNow)
	var incompatible *lifecycle.IncompatibleChannelError
	if !errors.As(err, &incompatible) {
		t.Fatalf("expected IncompatibleChannelError, got %v", err)
	}
	if incompatible.SourceType.Language != shorts.LanguageVF || incompatible.TargetType.Language != shorts.LanguageVA {
		t.Fatalf("error lacks type context: %+v", incompatible)
	}
	if item.TargetChannel != nil || item.Deadline != nil {
		t.Fatal("failed assign must not mutate the snapshot")
	}
}

func TestAssignGuards(t *testing.T) {
	base := func() *shorts.Item {
		item := rolledItem()
		item.Status = shorts.StatusRetained
		return item
	}
	compatible := shorts.ContentType{Language: shorts.LanguageVF, Edit: shorts.EditSans}

	t.Run("assistant may not assign", func(t *testing.T) {
		_, err := lifecycle.ApplyTransition(base(), shorts.StatusAssigned, assistant(), assignInput(compatible), testNow)
		var forbidden *lifecycle.ForbiddenTransitionError
		if !errors.As(err, &forbidden) {
			t.Fatalf("expected ForbiddenTransitionError, got %v", err)
		}
	})

	t.Run("missing deadline", func(t *testing.T) {
		input := assignInput(compatible)
		input.Deadline = nil
		_, err := lifecycle.ApplyTransition(base(), shorts.StatusAssigned, admin(), input, testNow)
		var missing *lifecycle.MissingInputError
		if !errors.As(err, &missing) || missing.Field != "deadline" {
			t.Fatalf("expected missing-deadline error, got %v", err)
		}
	})

	t.Run("deadline in the past", func(t *testing.T) {
		input := assignInput(compatible)
		past := testNow.Add(-time.Minute)
		input.Deadline = &past
		_, err := lifecycle.ApplyTransition(base(), shorts.StatusAssigned, admin(), input, testNow)
		var pastErr *lifecycle.PastDeadlineError
		if !errors.As(err, &pastErr) {
			t.Fatalf("expected PastDeadlineError, got %v", err)
		}
	})

	t.Run("deadline equal to now is accepted", func(t *testing.T) {
		input := assignInput(compatible)
		at := testNow
		input.Deadline = &at
		if _, err := lifecycle.ApplyTransition(base(), shorts.StatusAssigned, admin(), input, testNow); err != nil {
			t.Fatalf("deadline == now should pass the guard: %v", err)
		}
	})

	t.Run("assign from rolled is invalid", func(t *testing.T) {
		_, err := lifecycle.ApplyTransition(rolledItem(), shorts.StatusAssigned, admin(), assignInput(compatible), testNow)
		var invalid *lifecycle.InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidTransitionError, got %v", err)
		}
	})
}

func TestStartRequiresAssignee(t *testing.T) {
	item := assignedItem()

	other := shorts.Actor{ID: "vid-2", Role: shorts.RoleVideaste}
	if _, err := lifecycle.ApplyTransition(item, shorts.StatusInProgress, other, lifecycle.Input{}, testNow); err == nil {
		t.Fatal("expected foreign videaste start to fail")
	}

	decision, err := lifecycle.ApplyTransition(item, shorts.StatusInProgress, videaste(), lifecycle.Input{}, testNow)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(decision.Effects) != 0 {
		t.Fatal("start must not produce effects")
	}
}

func TestCompleteRequiresUploadedFile(t *testing.T) {
	item := assignedItem()
	item.Status = shorts.StatusInProgress

	_, err := lifecycle.ApplyTransition(item, shorts.StatusCompleted, videaste(), lifecycle.Input{}, testNow)
	var missing *lifecycle.MissingInputError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingInputError, got %v", err)
	}

	file := &shorts.FileRef{ID: "blob-1", Name: "short.mp4", Size: 2048, MIMEType: "video/mp4"}
	decision, err := lifecycle.ApplyTransition(item, shorts.StatusCompleted, videaste(), lifecycle.Input{File: file}, testNow)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if decision.Update.CompletedAt == nil || decision.Update.UploadedAt == nil {
		t.Fatal("expected completedAt and uploadedAt to be set")
	}
	notify, ok := decision.Effects[0].(lifecycle.NotifyUser)
	if !ok || notify.UserID != "admin-1" || notify.Kind != lifecycle.NotifyCompleted {
		t.Fatalf("expected completion notification to the assigning admin, got %+v", decision.Effects[0])
	}

	decision.ApplyTo(item)
	if err := item.Validate(); err != nil {
		t.Fatalf("invariants broken after complete: %v", err)
	}
}

func TestRejectAfterReview(t *testing.T) {
	t.Run("empty feedback fails", func(t *testing.T) {
		_, err := lifecycle.ApplyTransition(completedItem(), shorts.StatusRejected, admin(), lifecycle.Input{Feedback: "   "}, testNow)
		var missing *lifecycle.MissingFeedbackError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingFeedbackError, got %v", err)
		}
	})

	t.Run("with feedback and delete flag", func(t *testing.T) {
		item := completedItem()
		input := lifecycle.Input{Feedback: "cut is too long", DeleteFile: true}
		decision, err := lifecycle.ApplyTransition(item, shorts.StatusRejected, admin(), input, testNow)
		if err != nil {
			t.Fatalf("reject failed: %v", err)
		}
		var deletes, notifies int
		for _, effect := range decision.Effects {
			switch e := effect.(type) {
			case lifecycle.DeleteBlob:
				deletes++
				if e.File.ID != "blob-1" {
					t.Fatalf("delete effect references wrong blob: %+v", e)
				}
			case lifecycle.NotifyUser:
				notifies++
				if e.UserID != "vid-1" || e.Payload["feedback"] != "cut is too long" {
					t.Fatalf("unexpected notify effect: %+v", e)
				}
			}
		}
		if deletes != 1 || notifies != 1 {
			t.Fatalf("expected one DeleteBlob and one NotifyUser, got %d/%d", deletes, notifies)
		}
		decision.ApplyTo(item)
		if item.File != nil {
			t.Fatal("delete flag must clear the file reference")
		}
	})

	t.Run("keeps file without delete flag", func(t *testing.T) {
		item := completedItem()
		decision, err := lifecycle.ApplyTransition(item, shorts.StatusRejected, admin(), lifecycle.Input{Feedback: "redo audio"}, testNow)
		if err != nil {
			t.Fatalf("reject failed: %v", err)
		}
		decision.ApplyTo(item)
		if item.File == nil {
			t.Fatal("file must survive rejection without the delete flag")
		}
		if err := item.Validate(); err != nil {
			t.Fatalf("invariants broken after reject: %v", err)
		}
	})

	t.Run("videaste may not reject", func(t *testing.T) {
		_, err := lifecycle.ApplyTransition(completedItem(), shorts.StatusRejected, videaste(), lifecycle.Input{Feedback: "x"}, testNow)
		var forbidden *lifecycle.ForbiddenTransitionError
		if !errors.As(err, &forbidden) {
			t.Fatalf("expected ForbiddenTransitionError, got %v", err)
		}
	})
}

func TestReuploadAfterRejection(t *testing.T) {
	item := completedItem()
	decision, err := lifecycle.ApplyTransition(item, shorts.StatusRejected, admin(), lifecycle.Input{Feedback: "redo ending", DeleteFile: true}, testNow)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	decision.ApplyTo(item)

	newFile := &shorts.FileRef{ID: "blob-2", Name: "short-v2.mp4", Size: 4096, MIMEType: "video/mp4"}
	later := testNow.Add(2 * time.Hour)
	decision, err = lifecycle.ApplyTransition(item, shorts.StatusCompleted, videaste(), lifecycle.Input{File: newFile}, later)
	if err != nil {
		t.Fatalf("re-upload transition failed: %v", err)
	}
	previousTarget := item.TargetChannel.ID
	decision.ApplyTo(item)

	if item.Status != shorts.StatusCompleted {
		t.Fatalf("expected completed, got %s", item.Status)
	}
	if item.AssignedToID != "vid-1" || item.TargetChannel.ID != previousTarget {
		t.Fatal("re-upload must preserve assignment and target channel")
	}
	if item.File == nil || item.File.ID != "blob-2" {
		t.Fatalf("expected new file reference, got %+v", item.File)
	}
	if !item.CompletedAt.Equal(testNow.Add(-10 * time.Minute)) {
		t.Fatal("completedAt must keep its first value")
	}
}

func TestValidateAndPublish(t *testing.T) {
	item := completedItem()
	decision, err := lifecycle.ApplyTransition(item, shorts.StatusValidated, admin(), lifecycle.Input{Feedback: "great pacing"}, testNow)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	notify, ok := decision.Effects[0].(lifecycle.NotifyUser)
	if !ok || notify.UserID != "vid-1" || notify.Kind != lifecycle.NotifyValidated {
		t.Fatalf("expected validation notification to the videaste, got %+v", decision.Effects[0])
	}
	decision.ApplyTo(item)

	decision, err = lifecycle.ApplyTransition(item, shorts.StatusPublished, admin(), lifecycle.Input{}, testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if len(decision.Effects) != 0 {
		t.Fatal("publish must not produce effects")
	}
	decision.ApplyTo(item)
	if item.PublishedAt == nil || !item.PublishedAt.Equal(testNow.Add(time.Hour)) {
		t.Fatalf("expected publishedAt set, got %v", item.PublishedAt)
	}
	if err := item.Validate(); err != nil {
		t.Fatalf("invariants broken after publish: %v", err)
	}
}

func TestIdempotentReapplyIsNoOp(t *testing.T) {
	items := []*shorts.Item{rolledItem(), assignedItem(), completedItem()}
	for _, item := range items {
		decision, err := lifecycle.ApplyTransition(item, item.Status, admin(), lifecycle.Input{}, testNow)
		if err != nil {
			t.Fatalf("re-apply of %s errored: %v", item.Status, err)
		}
		if !decision.NoOp() {
			t.Fatalf("re-apply of %s must be a no-op, got %+v", item.Status, decision)
		}
	}
}

func TestRolledIsNotReachable(t *testing.T) {
	item := assignedItem()
	_, err := lifecycle.ApplyTransition(item, shorts.StatusRolled, admin(), lifecycle.Input{}, testNow)
	var invalid *lifecycle.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	item := rolledItem()
	_, err := lifecycle.ApplyTransition(item, shorts.Status("archived"), admin(), lifecycle.Input{}, testNow)
	var invalid *lifecycle.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}
