package shorts_test

import (
	"testing"
	"time"

	"shorttrack/internal/shorts"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		input string
		want  shorts.Status
		ok    bool
	}{
		{"rolled", shorts.StatusRolled, true},
		{"  In_Progress ", shorts.StatusInProgress, true},
		{"published", shorts.StatusPublished, true},
		{"", "", false},
		{"archived", "", false},
	}
	for _, tc := range cases {
		got, ok := shorts.ParseStatus(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseStatus(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseContentType(t *testing.T) {
	ct, ok := shorts.ParseContentType("vf_avec_edit")
	if !ok || ct.Language != shorts.LanguageVF || ct.Edit != shorts.EditAvec {
		t.Fatalf("unexpected parse result: %v %v", ct, ok)
	}
	if ct.String() != "vf_avec_edit" {
		t.Fatalf("round trip mismatch: %s", ct)
	}

	for _, bad := range []string{"", "vf", "en_sans_edit", "vf_remix", "vf_"} {
		if _, ok := shorts.ParseContentType(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestAllContentTypesCoversGrid(t *testing.T) {
	types := shorts.AllContentTypes()
	if len(types) != 6 {
		t.Fatalf("expected 6 content types, got %d", len(types))
	}
	seen := make(map[shorts.ContentType]struct{}, len(types))
	for _, ct := range types {
		if !ct.Valid() {
			t.Fatalf("invalid content type in grid: %v", ct)
		}
		seen[ct] = struct{}{}
	}
	if len(seen) != 6 {
		t.Fatal("content type grid contains duplicates")
	}
}

func TestItemValidateTargetDeadlinePairing(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(24 * time.Hour)

	item := &shorts.Item{
		ID:     "item-1",
		Status: shorts.StatusRetained,
		SourceChannel: shorts.Channel{
			ID:          "src",
			ContentType: shorts.ContentType{Language: shorts.LanguageVO, Edit: shorts.EditSans},
		},
	}
	if err := item.Validate(); err != nil {
		t.Fatalf("retained item should validate: %v", err)
	}

	item.Deadline = &deadline
	if err := item.Validate(); err == nil {
		t.Fatal("deadline without target channel must fail validation")
	}

	item.TargetChannel = &shorts.Channel{
		ID:          "pub",
		ContentType: shorts.ContentType{Language: shorts.LanguageVO, Edit: shorts.EditAvec},
	}
	item.Deadline = nil
	if err := item.Validate(); err == nil {
		t.Fatal("target channel without deadline must fail validation")
	}
}

func TestItemValidateFilePlacement(t *testing.T) {
	item := &shorts.Item{
		ID:     "item-2",
		Status: shorts.StatusRetained,
		SourceChannel: shorts.Channel{
			ID:          "src",
			ContentType: shorts.ContentType{Language: shorts.LanguageVA, Edit: shorts.EditSans},
		},
		File: &shorts.FileRef{ID: "blob", Name: "x.mp4"},
	}
	if err := item.Validate(); err == nil {
		t.Fatal("retained item must not carry a file")
	}

	completedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	deadline := completedAt.Add(24 * time.Hour)
	item.Status = shorts.StatusRejected
	item.CompletedAt = &completedAt
	item.TargetChannel = &shorts.Channel{
		ID:          "pub",
		ContentType: shorts.ContentType{Language: shorts.LanguageVA, Edit: shorts.EditAvec},
	}
	item.Deadline = &deadline
	if err := item.Validate(); err != nil {
		t.Fatalf("rejected-after-completion may retain its file: %v", err)
	}
	item.AssignedToID = "vid"
	if !item.CanReupload() {
		t.Fatal("rejected item with prior completion should allow re-upload")
	}
}
