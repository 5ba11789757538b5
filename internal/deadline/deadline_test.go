package deadline_test

import (
	"testing"
	"time"

	"shorttrack/internal/deadline"
	"shorttrack/internal/shorts"
)

func TestIsLateStrictComparison(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	due := now
	if deadline.IsLate(&due, shorts.StatusInProgress, now) {
		t.Fatal("deadline equal to now must not be late")
	}

	past := now.Add(-time.Second)
	if !deadline.IsLate(&past, shorts.StatusInProgress, now) {
		t.Fatal("deadline one second past must be late")
	}
}

func TestIsLateIgnoresDeliveredStatuses(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)

	for _, status := range []shorts.Status{shorts.StatusCompleted, shorts.StatusValidated, shorts.StatusPublished} {
		if deadline.IsLate(&past, status, now) {
			t.Fatalf("status %s must never be late", status)
		}
	}
	for _, status := range []shorts.Status{shorts.StatusAssigned, shorts.StatusInProgress, shorts.StatusRejected} {
		if !deadline.IsLate(&past, status, now) {
			t.Fatalf("status %s with past deadline must be late", status)
		}
	}
}

func TestIsLateMonotonicUntilDelivered(t *testing.T) {
	due := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	first := due.Add(time.Minute)

	for _, later := range []time.Time{first, first.Add(time.Hour), first.Add(240 * time.Hour)} {
		if !deadline.IsLate(&due, shorts.StatusInProgress, later) {
			t.Fatalf("lateness regressed at %s", later)
		}
	}
	if deadline.IsLate(&due, shorts.StatusCompleted, first.Add(time.Hour)) {
		t.Fatal("completion must clear lateness")
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{"three days ahead", now.Add(72 * time.Hour), 3},
		{"partial day truncates", now.Add(36 * time.Hour), 1},
		{"same instant", now, 0},
		{"two days past", now.Add(-49 * time.Hour), -2},
	}
	for _, tc := range cases {
		if got := deadline.DaysUntil(tc.deadline, now); got != tc.want {
			t.Fatalf("%s: DaysUntil = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestApproachingWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	inWindow := now.Add(12 * time.Hour)
	if !deadline.Approaching(&inWindow, shorts.StatusAssigned, now, window) {
		t.Fatal("deadline inside window should be approaching")
	}
	beyond := now.Add(48 * time.Hour)
	if deadline.Approaching(&beyond, shorts.StatusAssigned, now, window) {
		t.Fatal("deadline beyond window should not be approaching")
	}
	past := now.Add(-time.Hour)
	if deadline.Approaching(&past, shorts.StatusAssigned, now, window) {
		t.Fatal("late deadline should not be approaching")
	}
	late := now.Add(time.Hour)
	if deadline.Approaching(&late, shorts.StatusCompleted, now, window) {
		t.Fatal("delivered item should not be approaching")
	}
}
