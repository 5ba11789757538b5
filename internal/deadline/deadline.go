// Package deadline derives lateness from an item's deadline and status.
// Lateness is never stored; callers recompute it on every read with a
// single clock sample so repeated checks within one request agree.
package deadline

import (
	"time"

	"shorttrack/internal/shorts"
)

// Clock supplies the current time. Production code uses SystemClock; tests
// inject fixed clocks.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.Instant
}

// DaysUntil returns whole days remaining before the deadline, truncated
// toward zero. Past deadlines yield negative values.
func DaysUntil(deadline, now time.Time) int {
	return int(deadline.Sub(now) / (24 * time.Hour))
}

// IsLate reports whether an undelivered item has passed its deadline.
// A deadline equal to now is not yet late.
func IsLate(deadline *time.Time, status shorts.Status, now time.Time) bool {
	if deadline == nil || status.Delivered() {
		return false
	}
	return now.After(*deadline)
}

// Approaching reports whether an undelivered item's deadline falls within
// the given window. Items already late are not "approaching".
func Approaching(deadline *time.Time, status shorts.Status, now time.Time, window time.Duration) bool {
	if deadline == nil || status.Delivered() {
		return false
	}
	remaining := deadline.Sub(now)
	return remaining >= 0 && remaining <= window
}
