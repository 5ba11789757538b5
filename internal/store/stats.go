package store

import (
	"context"
	"fmt"

	"shorttrack/internal/shorts"
)

// Stats returns item counts keyed by status. Statuses with no items are
// present with a zero count so callers can render the full pipeline.
func (s *Store) Stats(ctx context.Context) (map[shorts.Status]int, error) {
	ctx = ensureContext(ctx)
	counts := make(map[shorts.Status]int, len(shorts.AllStatuses()))
	for _, status := range shorts.AllStatuses() {
		counts[status] = 0
	}

	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM shorts GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			raw   string
			count int
		)
		if err := rows.Scan(&raw, &count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		counts[shorts.Status(raw)] = count
	}
	return counts, rows.Err()
}
