package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shorttrack/internal/services"
	"shorttrack/internal/shorts"
)

// AddComment appends a comment to an item. Comments are immutable and never
// alter item state.
func (s *Store) AddComment(ctx context.Context, itemID, authorID, body string) (*shorts.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, services.Wrap(services.ErrValidation, "store", "comment", "comment body must not be empty", nil)
	}
	if _, err := s.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	author, err := s.GetActor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := s.execWithRetry(ctx, `
INSERT INTO comments (item_id, author_id, body, created_at) VALUES (?, ?, ?, ?)`,
		itemID, authorID, body, now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &shorts.Comment{
		ID:         id,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Body:       body,
		CreatedAt:  now,
	}, nil
}

// CommentsForItem returns an item's comments oldest first.
func (s *Store) CommentsForItem(ctx context.Context, itemID string) ([]shorts.Comment, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
SELECT c.id, c.item_id, c.author_id, a.name, c.body, c.created_at
FROM comments c
JOIN actors a ON a.id = c.author_id
WHERE c.item_id = ?
ORDER BY c.id ASC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []shorts.Comment
	for rows.Next() {
		var (
			comment    shorts.Comment
			createdRaw string
		)
		if err := rows.Scan(&comment.ID, &comment.ItemID, &comment.AuthorID, &comment.AuthorName, &comment.Body, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if created, err := parseTimeString(createdRaw); err == nil {
			comment.CreatedAt = created
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}
