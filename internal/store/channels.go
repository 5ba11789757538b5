package store

import (
	"context"
	"fmt"
	"strings"

	"shorttrack/internal/services"
	"shorttrack/internal/shorts"
)

// UpsertChannel inserts or replaces a channel definition.
func (s *Store) UpsertChannel(ctx context.Context, channel shorts.Channel) error {
	channel.ID = strings.TrimSpace(channel.ID)
	if channel.ID == "" {
		return services.Wrap(services.ErrValidation, "store", "upsert channel", "channel id must not be empty", nil)
	}
	if !channel.ContentType.Valid() {
		return services.Wrap(services.ErrValidation, "store", "upsert channel",
			fmt.Sprintf("channel %s has invalid content type %q", channel.ID, channel.ContentType), nil)
	}
	_, err := s.execWithRetry(ctx, `
INSERT INTO channels (id, name, content_type) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, content_type = excluded.content_type`,
		channel.ID, channel.Name, channel.ContentType.String())
	if err != nil {
		return fmt.Errorf("upsert channel: %w", err)
	}
	return nil
}

// GetChannel loads a channel by id.
func (s *Store) GetChannel(ctx context.Context, id string) (*shorts.Channel, error) {
	ctx = ensureContext(ctx)
	var (
		channel shorts.Channel
		rawType string
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, name, content_type FROM channels WHERE id = ?`, id).
		Scan(&channel.ID, &channel.Name, &rawType)
	if isNoRows(err) {
		return nil, services.Wrap(services.ErrNotFound, "store", "get channel", fmt.Sprintf("channel %s not found", id), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("load channel: %w", err)
	}
	channel.ContentType, _ = shorts.ParseContentType(rawType)
	return &channel, nil
}

// ListChannels returns all channels ordered by id.
func (s *Store) ListChannels(ctx context.Context) ([]shorts.Channel, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, content_type FROM channels ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer rows.Close()

	var channels []shorts.Channel
	for rows.Next() {
		var (
			channel shorts.Channel
			rawType string
		)
		if err := rows.Scan(&channel.ID, &channel.Name, &rawType); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channel.ContentType, _ = shorts.ParseContentType(rawType)
		channels = append(channels, channel)
	}
	return channels, rows.Err()
}
