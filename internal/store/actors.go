package store

import (
	"context"
	"fmt"
	"strings"

	"shorttrack/internal/services"
	"shorttrack/internal/shorts"
)

// UpsertActor inserts or replaces an actor record.
func (s *Store) UpsertActor(ctx context.Context, actor shorts.Actor) error {
	actor.ID = strings.TrimSpace(actor.ID)
	if actor.ID == "" {
		return services.Wrap(services.ErrValidation, "store", "upsert actor", "actor id must not be empty", nil)
	}
	if !actor.Role.Valid() {
		return services.Wrap(services.ErrValidation, "store", "upsert actor",
			fmt.Sprintf("actor %s has invalid role %q", actor.ID, actor.Role), nil)
	}
	_, err := s.execWithRetry(ctx, `
INSERT INTO actors (id, name, role, notify_opt_out) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, role = excluded.role, notify_opt_out = excluded.notify_opt_out`,
		actor.ID, actor.Name, string(actor.Role), boolToInt(actor.NotifyOptOut))
	if err != nil {
		return fmt.Errorf("upsert actor: %w", err)
	}
	return nil
}

// GetActor loads an actor by id.
func (s *Store) GetActor(ctx context.Context, id string) (*shorts.Actor, error) {
	ctx = ensureContext(ctx)
	var (
		actor   shorts.Actor
		rawRole string
		optOut  int
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, name, role, notify_opt_out FROM actors WHERE id = ?`, id).
		Scan(&actor.ID, &actor.Name, &rawRole, &optOut)
	if isNoRows(err) {
		return nil, services.Wrap(services.ErrNotFound, "store", "get actor", fmt.Sprintf("actor %s not found", id), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("load actor: %w", err)
	}
	actor.Role = shorts.Role(rawRole)
	actor.NotifyOptOut = optOut != 0
	return &actor, nil
}

// ListActors returns all actors ordered by id.
func (s *Store) ListActors(ctx context.Context) ([]shorts.Actor, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, role, notify_opt_out FROM actors ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	var actors []shorts.Actor
	for rows.Next() {
		var (
			actor   shorts.Actor
			rawRole string
			optOut  int
		)
		if err := rows.Scan(&actor.ID, &actor.Name, &rawRole, &optOut); err != nil {
			return nil, fmt.Errorf("scan actor: %w", err)
		}
		actor.Role = shorts.Role(rawRole)
		actor.NotifyOptOut = optOut != 0
		actors = append(actors, actor)
	}
	return actors, rows.Err()
}
