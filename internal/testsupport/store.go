package testsupport

import (
	"context"
	"testing"

	"shorttrack/internal/config"
	"shorttrack/internal/shorts"
	"shorttrack/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// SeedChannel registers a channel for tests.
func SeedChannel(t testing.TB, st *store.Store, id string, contentType shorts.ContentType) shorts.Channel {
	t.Helper()

	channel := shorts.Channel{ID: id, Name: id, ContentType: contentType}
	if err := st.UpsertChannel(context.Background(), channel); err != nil {
		t.Fatalf("store.UpsertChannel: %v", err)
	}
	return channel
}

// SeedActor registers an actor for tests.
func SeedActor(t testing.TB, st *store.Store, id string, role shorts.Role) shorts.Actor {
	t.Helper()

	actor := shorts.Actor{ID: id, Name: id, Role: role}
	if err := st.UpsertActor(context.Background(), actor); err != nil {
		t.Fatalf("store.UpsertActor: %v", err)
	}
	return actor
}

// NewRolled creates a rolled item for tests using the provided store.
func NewRolled(t testing.TB, st *store.Store, title, sourceChannelID string) *shorts.Item {
	t.Helper()

	item, err := st.CreateRolled(context.Background(), title, sourceChannelID, "")
	if err != nil {
		t.Fatalf("store.CreateRolled: %v", err)
	}
	return item
}
