package testsupport

import (
	"context"
	"testing"

	"filmlog/internal/config"
	"filmlog/internal/watchlist"
)

// MustOpenStore opens a watchlist.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *watchlist.Store {
	t.Helper()

	store, err := watchlist.Open(cfg)
	if err != nil {
		t.Fatalf("watchlist.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustAdd inserts an entry for tests and fails the test on error.
func MustAdd(t testing.TB, store *watchlist.Store, userID, catalogID int64, title, mediaKind string) bool {
	t.Helper()

	created, err := store.Add(context.Background(), userID, catalogID, title, mediaKind, "")
	if err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return created
}
