package testsupport

import (
	"context"
	"testing"

	"podpull/internal/config"
	"podpull/internal/store"
)

// MustOpenStore opens an episode store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg.Paths.DBPath)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// SaveEpisode upserts an episode for tests using the provided store.
func SaveEpisode(t testing.TB, st *store.Store, ep *store.Episode) {
	t.Helper()

	if err := st.Upsert(context.Background(), ep); err != nil {
		t.Fatalf("store.Upsert: %v", err)
	}
}
