package testsupport

import (
	"context"
	"testing"

	"stardate/internal/config"
	"stardate/internal/stardate"
	"stardate/internal/store"
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

// SaveRun persists records as a new run and returns it.
func SaveRun(t testing.TB, st *store.Store, records []stardate.Record, stats stardate.Stats) *store.Run {
	t.Helper()

	run, err := st.SaveRun(context.Background(), store.RunInput{
		ScriptsDir: "/scripts",
		Stats:      stats,
	}, records)
	if err != nil {
		t.Fatalf("store.SaveRun: %v", err)
	}
	return run
}
