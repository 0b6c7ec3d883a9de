package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"stardate/internal/stardate"
	"stardate/internal/store"
	"stardate/internal/testsupport"
)

func sampleRecords() []stardate.Record {
	return []stardate.Record{
		{Episode: 1, Season: 1, Title: "Encounter at Farpoint", Stardate: 41153.7, Decimal: 7},
		{Episode: 1, Season: 1, Title: "Encounter at Farpoint", Stardate: 41174.2, Decimal: 2},
		{Episode: 30, Season: 2, Stardate: 42073.1, Decimal: 1},
	}
}

func TestSaveRunAndReadBack(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	if st.Path() != cfg.DatabasePath() {
		t.Fatalf("unexpected db path %q", st.Path())
	}

	stats := stardate.Stats{Scripts: 176, Lines: 5000, Matches: 5, Sentinels: 1, Unparseable: 1, Records: 3}
	run := testsupport.SaveRun(t, st, sampleRecords(), stats)
	if run.ID == "" {
		t.Fatal("expected generated run id")
	}

	got, err := st.GetRun(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("GetRun returned error: %v", err)
	}
	if diff := cmp.Diff(stats, got.Stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Fatalf("created_at mismatch: got %v want %v", got.CreatedAt, run.CreatedAt)
	}

	records, err := st.Records(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("Records returned error: %v", err)
	}
	if diff := cmp.Diff(sampleRecords(), records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestRunsNewestFirstAndLatest(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if _, err := st.LatestRun(ctx); !errors.Is(err, stardate.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	first, err := st.SaveRun(ctx, store.RunInput{ID: "aaaa-1111", ScriptsDir: "/s"}, nil)
	if err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}
	second, err := st.SaveRun(ctx, store.RunInput{ID: "bbbb-2222", ScriptsDir: "/s", TitlesSource: "cache"}, sampleRecords())
	if err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}

	runs, err := st.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs returned error: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Fatalf("unexpected run order: %+v", runs)
	}
	limited, err := st.Runs(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("Runs(limit=1) = %+v, %v", limited, err)
	}
	latest, err := st.LatestRun(ctx)
	if err != nil || latest.ID != second.ID || latest.TitlesSource != "cache" {
		t.Fatalf("LatestRun = %+v, %v", latest, err)
	}
}

func TestGetRunByPrefix(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	for _, id := range []string{"abc-1", "abd-2"} {
		if _, err := st.SaveRun(ctx, store.RunInput{ID: id}, nil); err != nil {
			t.Fatalf("SaveRun(%s) returned error: %v", id, err)
		}
	}

	run, err := st.GetRun(ctx, "abc")
	if err != nil || run.ID != "abc-1" {
		t.Fatalf("GetRun(prefix) = %+v, %v", run, err)
	}
	if _, err := st.GetRun(ctx, "ab"); err == nil {
		t.Fatal("expected ambiguous prefix error")
	}
	if _, err := st.GetRun(ctx, "zzz"); !errors.Is(err, stardate.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRun(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	run := testsupport.SaveRun(t, st, sampleRecords(), stardate.Stats{Records: 3})

	if err := st.DeleteRun(ctx, run.ID); err != nil {
		t.Fatalf("DeleteRun returned error: %v", err)
	}
	records, err := st.Records(ctx, run.ID)
	if err != nil || len(records) != 0 {
		t.Fatalf("records survived delete: %v, %v", records, err)
	}
	if err := st.DeleteRun(ctx, run.ID); !errors.Is(err, stardate.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	run := testsupport.SaveRun(t, st, sampleRecords(), stardate.Stats{Records: 3})
	if err := st.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	if _, err := reopened.GetRun(context.Background(), run.ID); err != nil {
		t.Fatalf("run lost across reopen: %v", err)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	_ = st.Close()

	db, err := sql.Open("sqlite", cfg.DatabasePath())
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := store.Open(cfg); !errors.Is(err, store.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestLockIsExclusive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lock, err := store.AcquireLock(cfg.LockPath())
	if err != nil {
		t.Fatalf("AcquireLock returned error: %v", err)
	}

	if _, err := store.AcquireLock(cfg.LockPath()); !errors.Is(err, stardate.ErrTransient) {
		t.Fatalf("expected second lock to fail with ErrTransient, got %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}

	again, err := store.AcquireLock(cfg.LockPath())
	if err != nil {
		t.Fatalf("lock not reacquirable: %v", err)
	}
	_ = again.Release()

	var nilLock *store.Lock
	if err := nilLock.Release(); err != nil {
		t.Fatalf("nil Release returned error: %v", err)
	}
}
