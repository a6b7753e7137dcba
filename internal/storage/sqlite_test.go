package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	ended := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	id, err := store.SaveRun(Run{
		Seed:      42,
		Preset:    "hard",
		Lines:     12,
		Pieces:    61,
		SpeedUps:  3,
		Duration:  95 * time.Second,
		CreatedAt: ended,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() id %q is not a uuid: %v", id, err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	if got.Seed != 42 || got.Preset != "hard" || got.Lines != 12 || got.Pieces != 61 || got.SpeedUps != 3 {
		t.Errorf("RunByID() = %+v", *got)
	}
	if got.Player != "local" {
		t.Errorf("Player = %q, expected local", got.Player)
	}
	if got.Duration != 95*time.Second {
		t.Errorf("Duration = %v, expected 1m35s", got.Duration)
	}
	if !got.CreatedAt.Equal(ended) {
		t.Errorf("CreatedAt = %v, expected %v", got.CreatedAt, ended)
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %v, %v; expected nil, nil", missing, err)
	}
}

func TestStoreSaveRunRejectsBadID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{ID: "not-a-uuid"}); err == nil {
		t.Error("SaveRun() with a malformed id expected error")
	}
	id := uuid.NewString()
	got, err := store.SaveRun(Run{ID: id})
	if err != nil || got != id {
		t.Errorf("SaveRun() = %q, %v; expected %q", got, err, id)
	}
	if _, err := store.SaveRun(Run{ID: id}); err == nil {
		t.Error("SaveRun() duplicate id expected error")
	}
}

func TestStoreBestRuns(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	runs := []Run{
		{Seed: 1, Lines: 5, Pieces: 30},
		{Seed: 2, Lines: 20, Pieces: 90},
		{Seed: 3, Lines: 20, Pieces: 80},
		{Seed: 4, Lines: 0, Pieces: 9},
		{Seed: 5, Lines: 8, Pieces: 40},
	}
	for i, r := range runs {
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	best, err := store.BestRuns(3)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(best))
	}
	// Equal lines: fewer pieces ranks higher
	wantSeeds := []int64{3, 2, 5}
	for i, want := range wantSeeds {
		if best[i].Seed != want {
			t.Errorf("best[%d].Seed = %d, expected %d", i, best[i].Seed, want)
		}
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		if _, err := store.SaveRun(Run{Seed: int64(i), CreatedAt: base.Add(time.Duration(i) * time.Second)}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 20 {
		t.Errorf("Expected default limit of 20, got %d", len(recent))
	}
	if recent[0].Seed != 24 || recent[19].Seed != 5 {
		t.Errorf("RecentRuns() order: first %d, last %d", recent[0].Seed, recent[19].Seed)
	}
}

func TestStorePlayerRunsAndTotals(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Totals()
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	if empty != (Totals{}) {
		t.Errorf("Totals() on empty store = %+v", empty)
	}

	store.SaveRun(Run{Player: "alice", Lines: 4, Pieces: 20, Duration: time.Minute})
	store.SaveRun(Run{Player: "bob", Lines: 9, Pieces: 35, Duration: 2 * time.Minute})
	store.SaveRun(Run{Player: "alice", Lines: 1, Pieces: 12, Duration: 30 * time.Second})

	alice, err := store.PlayerRuns("alice")
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(alice) != 2 {
		t.Errorf("Expected 2 runs for alice, got %d", len(alice))
	}

	totals, err := store.Totals()
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	want := Totals{Runs: 3, Lines: 14, Pieces: 67, BestLines: 9, PlayTime: 3*time.Minute + 30*time.Second}
	if totals != want {
		t.Errorf("Totals() = %+v, expected %+v", totals, want)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(Run{Lines: 1})
	store.SaveRun(Run{Lines: 2})

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ := store.RecentRuns(10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/nested/deep/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, "nested", "deep", "test.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under the home directory")
	}
}

func TestBestRunsIndexMatchesRanking(t *testing.T) {
	store := openTestStore(t)

	var sql string
	err := store.db.QueryRow(`SELECT sql FROM sqlite_master WHERE type = 'index' AND name = 'idx_runs_ranking'`).Scan(&sql)
	if err != nil {
		t.Fatalf("reading idx_runs_ranking failed: %v", err)
	}
	if !strings.Contains(sql, "lines DESC, pieces ASC") {
		t.Errorf("idx_runs_ranking = %q, expected lines DESC, pieces ASC", sql)
	}
}
