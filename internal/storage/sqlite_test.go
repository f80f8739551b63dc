package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

func mustSave(t *testing.T, store *Store, r LevelResult) {
	t.Helper()
	if _, err := store.SaveResult(r); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndTopResults(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, LevelResult{LevelID: "lvl01", Outcome: OutcomeWon, Score: 300, Moves: 12, Matches: 31, Duration: 45 * time.Second})
	mustSave(t, store, LevelResult{LevelID: "lvl01", Outcome: OutcomeLost, Score: 120, Moves: 20, Matches: 14})
	mustSave(t, store, LevelResult{LevelID: "lvl01", Outcome: OutcomeWon, Score: 450, Moves: 9, Matches: 33})
	mustSave(t, store, LevelResult{LevelID: "lvl02", Outcome: OutcomeLost, Score: 90})

	results, err := store.TopResults("lvl01", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if results[0].Score != 450 || results[1].Score != 300 || results[2].Score != 120 {
		t.Errorf("Results not sorted by score: %+v", results)
	}
	if !results[1].Won() || results[2].Won() {
		t.Error("Outcome not preserved")
	}
	if results[1].Duration != 45*time.Second || results[1].Moves != 12 || results[1].Matches != 31 {
		t.Errorf("Fields not preserved: %+v", results[1])
	}
	if results[0].CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}

	limited, err := store.TopResults("lvl01", 2)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 results with limit, got %d", len(limited))
	}
}

func TestStoreRejectsBadResults(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name string
		r    LevelResult
	}{
		{"no level", LevelResult{Outcome: OutcomeWon}},
		{"no outcome", LevelResult{LevelID: "lvl01"}},
		{"unknown outcome", LevelResult{LevelID: "lvl01", Outcome: "draw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.SaveResult(tt.r); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	score, err := store.BestScore("lvl01")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected 0 for an unplayed level, got %d", score)
	}

	mustSave(t, store, LevelResult{LevelID: "lvl01", Outcome: OutcomeLost, Score: 500})
	mustSave(t, store, LevelResult{LevelID: "lvl01", Outcome: OutcomeWon, Score: 200})

	score, err = store.BestScore("lvl01")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if score != 500 {
		t.Errorf("Expected best score 500, got %d", score)
	}
}

func TestStoreRecentResults(t *testing.T) {
	store := openTestStore(t)

	for i, id := range []string{"lvl01", "lvl02", "lvl03"} {
		mustSave(t, store, LevelResult{LevelID: id, Outcome: OutcomeLost, Score: i})
	}

	recent, err := store.RecentResults(2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(recent))
	}
	if recent[0].LevelID != "lvl03" || recent[1].LevelID != "lvl02" {
		t.Errorf("Expected newest first, got %s, %s", recent[0].LevelID, recent[1].LevelID)
	}
}

func TestStoreWinCountsAndStats(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, LevelResult{LevelID: "lvl01", Outcome: OutcomeWon, Score: 300, Moves: 14})
	mustSave(t, store, LevelResult{LevelID: "lvl01", Outcome: OutcomeWon, Score: 250, Moves: 11})
	mustSave(t, store, LevelResult{LevelID: "lvl01", Outcome: OutcomeLost, Score: 400, Moves: 5})
	mustSave(t, store, LevelResult{LevelID: "lvl02", Outcome: OutcomeLost, Score: 80})

	wins, err := store.WinCounts()
	if err != nil {
		t.Fatalf("WinCounts() failed: %v", err)
	}
	if wins["lvl01"] != 2 {
		t.Errorf("Expected 2 wins on lvl01, got %d", wins["lvl01"])
	}
	if _, ok := wins["lvl02"]; ok {
		t.Error("lvl02 was never won")
	}

	stats, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(stats))
	}

	s1 := stats["lvl01"]
	if s1.Attempts != 3 || s1.Wins != 2 || s1.BestScore != 400 || s1.FewestWinMoves != 11 {
		t.Errorf("Unexpected lvl01 stats: %+v", s1)
	}
	if rate := s1.WinRate(); rate < 0.66 || rate > 0.67 {
		t.Errorf("Expected win rate 2/3, got %f", rate)
	}

	s2 := stats["lvl02"]
	if s2.Wins != 0 || s2.FewestWinMoves != 0 || s2.WinRate() != 0 {
		t.Errorf("Unexpected lvl02 stats: %+v", s2)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, LevelResult{LevelID: "lvl01", Outcome: OutcomeWon, Score: 100})
	mustSave(t, store, LevelResult{LevelID: "lvl02", Outcome: OutcomeWon, Score: 200})

	if err := store.ClearResults("lvl01"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	results, _ := store.TopResults("lvl01", 10)
	if len(results) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(results))
	}
	results, _ = store.TopResults("lvl02", 10)
	if len(results) != 1 {
		t.Errorf("Expected lvl02 results to survive, got %d", len(results))
	}
}
