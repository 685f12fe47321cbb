package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/game/flappy"
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

func TestStoreHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.flappy/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".flappy", "scores.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}

func TestStoreSaveRound(t *testing.T) {
	store := openTestStore(t)

	saved, err := store.SaveRound(RoundRecord{Mode: "regular", Score: 4, Coins: 6, Total: 10, DurationMs: 12345})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if _, err := uuid.Parse(saved.ID); err != nil {
		t.Errorf("round ID %q is not a UUID: %v", saved.ID, err)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("CreatedAt not filled in")
	}

	rounds, err := store.TopRounds("regular", 10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("got %d rounds, want 1", len(rounds))
	}

	got := rounds[0]
	if got.ID != saved.ID || got.Score != 4 || got.Coins != 6 || got.Total != 10 {
		t.Errorf("round = %+v, want %+v", got, saved)
	}
	if got.Duration() != 12345*time.Millisecond {
		t.Errorf("Duration() = %v", got.Duration())
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, saved.CreatedAt)
	}
}

func TestStoreSaveRoundDuplicateID(t *testing.T) {
	store := openTestStore(t)
	rec := RoundRecord{ID: uuid.NewString(), Mode: "easy", Total: 1}

	if _, err := store.SaveRound(rec); err != nil {
		t.Fatalf("first SaveRound() failed: %v", err)
	}
	if _, err := store.SaveRound(rec); err == nil {
		t.Error("saving the same ID twice should fail")
	}
}

func TestStoreTopRounds(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	totals := []int{100, 300, 200, 300, 50}
	for i, total := range totals {
		_, err := store.SaveRound(RoundRecord{
			Mode:      "insane",
			Total:     total,
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		})
		if err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}
	if _, err := store.SaveRound(RoundRecord{Mode: "easy", Total: 999}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}

	rounds, err := store.TopRounds("insane", 3)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("got %d rounds with limit 3", len(rounds))
	}

	want := []int{300, 300, 200}
	for i, r := range rounds {
		if r.Total != want[i] {
			t.Errorf("rounds[%d].Total = %d, want %d", i, r.Total, want[i])
		}
		if r.Mode != "insane" {
			t.Errorf("rounds[%d] has mode %q", i, r.Mode)
		}
	}
	// Ties go to the earlier round
	if !rounds[0].CreatedAt.Before(rounds[1].CreatedAt) {
		t.Errorf("tie order: %v then %v", rounds[0].CreatedAt, rounds[1].CreatedAt)
	}
}

func TestStoreRecentRounds(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, mode := range []string{"easy", "regular", "insane"} {
		if _, err := store.SaveRound(RoundRecord{Mode: mode, CreatedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	rounds, err := store.RecentRounds(2)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 2 || rounds[0].Mode != "insane" || rounds[1].Mode != "regular" {
		t.Errorf("RecentRounds(2) = %+v", rounds)
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openTestStore(t)

	for _, mode := range []string{"easy", "easy", "regular"} {
		if _, err := store.SaveRound(RoundRecord{Mode: mode, Total: 5}); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}
	if err := store.SaveBest(BestKey, 5); err != nil {
		t.Fatalf("SaveBest() failed: %v", err)
	}

	if err := store.ClearRounds("easy"); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}
	if easy, _ := store.TopRounds("easy", 10); len(easy) != 0 {
		t.Errorf("got %d easy rounds after clear", len(easy))
	}
	if regular, _ := store.TopRounds("regular", 10); len(regular) != 1 {
		t.Error("regular rounds should not be affected by clearing easy")
	}

	if err := store.ClearRounds(""); err != nil {
		t.Fatalf("ClearRounds(all) failed: %v", err)
	}
	if recent, _ := store.RecentRounds(10); len(recent) != 0 {
		t.Errorf("got %d rounds after clearing all", len(recent))
	}

	if best, _ := store.LoadBest(BestKey); best != 5 {
		t.Errorf("best = %d after clearing history, want 5", best)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.LoadBest(BestKey)
	if err != nil {
		t.Fatalf("LoadBest() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("empty best = %d, want 0", best)
	}

	for _, score := range []int{10, 30, 20} {
		if err := store.SaveBest(BestKey, score); err != nil {
			t.Fatalf("SaveBest(%d) failed: %v", score, err)
		}
	}

	best, err = store.LoadBest(BestKey)
	if err != nil {
		t.Fatalf("LoadBest() failed: %v", err)
	}
	if best != 30 {
		t.Errorf("best = %d, want 30 (never lowered)", best)
	}

	if other, _ := store.LoadBest("other"); other != 0 {
		t.Errorf("unrelated key best = %d, want 0", other)
	}
}

func TestBestScoreDrivesMachine(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveBest(BestKey, 7); err != nil {
		t.Fatalf("SaveBest() failed: %v", err)
	}

	m := flappy.NewMachine(config.DefaultFlappyConfig(), flappy.WithBestScoreStore(store.BestScore(BestKey)))
	if m.Best() != 7 {
		t.Errorf("machine best = %d, want 7 from the store", m.Best())
	}
}

func TestNewRoundRecord(t *testing.T) {
	rec := NewRoundRecord(flappy.Summary{
		Mode:    config.ModeInsane,
		Score:   3,
		Coins:   11,
		Total:   14,
		Elapsed: 2500 * time.Millisecond,
	})

	if rec.Mode != "insane" || rec.Score != 3 || rec.Coins != 11 || rec.Total != 14 || rec.DurationMs != 2500 {
		t.Errorf("NewRoundRecord = %+v", rec)
	}
	if rec.ID != "" {
		t.Error("ID should be assigned on save")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	last := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	rounds := []RoundRecord{
		{Mode: "regular", Total: 10, Coins: 4, DurationMs: 1000, CreatedAt: last.Add(-time.Hour)},
		{Mode: "regular", Total: 20, Coins: 6, DurationMs: 3000, CreatedAt: last},
		{Mode: "easy", Total: 5, Coins: 1, DurationMs: 500, CreatedAt: last.Add(-2 * time.Hour)},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got stats for %d modes, want 2", len(stats))
	}

	reg := stats["regular"]
	if reg == nil {
		t.Fatal("missing regular stats")
	}
	if reg.Rounds != 2 || reg.BestTotal != 20 || reg.AvgTotal != 15 || reg.Coins != 10 {
		t.Errorf("regular stats = %+v", reg)
	}
	if reg.PlayTime != 4*time.Second {
		t.Errorf("PlayTime = %v, want 4s", reg.PlayTime)
	}
	if !reg.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, want %v", reg.LastPlayed, last)
	}
}
