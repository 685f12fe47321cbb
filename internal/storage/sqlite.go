// Package storage provides SQLite-based persistence for the best score and
// the history of finished rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/game/flappy"
)

// BestKey is the best_scores key of the game's single best score.
const BestKey = "flappy"

// timeLayout is how timestamps are written. Millisecond precision keeps
// rounds recorded in the same second ordered.
const timeLayout = "2006-01-02 15:04:05.000"

// Store manages the SQLite database connection for score persistence.
// It is safe for concurrent use; database/sql serializes access.
type Store struct {
	db *sql.DB
}

// RoundRecord is one finished round.
type RoundRecord struct {
	ID         string // UUID
	Mode       string
	Score      int
	Coins      int
	Total      int
	DurationMs int64
	CreatedAt  time.Time
}

// Duration returns the simulated round length.
func (r RoundRecord) Duration() time.Duration {
	return time.Duration(r.DurationMs) * time.Millisecond
}

// NewRoundRecord converts a round summary into a record ready to save.
func NewRoundRecord(s flappy.Summary) RoundRecord {
	return RoundRecord{
		Mode:       string(s.Mode),
		Score:      s.Score,
		Coins:      s.Coins,
		Total:      s.Total,
		DurationMs: s.Elapsed.Milliseconds(),
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath = config.ExpandHome(dbPath)

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_mode ON rounds(mode);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(mode, total DESC);

		CREATE TABLE IF NOT EXISTS best_scores (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound records a finished round. A missing ID or timestamp is filled
// in; the stored record is returned.
func (s *Store) SaveRound(rec RoundRecord) (RoundRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC().Truncate(time.Millisecond)

	_, err := s.db.Exec(
		`INSERT INTO rounds (id, mode, score, coins, total, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Mode, rec.Score, rec.Coins, rec.Total, rec.DurationMs,
		rec.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot save round: %w", err)
	}
	return rec, nil
}

// TopRounds retrieves the best N rounds of a mode, highest total first.
// Ties go to the earlier round.
func (s *Store) TopRounds(mode string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRounds(
		`SELECT id, mode, score, coins, total, duration_ms, created_at
		 FROM rounds
		 WHERE mode = ?
		 ORDER BY total DESC, created_at ASC
		 LIMIT ?`,
		mode, limit,
	)
}

// RecentRounds retrieves the most recent rounds across all modes.
func (s *Store) RecentRounds(limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRounds(
		`SELECT id, mode, score, coins, total, duration_ms, created_at
		 FROM rounds
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRounds(query string, args ...any) ([]RoundRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Mode, &r.Score, &r.Coins, &r.Total, &r.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// ClearRounds deletes the history of one mode, or of every mode if mode is
// empty. The best score is kept.
func (s *Store) ClearRounds(mode string) error {
	var err error
	if mode == "" {
		_, err = s.db.Exec("DELETE FROM rounds")
	} else {
		_, err = s.db.Exec("DELETE FROM rounds WHERE mode = ?", mode)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// LoadBest returns the stored best score for key, or 0 if none exists.
func (s *Store) LoadBest(key string) (int, error) {
	var value int
	err := s.db.QueryRow("SELECT value FROM best_scores WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load best score: %w", err)
	}
	return value, nil
}

// SaveBest stores score for key unless a higher value is already stored, so
// concurrent sessions can never lower the best score.
func (s *Store) SaveBest(key string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   value = MAX(best_scores.value, excluded.value),
		   updated_at = excluded.updated_at`,
		key, score, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// BestScore adapts one best_scores key to flappy.BestScoreStore.
type BestScore struct {
	store *Store
	key   string
}

var _ flappy.BestScoreStore = BestScore{}

// BestScore returns the best score persistence for key.
func (s *Store) BestScore(key string) BestScore {
	return BestScore{store: s, key: key}
}

// LoadBestScore implements flappy.BestScoreStore.
func (b BestScore) LoadBestScore() (int, error) {
	return b.store.LoadBest(b.key)
}

// SaveBestScore implements flappy.BestScoreStore.
func (b BestScore) SaveBestScore(score int) error {
	return b.store.SaveBest(b.key, score)
}

// ModeStats contains aggregated statistics for one mode.
type ModeStats struct {
	Mode       string
	Rounds     int
	BestTotal  int
	AvgTotal   float64
	Coins      int64
	PlayTime   time.Duration
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for every mode that has been played.
func (s *Store) Stats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(total), AVG(total), SUM(coins), SUM(duration_ms), MAX(created_at)
		 FROM rounds
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var ms ModeStats
		var playMs int64
		var lastPlayed any
		if err := rows.Scan(&ms.Mode, &ms.Rounds, &ms.BestTotal, &ms.AvgTotal, &ms.Coins, &playMs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ms.PlayTime = time.Duration(playMs) * time.Millisecond
		ms.LastPlayed = parseTime(lastPlayed)
		stats[ms.Mode] = &ms
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both driver-parsed and raw text DATETIME values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
