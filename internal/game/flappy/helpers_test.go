package flappy

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// fixedRandom always returns the same value.
type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

// memStore is an in-memory BestScoreStore.
type memStore struct {
	best    int
	saves   []int
	loadErr error
	saveErr error
}

func (s *memStore) LoadBestScore() (int, error) {
	if s.loadErr != nil {
		return 0, s.loadErr
	}
	return s.best, nil
}

func (s *memStore) SaveBestScore(score int) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.best = score
	s.saves = append(s.saves, score)
	return nil
}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestMachine(opts ...Option) *Machine {
	opts = append([]Option{WithSeed(1)}, opts...)
	return NewMachine(config.DefaultFlappyConfig(), opts...)
}

// run steps m every d for total, starting after *now, and advances *now.
func run(m *Machine, now *time.Time, d, total time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += d {
		*now = now.Add(d)
		m.Step(*now)
	}
}
