package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Snapshot is a read-only copy of everything a frontend needs to draw a frame.
type Snapshot struct {
	Phase  Phase
	Mode   config.Mode
	Paused bool
	World  World

	Actor Actor
	Pipes []Pipe
	Coins []Coin // Uncollected coins only

	Score     int
	CoinTotal int
	Total     int
	Best      int
	Summary   *Summary

	PipeWidth    float64
	PipeGap      float64
	Ground       float64
	BonusEnabled bool
	BobAmplitude float64
}

// Snapshot copies the current state.
func (m *Machine) Snapshot() Snapshot {
	pipes := make([]Pipe, len(m.pipes.Pipes()))
	copy(pipes, m.pipes.Pipes())

	coins := make([]Coin, 0, len(m.coins.Coins()))
	for _, c := range m.coins.Coins() {
		if !c.Collected {
			coins = append(coins, c)
		}
	}

	total := m.score
	if m.cfg.Bonus.Enabled {
		total += m.coinTotal
	}

	var summary *Summary
	if m.summary != nil {
		s := *m.summary
		summary = &s
	}

	return Snapshot{
		Phase:        m.phase,
		Mode:         m.mode,
		Paused:       m.paused,
		World:        m.world,
		Actor:        m.actor,
		Pipes:        pipes,
		Coins:        coins,
		Score:        m.score,
		CoinTotal:    m.coinTotal,
		Total:        total,
		Best:         m.best,
		Summary:      summary,
		PipeWidth:    m.cfg.Obstacles.PipeWidth,
		PipeGap:      m.cfg.Obstacles.PipeGap,
		Ground:       m.cfg.World.GroundHeight,
		BonusEnabled: m.cfg.Bonus.Enabled,
		BobAmplitude: m.cfg.Bonus.BobAmplitude,
	}
}
