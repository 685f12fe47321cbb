package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Random is the randomness the generators need. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// DrawFunc picks one coin tier. It is pluggable so tests can force values.
type DrawFunc func(r Random, tiers []config.CoinTier) config.CoinTier

// WeightedDraw picks a tier with probability proportional to its weight.
// Weights need not sum to 1. With no positive weight the first tier wins;
// with no tiers at all a value-1 tier is returned.
func WeightedDraw(r Random, tiers []config.CoinTier) config.CoinTier {
	if len(tiers) == 0 {
		return config.CoinTier{Value: 1, Weight: 1}
	}

	total := 0.0
	for _, t := range tiers {
		if t.Weight > 0 {
			total += t.Weight
		}
	}
	if total <= 0 {
		return tiers[0]
	}

	roll := r.Float64() * total
	cumulative := 0.0
	last := tiers[0]
	for _, t := range tiers {
		if t.Weight <= 0 {
			continue
		}
		cumulative += t.Weight
		last = t
		if roll < cumulative {
			return t
		}
	}
	// Float rounding can leave roll == total
	return last
}

// newRandom returns a seeded source.
func newRandom(seed int64) Random {
	return rand.New(rand.NewSource(seed))
}
