package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Coin is a collectible placed just past a pipe.
type Coin struct {
	X, Y      float64
	Size      float64
	Value     int
	Collected bool
	Phase     float64 // Bob animation phase, render only
}

// Rect returns the coin's collision box. The bob offset is not part of it.
func (c Coin) Rect() core.Rect {
	return core.NewRect(c.X, c.Y, c.Size, c.Size)
}

// BobOffset returns the vertical render offset for the coin.
func (c Coin) BobOffset(amplitude float64) float64 {
	return math.Sin(c.Phase) * amplitude
}

// CoinManager places coins according to the active mode's bonus policy.
type CoinManager struct {
	coins     []Coin
	rng       Random
	draw      DrawFunc
	cfg       config.BonusConfig
	policy    config.BonusPolicy
	pipeWidth float64
	gap       float64
}

// NewCoinManager creates an empty manager.
func NewCoinManager(rng Random, draw DrawFunc, cfg config.FlappyConfig, policy config.BonusPolicy) *CoinManager {
	if draw == nil {
		draw = WeightedDraw
	}
	return &CoinManager{
		coins:     make([]Coin, 0, 4),
		rng:       rng,
		draw:      draw,
		cfg:       cfg.Bonus,
		policy:    policy,
		pipeWidth: cfg.Obstacles.PipeWidth,
		gap:       cfg.Obstacles.PipeGap,
	}
}

// Reset clears all coins and installs the policy for the next round.
func (cm *CoinManager) Reset(rng Random, policy config.BonusPolicy) {
	cm.coins = cm.coins[:0]
	cm.rng = rng
	cm.policy = policy
}

// Coins returns the live coins. The slice aliases internal storage.
func (cm *CoinManager) Coins() []Coin {
	return cm.coins
}

// PlaceFor creates the coins for a freshly spawned pipe. index is the pipe's
// ordinal within the round, starting at 0.
func (cm *CoinManager) PlaceFor(p Pipe, index int) []Coin {
	if !cm.cfg.Enabled || cm.policy.Count <= 0 {
		return nil
	}
	if every := cm.policy.Every; every > 1 && index%every != 0 {
		return nil
	}

	placed := make([]Coin, 0, cm.policy.Count)
	for i := 0; i < cm.policy.Count; i++ {
		tier := cm.draw(cm.rng, cm.cfg.Tiers)
		c := Coin{
			X:     p.X + cm.pipeWidth + cm.cfg.Offset,
			Y:     cm.coinY(p),
			Size:  cm.cfg.Size,
			Value: tier.Value,
		}
		cm.coins = append(cm.coins, c)
		placed = append(placed, c)
	}
	return placed
}

// coinY picks the coin's top edge inside the gap band.
func (cm *CoinManager) coinY(p Pipe) float64 {
	span := cm.gap - cm.cfg.Size
	if span < 0 {
		span = 0
	}
	if !cm.policy.Randomize {
		return p.TopHeight + span/2
	}
	return p.TopHeight + cm.rng.Float64()*span
}

// Scroll moves coins left by dist and advances the bob by n frames.
func (cm *CoinManager) Scroll(dist, n float64) {
	for i := range cm.coins {
		cm.coins[i].X -= dist
		cm.coins[i].Phase += cm.cfg.BobSpeed * n
	}
}

// Cull drops collected coins and coins that have left the screen.
func (cm *CoinManager) Cull() {
	n := 0
	for _, c := range cm.coins {
		if !c.Collected && c.X+c.Size > 0 {
			cm.coins[n] = c
			n++
		}
	}
	cm.coins = cm.coins[:n]
}
