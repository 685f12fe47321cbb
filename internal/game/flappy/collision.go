package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// HitsWorldBounds reports whether the actor left the sky or touched the ground.
func HitsWorldBounds(actor core.Rect, worldH, ground float64) bool {
	return actor.Y < 0 || actor.Bottom() > worldH-ground
}

// HitsPipe reports whether the actor overlaps the pipe horizontally while not
// fully inside its gap.
func HitsPipe(actor core.Rect, p Pipe, width, gap float64) bool {
	if !actor.OverlapsX(p.TopRect(width)) {
		return false
	}
	return actor.Y < p.TopHeight || actor.Bottom() > p.TopHeight+gap
}

// CheckCollision reports whether the actor has hit anything terminal.
func CheckCollision(actor core.Rect, pipes []Pipe, worldH, ground, width, gap float64) bool {
	if HitsWorldBounds(actor, worldH, ground) {
		return true
	}
	for _, p := range pipes {
		if HitsPipe(actor, p, width, gap) {
			return true
		}
	}
	return false
}

// ScorePipes latches every pipe the actor has fully passed and returns how
// many were newly passed.
func ScorePipes(pipes []Pipe, actor core.Rect, width float64) int {
	passed := 0
	for i := range pipes {
		if !pipes[i].Scored && pipes[i].X+width < actor.X {
			pipes[i].Scored = true
			passed++
		}
	}
	return passed
}

// CollectCoins latches every uncollected coin the actor overlaps and returns
// the sum of their values.
func CollectCoins(coins []Coin, actor core.Rect) int {
	value := 0
	for i := range coins {
		if coins[i].Collected {
			continue
		}
		if actor.Intersects(coins[i].Rect()) {
			coins[i].Collected = true
			value += coins[i].Value
		}
	}
	return value
}
