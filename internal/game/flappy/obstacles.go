package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Pipe is one gate: a top segment from the ceiling down to TopHeight and a
// bottom segment from TopHeight+gap down to the ground.
type Pipe struct {
	X            float64
	TopHeight    float64
	BottomHeight float64
	Scored       bool
}

// TopRect returns the top segment's box.
func (p Pipe) TopRect(width float64) core.Rect {
	return core.NewRect(p.X, 0, width, p.TopHeight)
}

// BottomRect returns the bottom segment's box.
func (p Pipe) BottomRect(width, gap float64) core.Rect {
	return core.NewRect(p.X, p.TopHeight+gap, width, p.BottomHeight)
}

// PipeManager generates, scrolls and culls pipes.
type PipeManager struct {
	pipes   []Pipe
	rng     Random
	cfg     config.FlappyObstacles
	world   World
	ground  float64
	spawned int
}

// NewPipeManager creates an empty manager for the given world.
func NewPipeManager(rng Random, cfg config.FlappyConfig, world World) *PipeManager {
	return &PipeManager{
		pipes:  make([]Pipe, 0, 4),
		rng:    rng,
		cfg:    cfg.Obstacles,
		world:  world,
		ground: cfg.World.GroundHeight,
	}
}

// Reset clears all pipes and swaps in a fresh random source.
func (pm *PipeManager) Reset(rng Random) {
	pm.pipes = pm.pipes[:0]
	pm.rng = rng
	pm.spawned = 0
}

// Resize changes the world used for new pipes. Existing pipes are kept.
func (pm *PipeManager) Resize(world World) {
	pm.world = world
}

// Pipes returns the live pipes. The slice aliases internal storage so
// scoring can latch the Scored flag in place.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// Spawned returns how many pipes were created since the last Reset.
func (pm *PipeManager) Spawned() int {
	return pm.spawned
}

// Scroll moves every pipe left by dist.
func (pm *PipeManager) Scroll(dist float64) {
	for i := range pm.pipes {
		pm.pipes[i].X -= dist
	}
}

// SpawnIfDue creates a pipe at the right edge once the newest pipe has moved
// at least one spacing in from it.
func (pm *PipeManager) SpawnIfDue() (Pipe, bool) {
	if pm.lastX() > pm.world.Width-pm.cfg.PipeSpacing {
		return Pipe{}, false
	}
	return pm.Spawn(), true
}

// Spawn creates a pipe at the right edge with a random gap position.
func (pm *PipeManager) Spawn() Pipe {
	minSeg := pm.cfg.MinSegment
	maxTop := pm.maxTop()

	top := minSeg + pm.rng.Float64()*(maxTop-minSeg)
	top = core.ClampF(top, minSeg, maxTop)

	p := Pipe{
		X:            pm.world.Width,
		TopHeight:    top,
		BottomHeight: pm.world.Height - top - pm.cfg.PipeGap - pm.ground,
	}
	pm.pipes = append(pm.pipes, p)
	pm.spawned++
	return p
}

// Cull drops pipes that have fully left the screen.
func (pm *PipeManager) Cull() {
	n := 0
	for _, p := range pm.pipes {
		if p.X > -pm.cfg.PipeWidth {
			pm.pipes[n] = p
			n++
		}
	}
	pm.pipes = pm.pipes[:n]
}

// maxTop is the largest top segment that still leaves minSegment of bottom
// segment above the ground. It never drops below minSegment.
func (pm *PipeManager) maxTop() float64 {
	maxTop := pm.world.Height - pm.cfg.PipeGap - pm.ground - pm.cfg.MinSegment
	if maxTop < pm.cfg.MinSegment {
		return pm.cfg.MinSegment
	}
	return maxTop
}

func (pm *PipeManager) lastX() float64 {
	if len(pm.pipes) == 0 {
		return -pm.cfg.PipeSpacing
	}
	last := pm.pipes[0].X
	for _, p := range pm.pipes[1:] {
		if p.X > last {
			last = p.X
		}
	}
	return last
}
