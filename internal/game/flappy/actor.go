package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// wingFrames is the number of cosmetic wing poses.
const wingFrames = 3

// Actor is the controlled bird. X stays fixed while a round runs; only the
// viewport can move it.
type Actor struct {
	X, Y          float64
	Width, Height float64
	Velocity      float64 // Vertical, positive = down
	Tilt          float64 // Degrees, derived from Velocity
	WingFrame     int     // Cosmetic wing pose in [0, wingFrames)
}

// NewActor places an actor of the given size at the center of the world.
func NewActor(world World, size float64) Actor {
	return Actor{
		X:      centerX(world, size),
		Y:      world.Height / 2,
		Width:  size,
		Height: size,
	}
}

func centerX(world World, size float64) float64 {
	return world.Width/2 - size/2
}

// Rect returns the actor's collision box.
func (a Actor) Rect() core.Rect {
	return core.NewRect(a.X, a.Y, a.Width, a.Height)
}

// Flap replaces the vertical velocity with the impulse.
func (a *Actor) Flap(impulse float64) {
	a.Velocity = impulse
}

// Integrate applies gravity and moves the actor by n normalized frames.
func (a *Actor) Integrate(gravity, n, tiltGain, maxTilt float64) {
	a.Velocity += gravity * n
	a.Y += a.Velocity * n
	a.Tilt = core.ClampF(a.Velocity*tiltGain, -maxTilt, maxTilt)
}

// Freeze pins the actor to the neutral pre-start pose.
func (a *Actor) Freeze() {
	a.Velocity = 0
	a.Tilt = 0
}
