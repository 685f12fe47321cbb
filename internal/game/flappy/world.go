package flappy

// World is the size of the simulated area in world units.
type World struct {
	Width, Height float64
}
