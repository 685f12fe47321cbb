package core

// RuntimeConfig contains configuration passed to a game session at start.
// The session uses it to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the frame loop (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}
