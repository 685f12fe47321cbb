// Package config provides YAML-based tuning for the flappy simulation, the
// difficulty mode table, and the viper-backed application settings.
package config

// FlappyConfig contains all tuning for the flappy simulation.
// Distances are world units (the reference world is 400x600), speeds are world
// units per nominal 60 Hz frame.
type FlappyConfig struct {
	World     FlappyWorld     `yaml:"world"`
	Physics   FlappyPhysics   `yaml:"physics"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Player    FlappyPlayer    `yaml:"player"`
	Clock     FlappyClock     `yaml:"clock"`
	Bonus     BonusConfig     `yaml:"bonus"`
	Modes     ModeTable       `yaml:"modes"`
}

// FlappyWorld defines the playfield.
type FlappyWorld struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MinWidth     float64 `yaml:"min_width"` // Narrowest world the viewport may request
	GroundHeight float64 `yaml:"ground_height"`
}

// FlappyPhysics defines actor motion parameters shared by all modes.
type FlappyPhysics struct {
	FlapImpulse float64 `yaml:"flap_impulse"` // Velocity set by a flap (negative = up)
	TiltGain    float64 `yaml:"tilt_gain"`    // Degrees of tilt per unit of velocity
	MaxTilt     float64 `yaml:"max_tilt"`     // Tilt clamp in degrees
	WingPeriod  int     `yaml:"wing_period"`  // Frames per wing animation step
}

// FlappyObstacles defines pipe geometry and spacing.
type FlappyObstacles struct {
	PipeWidth   float64 `yaml:"pipe_width"`
	PipeGap     float64 `yaml:"pipe_gap"`
	PipeSpacing float64 `yaml:"pipe_spacing"`
	MinSegment  float64 `yaml:"min_segment"` // Minimum height of both pipe segments
}

// FlappyPlayer defines the controlled actor.
type FlappyPlayer struct {
	Size float64 `yaml:"size"`
}

// FlappyClock defines how wall-clock deltas become simulation steps.
type FlappyClock struct {
	FrameMs    float64 `yaml:"frame_ms"`     // Nominal frame duration (one 60 Hz frame)
	MaxDeltaMs float64 `yaml:"max_delta_ms"` // Cap applied to every frame delta
}

// BonusConfig defines the coin subsystem.
type BonusConfig struct {
	Enabled      bool       `yaml:"enabled"`
	Size         float64    `yaml:"size"`
	Offset       float64    `yaml:"offset"`        // Horizontal distance past the pipe's trailing edge
	BobAmplitude float64    `yaml:"bob_amplitude"` // Render-only vertical oscillation
	BobSpeed     float64    `yaml:"bob_speed"`     // Radians per frame
	Tiers        []CoinTier `yaml:"tiers"`
}

// CoinTier is one weighted coin value.
type CoinTier struct {
	Value  int     `yaml:"value"`
	Weight float64 `yaml:"weight"`
}

// ModeTable holds the tuning of every difficulty mode.
type ModeTable struct {
	Easy    ModeTuning `yaml:"easy"`
	Regular ModeTuning `yaml:"regular"`
	Insane  ModeTuning `yaml:"insane"`
}

// ModeTuning is the per-mode part of the tuning.
type ModeTuning struct {
	Gravity float64     `yaml:"gravity"`
	Speed   float64     `yaml:"speed"` // Scroll speed
	Bonus   BonusPolicy `yaml:"bonus"`
}

// BonusPolicy decides how many coins a new pipe receives.
type BonusPolicy struct {
	Every     int  `yaml:"every"`     // Place coins on every Nth pipe (1 = every pipe)
	Count     int  `yaml:"count"`     // Coins per eligible pipe
	Randomize bool `yaml:"randomize"` // Random Y inside the gap instead of centered
}
