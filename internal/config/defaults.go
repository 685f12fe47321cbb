package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in tuning.
// It mirrors defaults/flappy.yaml and is the fallback if the embedded file
// cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			Width:        400,
			Height:       600,
			MinWidth:     300,
			GroundHeight: 20,
		},
		Physics: FlappyPhysics{
			FlapImpulse: -7.5,
			TiltGain:    3,
			MaxTilt:     30,
			WingPeriod:  6,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:   60,
			PipeGap:     180,
			PipeSpacing: 250,
			MinSegment:  50,
		},
		Player: FlappyPlayer{
			Size: 30,
		},
		Clock: FlappyClock{
			FrameMs:    16.67,
			MaxDeltaMs: 100,
		},
		Bonus: BonusConfig{
			Enabled:      true,
			Size:         20,
			Offset:       10,
			BobAmplitude: 4,
			BobSpeed:     0.1,
			Tiers: []CoinTier{
				{Value: 1, Weight: 0.60},
				{Value: 3, Weight: 0.25},
				{Value: 5, Weight: 0.10},
				{Value: 10, Weight: 0.05},
			},
		},
		Modes: ModeTable{
			Easy: ModeTuning{
				Gravity: 0.25,
				Speed:   1.5,
				Bonus:   BonusPolicy{Every: 2, Count: 1, Randomize: false},
			},
			Regular: ModeTuning{
				Gravity: 0.3,
				Speed:   2,
				Bonus:   BonusPolicy{Every: 1, Count: 1, Randomize: true},
			},
			Insane: ModeTuning{
				Gravity: 0.45,
				Speed:   3,
				Bonus:   BonusPolicy{Every: 1, Count: 2, Randomize: true},
			},
		},
	}
}

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
