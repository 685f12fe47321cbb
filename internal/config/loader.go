package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid flappy config")

// LoadFlappy loads the flappy tuning.
// Search order: customPath -> ~/.flappy/flappy.yaml -> ./configs/flappy.yaml -> embedded default.
// Files are layered over the built-in defaults, so a file only needs the keys it changes.
// Errors are returned only for customPath; broken files elsewhere are skipped.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseFlappy(data)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("failed to load config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath("flappy.yaml"), filepath.Join("configs", "flappy.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := ParseFlappy(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := ParseFlappy(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseFlappy decodes YAML over the built-in defaults and validates the result.
func ParseFlappy(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FlappyConfig{}, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return FlappyConfig{}, err
	}
	return cfg, nil
}

// Validate rejects tuning that cannot produce a playable round.
func (c FlappyConfig) Validate() error {
	w, o := c.World, c.Obstacles

	switch {
	case w.Width <= 0 || w.Height <= 0:
		return fmt.Errorf("%w: world size must be positive, got %vx%v", ErrInvalidConfig, w.Width, w.Height)
	case w.GroundHeight < 0:
		return fmt.Errorf("%w: ground_height must not be negative", ErrInvalidConfig)
	case o.PipeWidth <= 0 || o.PipeSpacing <= 0:
		return fmt.Errorf("%w: pipe_width and pipe_spacing must be positive", ErrInvalidConfig)
	case o.MinSegment < 0:
		return fmt.Errorf("%w: min_segment must not be negative", ErrInvalidConfig)
	case o.PipeGap <= c.Player.Size:
		return fmt.Errorf("%w: pipe_gap %v must exceed player size %v", ErrInvalidConfig, o.PipeGap, c.Player.Size)
	case c.Player.Size <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	case c.Clock.FrameMs <= 0 || c.Clock.MaxDeltaMs <= 0:
		return fmt.Errorf("%w: frame_ms and max_delta_ms must be positive", ErrInvalidConfig)
	}

	if need := MinWorldHeight(c); w.Height < need {
		return fmt.Errorf("%w: world height %v is below the %v needed for gap and segments", ErrInvalidConfig, w.Height, need)
	}

	if c.Bonus.Enabled {
		if c.Bonus.Size <= 0 || c.Bonus.Size >= o.PipeGap {
			return fmt.Errorf("%w: coin size must be in (0, pipe_gap)", ErrInvalidConfig)
		}
		total := 0.0
		for _, t := range c.Bonus.Tiers {
			if t.Weight < 0 || t.Value <= 0 {
				return fmt.Errorf("%w: coin tier %+v must have a positive value and non-negative weight", ErrInvalidConfig, t)
			}
			total += t.Weight
		}
		if total <= 0 {
			return fmt.Errorf("%w: coin tier weights must sum to a positive value", ErrInvalidConfig)
		}
	}

	for _, mode := range Modes() {
		t := c.Tuning(mode)
		if t.Gravity <= 0 || t.Speed <= 0 {
			return fmt.Errorf("%w: mode %s needs positive gravity and speed", ErrInvalidConfig, mode)
		}
		if t.Bonus.Every < 1 || t.Bonus.Count < 0 {
			return fmt.Errorf("%w: mode %s bonus policy needs every >= 1 and count >= 0", ErrInvalidConfig, mode)
		}
	}
	return nil
}

// MinWorldHeight returns the smallest world height that fits the gap, the
// ground and a minimum segment on both sides.
func MinWorldHeight(c FlappyConfig) float64 {
	return c.Obstacles.PipeGap + c.World.GroundHeight + 2*c.Obstacles.MinSegment
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", filename)
}
