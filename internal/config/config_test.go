package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	parsed, err := ParseFlappy(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults should parse: %v", err)
	}

	want := DefaultFlappyConfig()
	if parsed.World != want.World {
		t.Errorf("World = %+v, expected %+v", parsed.World, want.World)
	}
	if parsed.Obstacles != want.Obstacles {
		t.Errorf("Obstacles = %+v, expected %+v", parsed.Obstacles, want.Obstacles)
	}
	if parsed.Physics != want.Physics {
		t.Errorf("Physics = %+v, expected %+v", parsed.Physics, want.Physics)
	}
	if parsed.Modes != want.Modes {
		t.Errorf("Modes = %+v, expected %+v", parsed.Modes, want.Modes)
	}
	if len(parsed.Bonus.Tiers) != len(want.Bonus.Tiers) {
		t.Fatalf("Tiers = %d, expected %d", len(parsed.Bonus.Tiers), len(want.Bonus.Tiers))
	}
	for i := range want.Bonus.Tiers {
		if parsed.Bonus.Tiers[i] != want.Bonus.Tiers[i] {
			t.Errorf("Tier %d = %+v, expected %+v", i, parsed.Bonus.Tiers[i], want.Bonus.Tiers[i])
		}
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultFlappyConfig().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestParseFlappyLayersOverDefaults(t *testing.T) {
	cfg, err := ParseFlappy([]byte("obstacles:\n  pipe_gap: 200\n"))
	if err != nil {
		t.Fatalf("ParseFlappy() failed: %v", err)
	}
	if cfg.Obstacles.PipeGap != 200 {
		t.Errorf("PipeGap = %v, expected 200", cfg.Obstacles.PipeGap)
	}
	if cfg.Obstacles.PipeWidth != 60 {
		t.Errorf("PipeWidth should keep default 60, got %v", cfg.Obstacles.PipeWidth)
	}
	if cfg.Modes.Regular.Gravity != 0.3 {
		t.Errorf("Regular gravity should keep default 0.3, got %v", cfg.Modes.Regular.Gravity)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
	}{
		{"zero world", func(c *FlappyConfig) { c.World.Height = 0 }},
		{"world too short for gap", func(c *FlappyConfig) { c.World.Height = 250 }},
		{"gap smaller than player", func(c *FlappyConfig) { c.Obstacles.PipeGap = 20 }},
		{"zero spacing", func(c *FlappyConfig) { c.Obstacles.PipeSpacing = 0 }},
		{"zero frame", func(c *FlappyConfig) { c.Clock.FrameMs = 0 }},
		{"negative weight", func(c *FlappyConfig) { c.Bonus.Tiers[0].Weight = -1 }},
		{"no weight", func(c *FlappyConfig) { c.Bonus.Tiers = nil }},
		{"coin wider than gap", func(c *FlappyConfig) { c.Bonus.Size = 500 }},
		{"zero gravity", func(c *FlappyConfig) { c.Modes.Insane.Gravity = 0 }},
		{"every zero", func(c *FlappyConfig) { c.Modes.Easy.Bonus.Every = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidateIgnoresTiersWhenBonusDisabled(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.Bonus.Enabled = false
	cfg.Bonus.Tiers = nil
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled bonus should not need tiers: %v", err)
	}
}

func TestMinWorldHeight(t *testing.T) {
	// 180 gap + 20 ground + 2*50 segments
	if got := MinWorldHeight(DefaultFlappyConfig()); got != 300 {
		t.Errorf("MinWorldHeight() = %v, expected 300", got)
	}
}

func TestLoadFlappyCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	if err := os.WriteFile(path, []byte("modes:\n  easy:\n    speed: 1.0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Modes.Easy.Speed != 1.0 {
		t.Errorf("Easy speed = %v, expected 1.0", cfg.Modes.Easy.Speed)
	}
	if cfg.Modes.Easy.Gravity != 0.25 {
		t.Errorf("Easy gravity should keep default, got %v", cfg.Modes.Easy.Gravity)
	}
}

func TestLoadFlappyCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFlappy(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("world: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFlappy(broken); err == nil {
		t.Error("unparseable custom config should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("world:\n  height: 100\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFlappy(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("invalid custom config should wrap ErrInvalidConfig, got %v", err)
	}
}

func TestLoadFlappyFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadFlappy("")
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Obstacles.PipeGap != 180 {
		t.Errorf("PipeGap = %v, expected embedded default 180", cfg.Obstacles.PipeGap)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in     string
		want   Mode
		wantOK bool
	}{
		{"easy", ModeEasy, true},
		{"Regular", ModeRegular, true},
		{"  INSANE ", ModeInsane, true},
		{"bogus", ModeRegular, false},
		{"", ModeRegular, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseMode(tc.in)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("ParseMode(%q) = (%s, %v), expected (%s, %v)", tc.in, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestTuningPerMode(t *testing.T) {
	cfg := DefaultFlappyConfig()
	if cfg.Tuning(ModeEasy).Bonus.Every != 2 {
		t.Error("easy should place coins on every second pipe")
	}
	if cfg.Tuning(ModeInsane).Bonus.Count != 2 {
		t.Error("insane should place two coins per pipe")
	}
	if cfg.Tuning(Mode("bogus")) != cfg.Modes.Regular {
		t.Error("unknown mode should use regular tuning")
	}
}

func TestLoadAppDefaults(t *testing.T) {
	cfg, err := LoadApp(NewViper(), "")
	if err != nil {
		t.Fatalf("LoadApp() failed: %v", err)
	}
	if cfg.FPS != 60 {
		t.Errorf("FPS = %d, expected 60", cfg.FPS)
	}
	if cfg.Mode != "regular" {
		t.Errorf("Mode = %q, expected regular", cfg.Mode)
	}
	if cfg.SSH.IdleTimeout != 30*time.Minute {
		t.Errorf("IdleTimeout = %v, expected 30m", cfg.SSH.IdleTimeout)
	}
}

func TestLoadAppEnvOverrides(t *testing.T) {
	t.Setenv("FLAPPY_FPS", "30")
	t.Setenv("FLAPPY_SSH_ADDRESS", ":2222")

	cfg, err := LoadApp(NewViper(), "")
	if err != nil {
		t.Fatalf("LoadApp() failed: %v", err)
	}
	if cfg.FPS != 30 {
		t.Errorf("FPS = %d, expected 30 from env", cfg.FPS)
	}
	if cfg.SSH.Address != ":2222" {
		t.Errorf("SSH address = %q, expected :2222 from env", cfg.SSH.Address)
	}
}

func TestLoadAppSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("mode: insane\nssh:\n  idle-timeout: 5m\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadApp(NewViper(), path)
	if err != nil {
		t.Fatalf("LoadApp() failed: %v", err)
	}
	if cfg.Mode != "insane" {
		t.Errorf("Mode = %q, expected insane", cfg.Mode)
	}
	if cfg.SSH.IdleTimeout != 5*time.Minute {
		t.Errorf("IdleTimeout = %v, expected 5m", cfg.SSH.IdleTimeout)
	}

	if _, err := LoadApp(NewViper(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing settings file should fail")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path should be unchanged, got %q", got)
	}
}
