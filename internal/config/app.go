package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings keys shared by the CLI flags, environment variables and the
// optional settings file.
const (
	KeyDBPath         = "db"
	KeyFPS            = "fps"
	KeySeed           = "seed"
	KeyMode           = "mode"
	KeyTuningPath     = "config"
	KeyLogLevel       = "log-level"
	KeyLogFile        = "log-file"
	KeySSHAddress     = "ssh.address"
	KeySSHHostKey     = "ssh.host-key"
	KeySSHIdleTimeout = "ssh.idle-timeout"
)

// EnvPrefix is prepended to every environment override, e.g. FLAPPY_DB.
const EnvPrefix = "FLAPPY"

// AppConfig holds the application settings that are not game tuning.
type AppConfig struct {
	DBPath     string
	FPS        int
	Seed       int64
	Mode       string
	TuningPath string
	LogLevel   string
	LogFile    string
	SSH        SSHConfig
}

// SSHConfig holds the SSH server settings.
type SSHConfig struct {
	Address     string
	HostKeyPath string
	IdleTimeout time.Duration
}

// NewViper returns a viper instance with defaults and FLAPPY_* environment
// overrides. Dashes and dots in keys map to underscores (FLAPPY_SSH_HOST_KEY).
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyDBPath, "~/.flappy/scores.db")
	v.SetDefault(KeyFPS, 60)
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyMode, string(DefaultMode))
	v.SetDefault(KeyTuningPath, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "~/.flappy/flappy.log")
	v.SetDefault(KeySSHAddress, ":23234")
	v.SetDefault(KeySSHHostKey, "")
	v.SetDefault(KeySSHIdleTimeout, 30*time.Minute)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadApp reads the optional settings file into v and returns the resolved settings.
// An empty settingsFile skips file loading.
func LoadApp(v *viper.Viper, settingsFile string) (AppConfig, error) {
	if settingsFile != "" {
		v.SetConfigFile(ExpandHome(settingsFile))
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, fmt.Errorf("error reading settings file: %w", err)
		}
	}

	cfg := AppConfig{
		DBPath:     v.GetString(KeyDBPath),
		FPS:        v.GetInt(KeyFPS),
		Seed:       v.GetInt64(KeySeed),
		Mode:       v.GetString(KeyMode),
		TuningPath: v.GetString(KeyTuningPath),
		LogLevel:   v.GetString(KeyLogLevel),
		LogFile:    v.GetString(KeyLogFile),
		SSH: SSHConfig{
			Address:     v.GetString(KeySSHAddress),
			HostKeyPath: v.GetString(KeySSHHostKey),
			IdleTimeout: v.GetDuration(KeySSHIdleTimeout),
		},
	}

	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.SSH.IdleTimeout <= 0 {
		cfg.SSH.IdleTimeout = 30 * time.Minute
	}
	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
// The path is returned unchanged if home cannot be resolved.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
