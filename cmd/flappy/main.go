// flappy is a terminal Flappy-style arcade game with local play, an SSH
// server and a persistent scoreboard.
//
// Usage:
//
//	flappy play [mode]       - Play a round (menu when no mode is given)
//	flappy modes             - List difficulty modes and their tuning
//	flappy serve             - Start SSH server for remote play
//	flappy scores [mode]     - Show the scoreboard
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.flappy/scores.db)
//	--config <path>      - Load game tuning from a YAML file
//	--settings <path>    - Load application settings from a file
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log destination for the TUI (default: ~/.flappy/flappy.log)
//
// Every setting can also be given as a FLAPPY_* environment variable.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var (
	settings     = config.NewViper()
	flagSettings string

	// Resolved by loadSettings before any subcommand runs
	app    config.AppConfig
	tuning config.FlappyConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - fly between the pipes in your terminal",
	Long: `Flappy is a terminal arcade game: flap through the gaps, collect coins
and beat your best score.

Available commands:
  play     - Play a round
  modes    - Show difficulty modes
  serve    - Start SSH server for remote play
  scores   - View the scoreboard

Examples:
  flappy play
  flappy play insane --seed 42
  flappy serve --ssh :2222
  flappy scores regular`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int(config.KeyFPS, 60, "Tick rate (frames per second)")
	flags.Int64(config.KeySeed, 0, "RNG seed (0 = random based on time)")
	flags.String(config.KeyDBPath, "~/.flappy/scores.db", "Path to scores database")
	flags.String(config.KeyTuningPath, "", "Path to custom game tuning YAML")
	flags.String(config.KeyLogLevel, "info", "Log level: debug, info, warn, error")
	flags.String(config.KeyLogFile, "~/.flappy/flappy.log", "Log file used while the TUI owns the terminal")
	flags.StringVar(&flagSettings, "settings", "", "Path to an application settings file (yaml, toml or json)")

	for _, key := range []string{config.KeyFPS, config.KeySeed, config.KeyDBPath, config.KeyTuningPath, config.KeyLogLevel, config.KeyLogFile} {
		bindFlag(settings, key, flags.Lookup(key))
	}

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// bindFlag panics on a nil flag, which only happens on a typo in init.
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func loadSettings(_ *cobra.Command, _ []string) error {
	var err error
	app, err = config.LoadApp(settings, flagSettings)
	if err != nil {
		return err
	}
	tuning, err = config.LoadFlappy(config.ExpandHome(app.TuningPath))
	if err != nil {
		return err
	}
	return nil
}

// newLogger builds the application logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(app.LogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", app.LogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger opens the TUI log file. The returned close func is never nil.
// Logging is discarded when the file cannot be opened.
func fileLogger() (*log.Logger, func()) {
	path := config.ExpandHome(app.LogFile)
	if path == "" {
		return newLogger(io.Discard, "flappy"), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return newLogger(io.Discard, "flappy"), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return newLogger(io.Discard, "flappy"), func() {}
	}
	return newLogger(f, "flappy"), func() { _ = f.Close() }
}
