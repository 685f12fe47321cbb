package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the flappy SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the mode menu.
Scores are stored per-server (all users share the same scoreboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flappy/host_key

Examples:
  flappy serve                           # Listen on :23234 with auto-generated key
  flappy serve --ssh :2222               # Listen on port 2222
  flappy serve --host-key ./my_host_key  # Use specific host key
  flappy serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.String("ssh", ":23234", "SSH server address (host:port)")
	flags.String("host-key", "", "Path to host key file (auto-generated if not specified)")
	flags.Duration("idle-timeout", 30*time.Minute, "Idle timeout before disconnecting")

	bindFlag(settings, config.KeySSHAddress, flags.Lookup("ssh"))
	bindFlag(settings, config.KeySSHHostKey, flags.Lookup("host-key"))
	bindFlag(settings, config.KeySSHIdleTimeout, flags.Lookup("idle-timeout"))
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "flappy-ssh")

	store, err := storage.Open(app.DBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	mode, ok := config.ParseMode(app.Mode)
	if !ok {
		logger.Warn("unknown default mode, using regular", "mode", app.Mode)
	}

	server, err := tui.NewSSHServer(app.SSH, tui.Options{
		Tuning: tuning,
		Runtime: core.RuntimeConfig{
			TickRate: app.FPS,
			Seed:     app.Seed,
		},
		Mode:   mode,
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting flappy SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
