package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a round",
	Long: `Start the game. With a mode the round starts at once, otherwise the
mode menu is shown with the default mode selected.

Controls:
  Space/Up/W - Flap
  P          - Pause
  R          - Restart
  Esc/B      - Back to the menu
  Tab        - Scoreboard (menu)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Modes:
  easy     - Slow pipes, low gravity, centered coins on every other pipe
  regular  - The standard round
  insane   - Fast pipes, heavy gravity, two coins per pipe

Examples:
  flappy play
  flappy play easy
  flappy play insane --seed 42
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	direct := len(args) == 1
	name := app.Mode
	if direct {
		name = args[0]
	}
	mode, ok := config.ParseMode(name)
	if !ok && direct {
		return unknownModeError(name)
	}

	// Terminal size before the first WindowSizeMsg arrives
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	store, err := storage.Open(app.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without a score store", "err", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("session started", "mode", mode, "direct", direct, "seed", app.Seed)

	runErr := tui.Run(tui.Options{
		Tuning: tuning,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: app.FPS,
			Seed:     app.Seed,
		},
		Mode:          mode,
		Direct:        direct,
		Store:         store,
		Logger:        logger,
		ScreenshotDir: tui.DefaultScreenshotDir,
	})
	if runErr != nil {
		logger.Error("session failed", "err", runErr)
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

func unknownModeError(name string) error {
	return fmt.Errorf("unknown mode %q (run 'flappy modes' to see available modes)", name)
}
