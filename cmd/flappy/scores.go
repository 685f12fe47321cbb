package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagLimit  int
	flagClear  bool
	flagRecent bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the scoreboard",
	Long: `Display the best rounds of a mode, or a summary of every mode when no
mode is given.

Examples:
  flappy scores
  flappy scores insane
  flappy scores easy --limit 20
  flappy scores --recent
  flappy scores regular --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest rounds of every mode")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the round history (of the given mode, or all)")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) == 1 {
		m, ok := config.ParseMode(args[0])
		if !ok {
			return unknownModeError(args[0])
		}
		mode = string(m)
	}

	// Open score storage
	store, err := storage.Open(app.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRounds(mode); err != nil {
			return fmt.Errorf("clearing rounds: %w", err)
		}
		fmt.Println("Round history cleared. The best score is kept.")
		return nil
	}

	best, err := store.LoadBest(storage.BestKey)
	if err != nil {
		return fmt.Errorf("retrieving best score: %w", err)
	}

	if flagRecent {
		return printRecent(store)
	}
	if mode == "" {
		return printSummary(store, best)
	}
	return printRounds(store, config.Mode(mode), best)
}

func printRounds(store *storage.Store, mode config.Mode, best int) error {
	rounds, err := store.TopRounds(string(mode), flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", mode.Title())
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'flappy play %s' to set the first high score!\n", mode)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-8s  %s\n", "Rank", "Total", "Pipes", "Coins", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-8s  %s\n", "----", "-----", "-----", "-----", "----", "----")

	for i, r := range rounds {
		fmt.Printf("  %-4d  %-8s  %-6d  %-6d  %-8s  %s\n",
			i+1,
			humanize.Comma(int64(r.Total)),
			r.Score,
			r.Coins,
			r.Duration().Round(100*time.Millisecond),
			humanize.Time(r.CreatedAt),
		)
	}

	fmt.Println()
	fmt.Printf("Best: %s\n", humanize.Comma(int64(best)))
	return nil
}

func printSummary(store *storage.Store, best int) error {
	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Println("Scoreboard")
	fmt.Println()

	if len(stats) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-8s  %-6s  %-8s  %-8s  %-6s  %-10s  %s\n", "Mode", "Rounds", "Best", "Average", "Coins", "Played", "Last")
	fmt.Printf("  %-8s  %-6s  %-8s  %-8s  %-6s  %-10s  %s\n", "----", "------", "----", "-------", "-----", "------", "----")

	for _, mode := range config.Modes() {
		ms, ok := stats[string(mode)]
		if !ok {
			continue
		}
		fmt.Printf("  %-8s  %-6d  %-8s  %-8.1f  %-6s  %-10s  %s\n",
			mode,
			ms.Rounds,
			humanize.Comma(int64(ms.BestTotal)),
			ms.AvgTotal,
			humanize.Comma(ms.Coins),
			ms.PlayTime.Round(time.Second),
			humanize.Time(ms.LastPlayed),
		)
	}

	fmt.Println()
	fmt.Printf("Best: %s\n", humanize.Comma(int64(best)))
	fmt.Println("Run 'flappy scores <mode>' for the top rounds of a mode.")
	return nil
}

func printRecent(store *storage.Store) error {
	rounds, err := store.RecentRounds(flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving rounds: %w", err)
	}

	fmt.Println("Recent Rounds")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		return nil
	}

	fmt.Printf("  %-8s  %-8s  %-6s  %-6s  %s\n", "Mode", "Total", "Pipes", "Coins", "When")
	fmt.Printf("  %-8s  %-8s  %-6s  %-6s  %s\n", "----", "-----", "-----", "-----", "----")
	for _, r := range rounds {
		fmt.Printf("  %-8s  %-8s  %-6d  %-6d  %s\n",
			r.Mode,
			humanize.Comma(int64(r.Total)),
			r.Score,
			r.Coins,
			humanize.Time(r.CreatedAt),
		)
	}
	return nil
}
