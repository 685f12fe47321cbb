package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List difficulty modes",
	Long:  `Shows every difficulty mode with the tuning loaded from --config.`,
	Run:   runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	fmt.Println("Available modes:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-8s  %-8s  %-7s  %-5s  %s\n", "Mode", "Gravity", "Speed", "Every", "Coins")
	fmt.Printf("  %-8s  %-8s  %-7s  %-5s  %s\n", "----", "-------", "-----", "-----", "-----")

	for _, mode := range config.Modes() {
		t := tuning.Tuning(mode)
		coins := fmt.Sprintf("%d", t.Bonus.Count)
		if !tuning.Bonus.Enabled {
			coins = "off"
		} else if t.Bonus.Randomize {
			coins += " (random)"
		}
		marker := ""
		if mode == config.DefaultMode {
			marker = "  *"
		}
		fmt.Printf("  %-8s  %-8.2f  %-7.1f  %-5d  %s%s\n", mode, t.Gravity, t.Speed, t.Bonus.Every, coins, marker)
	}

	fmt.Println()
	fmt.Println("* default mode")
	fmt.Println("Run 'flappy play <mode>' to start a round.")
}
