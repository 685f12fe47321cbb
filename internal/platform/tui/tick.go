// Package tui provides the Bubble Tea frontend for the flappy simulation.
// It maps keys to machine operations, schedules frames, and draws the menu,
// playfield and scoreboard, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg asks the model to run one frame. Token identifies the frame chain
// that scheduled it; messages from a cancelled chain are dropped.
type FrameMsg struct {
	Token uint64
	Time  time.Time
}

// frameCmd schedules the next frame of the chain identified by token.
func frameCmd(token uint64, fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Token: token, Time: t}
	})
}
