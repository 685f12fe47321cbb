package core

// Action represents a semantic game action, abstracted from physical key presses.
// The frontend translates keys into actions and the session translates actions
// into state machine operations.
type Action int

const (
	ActionNone    Action = iota
	ActionFlap           // Space, W, Up - flap (also starts the round from the pre-start pose)
	ActionUp             // K, Up - move menu cursor up
	ActionDown           // J, Down - move menu cursor down
	ActionConfirm        // Enter - start a round with the selected mode
	ActionPause          // P - pause/unpause an active round
	ActionRestart        // R - restart with the same mode after game over
	ActionBack           // Esc, B - return to the menu
	ActionScores         // Tab - open the scoreboard
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionScores:
		return "Scores"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
