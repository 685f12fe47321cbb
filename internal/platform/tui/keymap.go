package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// KeyMap holds every key binding of the frontend.
// Menu and game views read different subsets of it.
type KeyMap struct {
	Flap       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Back       key.Binding
	Scores     key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flap: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "flap"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// GameAction maps a key press during a round to an action.
func (k KeyMap) GameAction(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Flap):
		return core.ActionFlap
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// MenuAction maps a key press on the menu to an action.
func (k KeyMap) MenuAction(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Select):
		return core.ActionConfirm
	case key.Matches(msg, k.Scores):
		return core.ActionScores
	}
	return core.ActionNone
}

// gameHelp is the help.KeyMap shown under the playfield.
type gameHelp struct{ KeyMap }

func (h gameHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.Flap, h.Pause, h.Restart, h.Back, h.Screenshot, h.Quit}
}

func (h gameHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// menuHelp is the help.KeyMap shown on the menu.
type menuHelp struct{ KeyMap }

func (h menuHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.Up, h.Down, h.Select, h.Scores, h.Quit}
}

func (h menuHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
