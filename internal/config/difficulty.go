package config

import "strings"

// Mode is a named difficulty variant. It is fixed for the duration of a round.
type Mode string

const (
	ModeEasy    Mode = "easy"
	ModeRegular Mode = "regular"
	ModeInsane  Mode = "insane"
)

// DefaultMode is used whenever a requested mode name is not recognized.
const DefaultMode = ModeRegular

// Modes returns all modes in menu order.
func Modes() []Mode {
	return []Mode{ModeEasy, ModeRegular, ModeInsane}
}

// ParseMode resolves a mode name, ignoring case and surrounding spaces.
// Unknown names resolve to DefaultMode with ok == false.
func ParseMode(name string) (mode Mode, ok bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case ModeEasy:
		return ModeEasy, true
	case ModeRegular:
		return ModeRegular, true
	case ModeInsane:
		return ModeInsane, true
	default:
		return DefaultMode, false
	}
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeEasy:
		return "Easy"
	case ModeRegular:
		return "Regular"
	case ModeInsane:
		return "Insane"
	default:
		return string(m)
	}
}

// Tuning returns the per-mode tuning for mode.
// Unknown modes get the DefaultMode tuning.
func (c FlappyConfig) Tuning(mode Mode) ModeTuning {
	switch mode {
	case ModeEasy:
		return c.Modes.Easy
	case ModeInsane:
		return c.Modes.Insane
	default:
		return c.Modes.Regular
	}
}
