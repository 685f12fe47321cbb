package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// MenuModel is the mode picker shown between rounds.
type MenuModel struct {
	modes  []config.Mode
	cursor int
	cfg    config.FlappyConfig
	keys   KeyMap
	help   help.Model
	width  int
	height int
	best   int
	status string // Last error, shown under the list
}

// NewMenuModel creates a menu with the cursor on initial.
func NewMenuModel(cfg config.FlappyConfig, keys KeyMap, initial config.Mode) MenuModel {
	m := MenuModel{
		modes: config.Modes(),
		cfg:   cfg,
		keys:  keys,
		help:  help.New(),
	}
	for i, mode := range m.modes {
		if mode == initial {
			m.cursor = i
		}
	}
	return m
}

// Selected returns the mode under the cursor.
func (m MenuModel) Selected() config.Mode {
	return m.modes[m.cursor]
}

// Move moves the cursor by delta, stopping at the ends.
func (m *MenuModel) Move(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.modes)-1 {
		m.cursor = len(m.modes) - 1
	}
}

// SetSize updates the layout size.
func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// SetBest updates the best score line.
func (m *MenuModel) SetBest(best int) {
	m.best = best
}

// SetStatus shows a message under the mode list. Empty clears it.
func (m *MenuModel) SetStatus(status string) {
	m.status = status
}

// describeMode summarizes a mode's tuning in one line.
func describeMode(cfg config.FlappyConfig, mode config.Mode) string {
	t := cfg.Tuning(mode)
	coins := "no coins"
	if cfg.Bonus.Enabled && t.Bonus.Count > 0 {
		switch {
		case t.Bonus.Every > 1:
			coins = fmt.Sprintf("%d coin every %d pipes", t.Bonus.Count, t.Bonus.Every)
		case t.Bonus.Count > 1:
			coins = fmt.Sprintf("%d coins per pipe", t.Bonus.Count)
		default:
			coins = "1 coin per pipe"
		}
	}
	return fmt.Sprintf("gravity %.2f  speed %.1f  %s", t.Gravity, t.Speed, coins)
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("F L A P P Y"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Select a mode"), m.width))
	b.WriteString("\n\n")

	for i, mode := range m.modes {
		line := fmt.Sprintf("  %-8s", mode.Title())
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf("> %-8s", mode.Title()))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(describeMode(m.cfg, m.Selected())), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Best: %d", m.best), m.width))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(centerText(errorStyle.Render(m.status), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(menuHelp{m.keys}), m.width))
	b.WriteString("\n")

	return b.String()
}
