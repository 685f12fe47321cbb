package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// maxRounds is how many rounds per mode the scoreboard loads.
const maxRounds = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the best rounds of each mode.
type ScoreboardModel struct {
	modes  []config.Mode
	cursor int
	store  *storage.Store
	rounds []storage.RoundRecord
	err    error
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int
}

// NewScoreboardModel creates a scoreboard opened on mode.
func NewScoreboardModel(store *storage.Store, mode config.Mode, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  config.Modes(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for i, md := range m.modes {
		if md == mode {
			m.cursor = i
		}
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Total", Width: 7},
		{Title: "Pipes", Width: 6},
		{Title: "Coins", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "When", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the current mode's rounds.
func (m *ScoreboardModel) load() {
	m.rounds, m.err = nil, nil
	if m.store != nil {
		m.rounds, m.err = m.store.TopRounds(string(m.modes[m.cursor]), maxRounds)
	}

	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			humanize.Comma(int64(r.Total)),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Coins),
			r.Duration().Round(100 * time.Millisecond).String(),
			humanize.Time(r.CreatedAt),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Mode returns the mode being shown.
func (m ScoreboardModel) Mode() config.Mode {
	return m.modes[m.cursor]
}

// SetSize updates the layout size.
func (m *ScoreboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.table = m.createTable()
	m.load()
}

// Update handles a key press. It reports whether the user asked to leave
// the scoreboard and whether they asked to quit.
func (m ScoreboardModel) Update(msg tea.KeyMsg) (ScoreboardModel, tea.Cmd, bool, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, nil, false, true
	case key.Matches(msg, m.keys.Back):
		return m, nil, true, false
	case key.Matches(msg, m.keys.NextMode):
		m.cursor = (m.cursor + 1) % len(m.modes)
		m.load()
		return m, nil, false, false
	case key.Matches(msg, m.keys.PrevMode):
		m.cursor = (m.cursor - 1 + len(m.modes)) % len(m.modes)
		m.load()
		return m, nil, false, false
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd, false, false
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.modes))
	for i, mode := range m.modes {
		if i == m.cursor {
			tabs[i] = selectedStyle.Padding(0, 1).Render(mode.Title())
		} else {
			tabs[i] = dimStyle.Render(" " + mode.Title() + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.tableContent()))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// tableContent renders the table or an explanation of why it is empty.
func (m ScoreboardModel) tableContent() string {
	emptyStyle := dimStyle.Italic(true).Padding(2, 4)
	switch {
	case m.store == nil:
		return emptyStyle.Render("Scores are not being saved.\nThe scores database could not be opened.")
	case m.err != nil:
		return errorStyle.Padding(2, 4).Render(fmt.Sprintf("Could not load scores:\n%v", m.err))
	case len(m.rounds) == 0:
		return emptyStyle.Render("No rounds recorded yet.\nPlay a round to set a high score!")
	}
	return m.table.View()
}
