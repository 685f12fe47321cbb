package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/game/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// DefaultScreenshotDir is where ctrl+s writes frames.
const DefaultScreenshotDir = "~/.flappy/screenshots"

type view int

const (
	viewMenu view = iota
	viewGame
	viewScores
)

// Options configures a Model.
type Options struct {
	Tuning        config.FlappyConfig
	Runtime       core.RuntimeConfig
	Mode          config.Mode    // Mode preselected on the menu
	Direct        bool           // Skip the menu and start a round in Mode
	Store         *storage.Store // nil disables persistence
	Logger        *log.Logger
	ScreenshotDir string
	NoScreenshots bool
}

// startMsg starts a round from Init, which cannot change the model.
type startMsg struct {
	mode config.Mode
}

// Model is the Bubble Tea model of one player session: menu, rounds and
// scoreboard. It owns the session's Machine and frame loop.
type Model struct {
	opts    Options
	logger  *log.Logger
	machine *flappy.Machine
	loop    *flappy.FrameLoop
	screen  *core.Screen
	keys    KeyMap
	help    help.Model
	menu    MenuModel
	scores  ScoreboardModel
	view    view
	status  string
	width   int
	height  int

	quitting bool
}

// NewModel creates a session model.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = DefaultScreenshotDir
	}
	mode, _ := config.ParseMode(string(opts.Mode))
	opts.Mode = mode

	machineOpts := []flappy.Option{
		flappy.WithLogger(opts.Logger),
		flappy.WithSeed(opts.Runtime.Seed),
	}
	if opts.Store != nil {
		machineOpts = append(machineOpts,
			flappy.WithBestScoreStore(opts.Store.BestScore(storage.BestKey)),
			flappy.OnRoundOver(recordRound(opts.Store, opts.Logger)),
		)
	}

	keys := DefaultKeyMap()
	m := Model{
		opts:    opts,
		logger:  opts.Logger,
		machine: flappy.NewMachine(opts.Tuning, machineOpts...),
		loop:    &flappy.FrameLoop{},
		screen:  core.NewScreen(opts.Runtime.ScreenW, playfieldRows(opts.Runtime.ScreenH)),
		keys:    keys,
		help:    help.New(),
		menu:    NewMenuModel(opts.Tuning, keys, mode),
	}
	m.resize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	m.menu.SetBest(m.machine.Best())
	return m
}

// recordRound returns the round-over hook that appends to the history.
func recordRound(store *storage.Store, logger *log.Logger) func(flappy.Summary) {
	return func(s flappy.Summary) {
		rec, err := store.SaveRound(storage.NewRoundRecord(s))
		if err != nil {
			logger.Warn("could not record round", "err", err)
			return
		}
		logger.Debug("round recorded", "id", rec.ID, "total", rec.Total)
	}
}

// playfieldRows leaves one row for the help line.
func playfieldRows(height int) int {
	return max(height-1, 1)
}

// WorldSize maps a terminal playfield to world units. The height stays at
// the configured world height; the width follows the terminal's aspect ratio
// (cells are about twice as tall as wide) but never drops below MinWidth.
func WorldSize(cfg config.FlappyWorld, cols, rows int) (float64, float64) {
	if cols <= 0 || rows <= 0 {
		return cfg.Width, cfg.Height
	}
	width := cfg.Height * float64(cols) / float64(rows*2)
	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	return width, cfg.Height
}

// Init starts the first round when the session skips the menu.
func (m Model) Init() tea.Cmd {
	if !m.opts.Direct {
		return nil
	}
	mode := m.opts.Mode
	return func() tea.Msg { return startMsg{mode: mode} }
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case startMsg:
		return m.startRound(msg.mode)

	case FrameMsg:
		return m.handleFrame(msg)
	}

	return m, nil
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	rows := playfieldRows(height)
	m.screen.Resize(width, rows)
	m.machine.Resize(WorldSize(m.opts.Tuning.World, width, rows))
	m.menu.SetSize(width, height)
	m.help.Width = width
	if m.view == viewScores {
		m.scores.SetSize(width, height)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewGame:
		return m.handleGameKey(msg)
	case viewScores:
		return m.handleScoresKey(msg)
	default:
		return m.handleMenuKey(msg)
	}
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MenuAction(msg) {
	case core.ActionQuit:
		return m.quit()
	case core.ActionUp:
		m.menu.Move(-1)
	case core.ActionDown:
		m.menu.Move(1)
	case core.ActionConfirm:
		return m.startRound(m.menu.Selected())
	case core.ActionScores:
		m.scores = NewScoreboardModel(m.opts.Store, m.menu.Selected(), m.width, m.height)
		m.view = viewScores
	}
	return m, nil
}

func (m Model) handleScoresKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scores, cmd, back, quit := m.scores.Update(msg)
	m.scores = scores
	if quit {
		return m.quit()
	}
	if back {
		m.view = viewMenu
	}
	return m, cmd
}

func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.status = "Screenshots are disabled"
		if !m.opts.NoScreenshots {
			m.status = m.saveScreenshot()
		}
		return m, nil
	}

	switch m.keys.GameAction(msg) {
	case core.ActionQuit:
		return m.quit()
	case core.ActionFlap:
		// Flapping on the game over screen plays again
		if m.machine.Phase() == flappy.PhaseOver {
			return m.startRound(m.machine.Mode())
		}
		m.machine.Flap()
	case core.ActionPause:
		m.machine.TogglePause()
	case core.ActionRestart:
		return m.startRound(m.machine.Mode())
	case core.ActionBack:
		m.loop.Stop()
		m.machine.ReturnToMenu()
		m.menu.SetBest(m.machine.Best())
		m.view = viewMenu
	}
	return m, nil
}

// startRound starts a round and arms a fresh frame chain. Frames still in
// flight from an earlier round are dropped by the token check.
func (m Model) startRound(mode config.Mode) (tea.Model, tea.Cmd) {
	if m.loop.Armed() {
		m.logger.Debug("cancelling live frame chain", "token", m.loop.Token())
	}
	m.loop.Stop()

	started, err := m.machine.StartRound(string(mode), time.Now())
	if err != nil {
		m.view = viewMenu
		m.menu.SetStatus(startError(err))
		return m, nil
	}

	m.menu.SetStatus("")
	m.status = ""
	m.view = viewGame
	m.opts.Mode = started
	token := m.loop.Start()
	return m, frameCmd(token, m.opts.Runtime.TickRate)
}

func startError(err error) string {
	if errors.Is(err, flappy.ErrWorldTooSmall) {
		return "Terminal too small for the configured pipe gap."
	}
	return fmt.Sprintf("Could not start round: %v", err)
}

func (m Model) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	if !m.loop.Accept(msg.Token) {
		return m, nil
	}

	m.machine.Step(msg.Time)

	if m.machine.Phase() == flappy.PhaseOver {
		m.loop.Stop()
		m.menu.SetBest(m.machine.Best())
		return m, nil
	}
	return m, frameCmd(m.loop.Token(), m.opts.Runtime.TickRate)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.loop.Stop()
	m.machine.Stop()
	m.quitting = true
	return m, tea.Quit
}

// saveScreenshot writes the current frame as plain text and returns a
// status line describing the outcome.
func (m *Model) saveScreenshot() string {
	flappy.Render(m.machine.Snapshot(), m.screen)

	dir := config.ExpandHome(m.opts.ScreenshotDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "dir", dir, "err", err)
		return "Screenshot failed"
	}

	name := fmt.Sprintf("flappy_%s.txt", time.Now().Format("20060102_150405.000"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not write screenshot", "path", path, "err", err)
		return "Screenshot failed"
	}

	m.logger.Info("screenshot saved", "path", path)
	return "Saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		flappy.Render(m.machine.Snapshot(), m.screen)
		footer := m.help.View(gameHelp{m.keys})
		if m.status != "" {
			footer = m.status
		}
		return RenderScreen(m.screen) + "\n" + dimStyle.Render(footer)
	case viewScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Machine exposes the session's state machine.
func (m Model) Machine() *flappy.Machine {
	return m.machine
}

// Run starts a local Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
