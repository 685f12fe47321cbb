package tui

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/game/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	opts.Tuning = config.DefaultFlappyConfig()
	opts.Runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	opts.ScreenshotDir = t.TempDir()
	return NewModel(opts)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

// playUntilOver feeds frames of the live chain until the round ends.
func playUntilOver(t *testing.T, m Model) Model {
	t.Helper()
	base := time.Now()
	for i := 1; i <= 2000; i++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, FrameMsg{Token: m.loop.Token(), Time: base.Add(time.Duration(i) * 16 * time.Millisecond)})
		if m.machine.Phase() == flappy.PhaseOver {
			if cmd != nil {
				t.Error("frame chain should stop once the round is over")
			}
			return m
		}
		if cmd == nil {
			t.Fatalf("frame %d did not schedule the next frame", i)
		}
	}
	t.Fatal("round never ended")
	return m
}

func TestWorldSize(t *testing.T) {
	world := config.DefaultFlappyConfig().World

	tests := []struct {
		name       string
		cols, rows int
		wantW      float64
	}{
		{"standard terminal", 80, 23, 600 * 80 / 46.0},
		{"square cells at minimum", 40, 40, 300},
		{"narrow clamps to minimum", 20, 40, 300},
		{"unknown size", 0, 0, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := WorldSize(world, tt.cols, tt.rows)
			if math.Abs(w-tt.wantW) > 1e-9 {
				t.Errorf("width = %v, want %v", w, tt.wantW)
			}
			if h != 600 {
				t.Errorf("height = %v, want 600", h)
			}
		})
	}
}

func TestKeyMapContexts(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		wantGame core.Action
		wantMenu core.Action
	}{
		{"space", keySpace, core.ActionFlap, core.ActionConfirm},
		{"up", keyUp, core.ActionFlap, core.ActionUp},
		{"enter", keyEnter, core.ActionNone, core.ActionConfirm},
		{"esc", keyEsc, core.ActionBack, core.ActionNone},
		{"tab", keyTab, core.ActionNone, core.ActionScores},
		{"p", runeKey('p'), core.ActionPause, core.ActionNone},
		{"r", runeKey('r'), core.ActionRestart, core.ActionNone},
		{"q", runeKey('q'), core.ActionQuit, core.ActionQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.GameAction(tt.msg); got != tt.wantGame {
				t.Errorf("GameAction = %v, want %v", got, tt.wantGame)
			}
			if got := keys.MenuAction(tt.msg); got != tt.wantMenu {
				t.Errorf("MenuAction = %v, want %v", got, tt.wantMenu)
			}
		})
	}
}

func TestMenuStartsRound(t *testing.T) {
	m := newTestModel(t, Options{Mode: config.ModeEasy})

	m, cmd := update(t, m, keyEnter)
	if m.view != viewGame {
		t.Fatalf("view = %v, want game", m.view)
	}
	if cmd == nil || !m.loop.Armed() {
		t.Fatal("starting a round should arm the frame loop")
	}
	if m.machine.Phase() != flappy.PhasePreStart || m.machine.Mode() != config.ModeEasy {
		t.Errorf("phase = %v mode = %v", m.machine.Phase(), m.machine.Mode())
	}

	m, _ = update(t, m, keySpace)
	if m.machine.Phase() != flappy.PhaseActive {
		t.Errorf("phase after flap = %v, want active", m.machine.Phase())
	}

	m, _ = update(t, m, keyEsc)
	if m.view != viewMenu || m.machine.Phase() != flappy.PhaseIdle {
		t.Errorf("esc: view = %v phase = %v", m.view, m.machine.Phase())
	}
	if m.loop.Armed() {
		t.Error("returning to the menu should stop the frame loop")
	}
}

func TestStaleFramesDropped(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, keyEnter)
	first := m.loop.Token()

	m, _ = update(t, m, runeKey('r'))
	if m.loop.Accept(first) {
		t.Fatal("restart should invalidate the old frame chain")
	}

	_, cmd := update(t, m, FrameMsg{Token: first, Time: time.Now()})
	if cmd != nil {
		t.Error("a stale frame must not re-arm")
	}

	_, cmd = update(t, m, FrameMsg{Token: m.loop.Token(), Time: time.Now()})
	if cmd == nil {
		t.Error("a live frame should schedule the next one")
	}
}

func TestRoundOverStopsLoop(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, keyEnter)
	m, _ = update(t, m, keySpace)

	m = playUntilOver(t, m)

	if m.loop.Armed() {
		t.Error("loop still armed after round over")
	}
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Error("game over box not shown")
	}

	m, cmd := update(t, m, runeKey('r'))
	if cmd == nil || m.machine.Phase() != flappy.PhasePreStart {
		t.Error("restart after game over should start a new round")
	}
}

func TestFlapAfterGameOverRestarts(t *testing.T) {
	m := newTestModel(t, Options{Mode: config.ModeInsane})
	m, _ = update(t, m, keyEnter)
	m, _ = update(t, m, keySpace)
	m = playUntilOver(t, m)
	overToken := m.loop.Token()

	m, cmd := update(t, m, keySpace)
	if cmd == nil || !m.loop.Armed() {
		t.Fatal("flap on the game over screen should arm a new frame chain")
	}
	if m.machine.Phase() != flappy.PhasePreStart {
		t.Fatalf("phase = %v, want prestart", m.machine.Phase())
	}
	if m.machine.Mode() != config.ModeInsane {
		t.Errorf("mode = %v, want the previous round's mode", m.machine.Mode())
	}
	if m.loop.Accept(overToken) {
		t.Error("the finished round's token should stay invalid")
	}
	if len(m.machine.Snapshot().Pipes) != 0 {
		t.Error("the new round should wait for its own first flap")
	}

	m, _ = update(t, m, keySpace)
	if m.machine.Phase() != flappy.PhaseActive {
		t.Errorf("second flap: phase = %v, want active", m.machine.Phase())
	}
}

func TestRoundRecordedInStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, Options{Store: store, Mode: config.ModeInsane})
	m, _ = update(t, m, keyEnter)
	m, _ = update(t, m, keySpace)
	playUntilOver(t, m)

	rounds, err := store.RecentRounds(10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 1 || rounds[0].Mode != "insane" {
		t.Errorf("recorded rounds = %+v", rounds)
	}
}

func TestDirectStart(t *testing.T) {
	m := newTestModel(t, Options{Direct: true, Mode: config.ModeInsane})

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("direct session should start a round from Init")
	}
	m, _ = update(t, m, cmd())

	if m.view != viewGame || m.machine.Mode() != config.ModeInsane {
		t.Errorf("view = %v mode = %v", m.view, m.machine.Mode())
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = update(t, m, keyTab)
	if m.view != viewScores {
		t.Fatalf("view = %v, want scores", m.view)
	}
	if !strings.Contains(m.View(), "Scores are not being saved") {
		t.Error("scoreboard should explain the missing store")
	}

	m, _ = update(t, m, keyEsc)
	if m.view != viewMenu {
		t.Errorf("view = %v, want menu", m.view)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, keyEnter)

	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" || m.loop.Armed() {
		t.Error("quitting model should stop and render nothing")
	}
}

func TestScreenshot(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, keyEnter)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(m.status, "Saved ") {
		t.Fatalf("status = %q", m.status)
	}

	files, err := filepath.Glob(filepath.Join(m.opts.ScreenshotDir, "flappy_*.txt"))
	if err != nil || len(files) != 1 {
		t.Errorf("screenshots = %v, err = %v", files, err)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorCoin)
	s.DrawText(2, 0, "cd")
	s.DrawTextColored(0, 1, "xyz", core.Color(200))

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("first line %q lost its text", lines[0])
	}
	if !strings.Contains(lines[1], "xyz") {
		t.Errorf("unknown color dropped text: %q", lines[1])
	}
}
