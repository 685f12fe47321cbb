// Package flappy implements the simulation core of the game: the frame clock,
// actor physics, pipe and coin generation, collision and scoring, and the
// round state machine. It knows nothing about terminals or key presses; a
// frontend feeds it flaps and frame timestamps and draws its Snapshot.
package flappy

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// ErrWorldTooSmall is returned by StartRound when the world cannot fit a pipe
// gap with the minimum segment above and below it.
var ErrWorldTooSmall = errors.New("flappy: world too small")

// ErrStartFailed wraps a panic recovered while starting a round.
var ErrStartFailed = errors.New("flappy: round start failed")

// Phase is the round lifecycle state.
type Phase int

const (
	PhaseIdle     Phase = iota // Menu, no round
	PhasePreStart              // Round prepared, waiting for the first flap
	PhaseActive                // Simulation running
	PhaseOver                  // Collision happened, summary available
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreStart:
		return "prestart"
	case PhaseActive:
		return "active"
	case PhaseOver:
		return "over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// BestScoreStore persists the single best score.
type BestScoreStore interface {
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
}

// Summary describes a finished round.
type Summary struct {
	Mode    config.Mode
	Score   int // Pipes passed
	Coins   int // Coin value collected
	Total   int // Value compared against the best score
	Best    int
	NewBest bool
	Elapsed time.Duration // Simulated time, excluding pauses
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the diagnostics sink.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithBestScoreStore sets the best score persistence. Without it the best
// score only lives as long as the Machine.
func WithBestScoreStore(s BestScoreStore) Option {
	return func(m *Machine) {
		m.store = s
	}
}

// WithSeed makes rounds deterministic. Round k uses seed+k.
func WithSeed(seed int64) Option {
	return func(m *Machine) {
		m.seed = seed
	}
}

// WithRandom replaces the random source factory.
func WithRandom(newRand func(seed int64) Random) Option {
	return func(m *Machine) {
		if newRand != nil {
			m.newRand = newRand
		}
	}
}

// WithDraw replaces the coin value draw.
func WithDraw(draw DrawFunc) Option {
	return func(m *Machine) {
		if draw != nil {
			m.draw = draw
		}
	}
}

// OnRoundOver registers a callback invoked once per finished round.
func OnRoundOver(fn func(Summary)) Option {
	return func(m *Machine) {
		m.onOver = fn
	}
}

// Machine owns one game session. It is driven from a single goroutine and
// is not safe for concurrent use.
type Machine struct {
	cfg     config.FlappyConfig
	logger  *log.Logger
	store   BestScoreStore
	newRand func(seed int64) Random
	draw    DrawFunc
	onOver  func(Summary)
	seed    int64
	rounds  int64

	world  World
	phase  Phase
	mode   config.Mode
	tuning config.ModeTuning
	paused bool

	actor Actor
	pipes *PipeManager
	coins *CoinManager
	clock Clock

	frames    int
	score     int
	coinTotal int
	best      int
	elapsed   time.Duration
	summary   *Summary
}

// NewMachine creates an idle machine sized to the configured world.
func NewMachine(cfg config.FlappyConfig, opts ...Option) *Machine {
	m := &Machine{
		cfg:     cfg,
		logger:  log.New(io.Discard),
		newRand: newRandom,
		draw:    WeightedDraw,
		world:   World{Width: cfg.World.Width, Height: cfg.World.Height},
		mode:    config.DefaultMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.seed == 0 {
		m.seed = time.Now().UnixNano()
	}

	m.tuning = cfg.Tuning(m.mode)
	m.actor = NewActor(m.world, cfg.Player.Size)
	m.pipes = NewPipeManager(m.newRand(m.seed), cfg, m.world)
	m.coins = NewCoinManager(m.newRand(m.seed), m.draw, cfg, m.tuning.Bonus)
	m.clock = NewClock(cfg.Clock)
	m.loadBest()
	return m
}

// StartRound prepares a new round in the named mode and waits for the first
// flap. Unknown mode names fall back to the default mode. Any failure leaves
// the machine idle and restartable.
func (m *Machine) StartRound(modeName string, now time.Time) (mode config.Mode, err error) {
	mode, ok := config.ParseMode(modeName)
	if !ok {
		m.logger.Warn("unknown mode, using default", "requested", modeName, "mode", mode)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrStartFailed, r)
			m.abort(err)
		}
	}()

	if err := m.checkWorld(); err != nil {
		m.abort(err)
		return mode, err
	}

	m.rounds++
	seed := m.seed + m.rounds
	m.mode = mode
	m.tuning = m.cfg.Tuning(mode)
	m.actor = NewActor(m.world, m.cfg.Player.Size)
	m.pipes.Resize(m.world)
	m.pipes.Reset(m.newRand(seed))
	m.coins.Reset(m.newRand(^seed), m.tuning.Bonus)
	m.clock.Reset(now)
	m.frames = 0
	m.score = 0
	m.coinTotal = 0
	m.elapsed = 0
	m.paused = false
	m.summary = nil
	m.loadBest()

	m.phase = PhasePreStart
	m.logger.Debug("round ready", "mode", mode, "seed", seed, "world", fmt.Sprintf("%.0fx%.0f", m.world.Width, m.world.Height))
	return mode, nil
}

func (m *Machine) checkWorld() error {
	if m.world.Width <= 0 {
		return fmt.Errorf("%w: width %.1f", ErrWorldTooSmall, m.world.Width)
	}
	if need := config.MinWorldHeight(m.cfg); m.world.Height < need {
		return fmt.Errorf("%w: height %.1f, need at least %.1f", ErrWorldTooSmall, m.world.Height, need)
	}
	return nil
}

func (m *Machine) abort(err error) {
	m.phase = PhaseIdle
	m.paused = false
	m.logger.Error("round start failed", "err", err)
}

// Flap handles one flap input. The first flap of a round starts the
// simulation and creates the first pipe; later flaps override the velocity.
func (m *Machine) Flap() {
	switch m.phase {
	case PhasePreStart:
		m.phase = PhaseActive
		m.spawnPipe()
		m.actor.Flap(m.cfg.Physics.FlapImpulse)
		m.logger.Debug("round started", "mode", m.mode)
	case PhaseActive:
		if m.paused {
			return
		}
		m.actor.Flap(m.cfg.Physics.FlapImpulse)
	}
}

// Step advances the round to now. Idle, finished and paused rounds only
// move the clock reference, so resuming never produces a jump. The wing
// animation runs in every phase except pause.
func (m *Machine) Step(now time.Time) {
	n, dt := m.clock.Advance(now)
	if m.paused {
		return
	}
	m.animate()

	switch m.phase {
	case PhasePreStart:
		m.actor.Freeze()
	case PhaseActive:
		m.advance(n, dt)
	}
}

func (m *Machine) animate() {
	m.frames++
	period := m.cfg.Physics.WingPeriod
	if period < 1 {
		period = 1
	}
	m.actor.WingFrame = (m.frames / period) % wingFrames
}

// advance runs one active frame: physics, scroll, spawn, cull, score,
// collect, collision.
func (m *Machine) advance(n float64, dt time.Duration) {
	m.elapsed += dt

	phys := m.cfg.Physics
	m.actor.Integrate(m.tuning.Gravity, n, phys.TiltGain, phys.MaxTilt)

	dist := m.tuning.Speed * n
	m.pipes.Scroll(dist)
	m.coins.Scroll(dist, n)

	if _, ok := m.pipes.SpawnIfDue(); ok {
		m.placeCoins()
	}
	m.pipes.Cull()
	m.coins.Cull()

	box := m.actor.Rect()
	width := m.cfg.Obstacles.PipeWidth
	m.score += ScorePipes(m.pipes.Pipes(), box, width)
	if m.cfg.Bonus.Enabled {
		m.coinTotal += CollectCoins(m.coins.Coins(), box)
	}

	if CheckCollision(box, m.pipes.Pipes(), m.world.Height, m.cfg.World.GroundHeight, width, m.cfg.Obstacles.PipeGap) {
		m.endRound()
	}
}

func (m *Machine) spawnPipe() {
	m.pipes.Spawn()
	m.placeCoins()
}

func (m *Machine) placeCoins() {
	pipes := m.pipes.Pipes()
	m.coins.PlaceFor(pipes[len(pipes)-1], m.pipes.Spawned()-1)
}

func (m *Machine) endRound() {
	m.phase = PhaseOver

	total := m.score
	if m.cfg.Bonus.Enabled {
		total += m.coinTotal
	}

	newBest := total > m.best
	if newBest {
		m.best = total
		m.saveBest()
	}

	m.summary = &Summary{
		Mode:    m.mode,
		Score:   m.score,
		Coins:   m.coinTotal,
		Total:   total,
		Best:    m.best,
		NewBest: newBest,
		Elapsed: m.elapsed,
	}
	m.logger.Info("round over",
		"mode", m.mode, "score", m.score, "coins", m.coinTotal,
		"total", total, "best", m.best, "elapsed", m.elapsed.Round(time.Millisecond))

	if m.onOver != nil {
		m.onOver(*m.summary)
	}
}

func (m *Machine) loadBest() {
	if m.store == nil {
		return
	}
	best, err := m.store.LoadBestScore()
	if err != nil {
		m.logger.Warn("could not load best score", "err", err)
		return
	}
	// Keep the in-memory value if the store went backwards.
	if best > m.best {
		m.best = best
	}
}

func (m *Machine) saveBest() {
	if m.store == nil {
		return
	}
	if err := m.store.SaveBestScore(m.best); err != nil {
		m.logger.Warn("could not save best score", "best", m.best, "err", err)
	}
}

// TogglePause pauses or resumes an active round.
func (m *Machine) TogglePause() {
	if m.phase != PhaseActive {
		return
	}
	m.paused = !m.paused
	m.logger.Debug("pause toggled", "paused", m.paused)
}

// Stop abandons the current round without scoring it.
func (m *Machine) Stop() {
	if m.phase == PhasePreStart || m.phase == PhaseActive {
		m.logger.Debug("round abandoned", "mode", m.mode, "score", m.score)
	}
	m.phase = PhaseIdle
	m.paused = false
}

// ReturnToMenu leaves any phase for Idle and forgets the last summary.
func (m *Machine) ReturnToMenu() {
	m.Stop()
	m.summary = nil
}

// Resize changes the world size. Only the actor's horizontal anchor follows;
// score, pipes and coins are untouched. Non-positive sizes are ignored, and a
// height too small for a gap between two minimum segments keeps the current
// height.
func (m *Machine) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if need := config.MinWorldHeight(m.cfg); height < need {
		m.logger.Warn("world height below minimum, keeping current height",
			"requested", height, "need", need, "height", m.world.Height)
		height = m.world.Height
	}
	m.world = World{Width: width, Height: height}
	m.actor.X = centerX(m.world, m.actor.Width)
	m.pipes.Resize(m.world)
	if m.phase == PhaseIdle {
		m.actor.Y = height / 2
	}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Mode returns the mode of the current or last round.
func (m *Machine) Mode() config.Mode {
	return m.mode
}

// Best returns the best total seen so far.
func (m *Machine) Best() int {
	return m.best
}

// Config returns the tuning the machine runs with.
func (m *Machine) Config() config.FlappyConfig {
	return m.cfg
}
