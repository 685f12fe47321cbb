package flappy

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Clock converts wall-clock frame timestamps into normalized simulation steps.
// A normalized step of 1.0 is one nominal 60 Hz frame.
type Clock struct {
	frame    time.Duration
	maxDelta time.Duration
	last     time.Time
	started  bool
}

// NewClock creates a clock from the tuning.
func NewClock(cfg config.FlappyClock) Clock {
	return Clock{
		frame:    msToDuration(cfg.FrameMs),
		maxDelta: msToDuration(cfg.MaxDeltaMs),
	}
}

// Reset makes now the reference for the next Advance.
func (c *Clock) Reset(now time.Time) {
	c.last = now
	c.started = true
}

// Advance returns the normalized step since the previous call and the capped
// wall-clock delta it represents. The first call after construction only
// establishes the reference and returns zero.
func (c *Clock) Advance(now time.Time) (float64, time.Duration) {
	if !c.started {
		c.Reset(now)
		return 0, 0
	}

	delta := now.Sub(c.last)
	c.last = now

	if delta < 0 {
		delta = 0
	}
	if delta > c.maxDelta {
		delta = c.maxDelta
	}
	return float64(delta) / float64(c.frame), delta
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// FrameLoop tracks the single live chain of self-rescheduling frame callbacks.
//
// Each Start hands out a new token and invalidates every earlier one, so a
// frame callback scheduled before a restart or a Stop is recognized as stale
// and must not re-arm itself. The zero value is a stopped loop.
type FrameLoop struct {
	armed bool
	token uint64
}

// Start cancels any previous chain and arms a new one, returning its token.
func (l *FrameLoop) Start() uint64 {
	l.token++
	l.armed = true
	return l.token
}

// Stop cancels the live chain. Calling Stop on a stopped loop is a no-op.
func (l *FrameLoop) Stop() {
	if !l.armed {
		return
	}
	l.armed = false
	l.token++
}

// Accept reports whether a callback carrying token belongs to the live chain.
// Only accepted callbacks may run a frame and schedule the next one.
func (l *FrameLoop) Accept(token uint64) bool {
	return l.armed && token == l.token
}

// Armed reports whether a chain is live.
func (l *FrameLoop) Armed() bool {
	return l.armed
}

// Token returns the token of the live chain, or of the last cancelled one.
func (l *FrameLoop) Token() uint64 {
	return l.token
}
