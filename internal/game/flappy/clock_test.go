package flappy

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func TestClockAdvance(t *testing.T) {
	c := NewClock(config.DefaultFlappyConfig().Clock)
	frame := c.frame

	if n, dt := c.Advance(t0); n != 0 || dt != 0 {
		t.Errorf("first Advance = (%v, %v), want (0, 0)", n, dt)
	}

	tests := []struct {
		name  string
		delta time.Duration
		wantN float64
		wantD time.Duration
	}{
		{"one frame", frame, 1, frame},
		{"half frame", frame / 2, 0.5, frame / 2},
		{"capped", time.Second, float64(100*time.Millisecond) / float64(frame), 100 * time.Millisecond},
		{"backwards", -time.Second, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.Reset(t0)
			n, dt := c.Advance(t0.Add(tt.delta))
			if math.Abs(n-tt.wantN) > 1e-9 {
				t.Errorf("n = %v, want %v", n, tt.wantN)
			}
			if dt != tt.wantD {
				t.Errorf("dt = %v, want %v", dt, tt.wantD)
			}
		})
	}
}

func TestClockAdvanceMovesReference(t *testing.T) {
	c := NewClock(config.DefaultFlappyConfig().Clock)
	frame := c.frame
	c.Reset(t0)

	c.Advance(t0.Add(frame))
	n, _ := c.Advance(t0.Add(2 * frame))
	if math.Abs(n-1) > 1e-9 {
		t.Errorf("second Advance = %v, want 1", n)
	}
}

func TestFrameLoopTokens(t *testing.T) {
	var l FrameLoop

	if l.Armed() || l.Accept(0) {
		t.Fatal("zero FrameLoop should be stopped")
	}

	first := l.Start()
	if !l.Accept(first) {
		t.Error("live token should be accepted")
	}

	second := l.Start()
	if l.Accept(first) {
		t.Error("token from a previous Start should be stale")
	}
	if !l.Accept(second) {
		t.Error("new token should be accepted")
	}

	l.Stop()
	if l.Armed() || l.Accept(second) {
		t.Error("Stop should cancel the live chain")
	}

	// Stop twice is harmless and Start works afterwards
	l.Stop()
	third := l.Start()
	if !l.Accept(third) || l.Accept(second) {
		t.Error("restart after Stop should only accept the new token")
	}
}
