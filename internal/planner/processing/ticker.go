// Package processing drives the cosmetic progress indicator shown while a
// plan is being prepared. It never touches generation; the plan is computed
// synchronously and only its release is delayed.
package processing

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultDelay    = 3 * time.Second
	DefaultInterval = 400 * time.Millisecond
)

// StepsFor returns the progress messages in display order. The compliance
// check step only appears when directional compliance was requested.
func StepsFor(compliant bool) []string {
	steps := []string{
		"Analyzing uploaded plot image...",
		"Detecting walls and boundaries...",
		"Identifying doors and windows...",
		"Calculating room boundaries...",
		"Optimizing room layouts...",
		"Applying architectural rules...",
	}
	if compliant {
		steps = append(steps, "Verifying directional compliance...")
	}
	return append(steps, "Generating final floor plan...")
}

// Tick is one progress update.
type Tick struct {
	Step    int
	Message string
}

// Ticker cycles through a fixed list of steps, wrapping at the end.
type Ticker struct {
	mu       sync.Mutex
	steps    []string
	step     int
	interval time.Duration
}

func NewTicker(steps []string, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{steps: steps, interval: interval}
}

// Current returns the step being displayed.
func (t *Ticker) Current() Tick {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current()
}

func (t *Ticker) current() Tick {
	if len(t.steps) == 0 {
		return Tick{}
	}
	return Tick{Step: t.step, Message: t.steps[t.step]}
}

// Advance moves to the next step, modulo the step count.
func (t *Ticker) Advance() Tick {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.steps) > 0 {
		t.step = (t.step + 1) % len(t.steps)
	}
	return t.current()
}

// Run advances once per interval until delay elapses or ctx is cancelled.
// onTick may be nil. Returns ctx.Err() on cancellation.
func (t *Ticker) Run(ctx context.Context, delay time.Duration, onTick func(Tick)) error {
	if delay <= 0 {
		return nil
	}

	deadline := time.NewTimer(delay)
	defer deadline.Stop()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return nil
		case <-ticker.C:
			tick := t.Advance()
			if onTick != nil {
				onTick(tick)
			}
		}
	}
}
