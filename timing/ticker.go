package timing

import (
	"context"
	"log"
	"time"
)

// A Ticker is an object that updates states with ticks.
type Ticker interface {
	// Tick runs one control step. It returns true if the step changed any
	// state.
	Tick(ctx context.Context) bool
}

// TickLoop invokes a Ticker once per interval.
type TickLoop struct {
	clock    Clock
	interval time.Duration
	ticker   Ticker
}

// NewTickLoop creates a loop that ticks t every interval on clock c.
func NewTickLoop(c Clock, interval time.Duration, t Ticker) *TickLoop {
	if interval <= 0 {
		log.Panic("tick interval must be positive")
	}

	return &TickLoop{
		clock:    c,
		interval: interval,
		ticker:   t,
	}
}

// Run ticks until the context is done.
func (l *TickLoop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.ticker.Tick(ctx)
		l.clock.Sleep(l.interval)
	}
}

// RunUntil ticks until the clock reaches the deadline or the context is done.
// It returns the number of ticks that made progress.
func (l *TickLoop) RunUntil(ctx context.Context, deadline time.Time) (int, error) {
	progress := 0

	for l.clock.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return progress, err
		}

		if l.ticker.Tick(ctx) {
			progress++
		}

		l.clock.Sleep(l.interval)
	}

	return progress, nil
}
