package timing

import (
	"context"
	"time"
)

// A Waiter blocks the control task cooperatively. It sleeps in short,
// fixed-size steps and runs Between after every step, so periodic work such
// as refreshing the clock display or stepping an animation keeps happening
// while the controller waits.
type Waiter struct {
	Clock    Clock
	Interval time.Duration
	Between  func()
}

// WaitFor sleeps until cond returns true. The context is polled once per step.
// There is no upper bound on the wait.
func (w Waiter) WaitFor(ctx context.Context, cond func() bool) error {
	for !cond() {
		if err := ctx.Err(); err != nil {
			return err
		}

		w.step(w.Interval)
	}

	return nil
}

// Delay sleeps for d, split into steps of the waiter's interval.
func (w Waiter) Delay(ctx context.Context, d time.Duration) error {
	for d > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		step := w.Interval
		if step <= 0 || step > d {
			step = d
		}

		w.step(step)
		d -= step
	}

	return nil
}

func (w Waiter) step(d time.Duration) {
	w.Clock.Sleep(d)

	if w.Between != nil {
		w.Between()
	}
}
