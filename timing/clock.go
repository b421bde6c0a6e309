// Package timing provides the time base of the gate: a Clock that is either
// the wall clock or a simulated clock, the cooperative wait helper used while
// the barrier is moving, and the fixed-interval tick loop.
package timing

import (
	"log"
	"sync"
	"time"

	"github.com/sarchlab/gatekeeper/hooking"
)

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	Now() time.Time
}

// Clock supplies the current time and lets the control task sleep. Every
// blocking wait in the gate is built from Sleep calls so that a simulated
// clock advances exactly as far as the controller waits.
type Clock interface {
	TimeTeller

	// Sleep pauses the calling task for d.
	Sleep(d time.Duration)
}

// RealClock is the wall clock.
type RealClock struct{}

// NewRealClock creates a RealClock.
func NewRealClock() RealClock {
	return RealClock{}
}

// Now returns the wall clock time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks the calling goroutine for d.
func (RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// HookPosClockAdvance is triggered after a SimClock moves forward. The hook
// item is the new time.
var HookPosClockAdvance = &hooking.HookPos{Name: "ClockAdvance"}

// SimClock is a simulated clock. Time only moves when Sleep or Advance is
// called, which makes a gate run deterministic.
type SimClock struct {
	hooking.HookableBase

	lock sync.RWMutex
	now  time.Time
}

// NewSimClock creates a simulated clock that starts at the given time.
func NewSimClock(start time.Time) *SimClock {
	return &SimClock{now: start}
}

// Name returns the name of the clock.
func (c *SimClock) Name() string {
	return "SimClock"
}

// Now returns the simulated time.
func (c *SimClock) Now() time.Time {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.now
}

// Sleep advances the simulated time by d instead of blocking.
func (c *SimClock) Sleep(d time.Duration) {
	c.Advance(d)
}

// Advance moves the simulated time forward and notifies the hooks.
func (c *SimClock) Advance(d time.Duration) {
	if d < 0 {
		log.Panic("cannot move a simulated clock backwards")
	}

	c.lock.Lock()
	c.now = c.now.Add(d)
	now := c.now
	c.lock.Unlock()

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosClockAdvance,
		Item:   now,
	})
}

// FormatClock renders a time the way the gate's clock display shows it.
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}
