package actuation

import (
	"context"
	"sync"
	"time"

	"github.com/sarchlab/gatekeeper/timing"
)

type animation struct {
	from, to int
	start    time.Time
	duration time.Duration
	onUpdate func(angle int)
}

// LinearAnimator interpolates the arm angle linearly over time. It does not
// run on its own: every Tick computes the angle for the current time of the
// clock and reports it. Starting a new animation replaces the running one and
// continues from the current angle.
type LinearAnimator struct {
	clock timing.TimeTeller

	lock    sync.Mutex
	current int
	anim    *animation
}

// NewLinearAnimator creates an animator with the arm at the given angle.
func NewLinearAnimator(clock timing.TimeTeller, angle int) *LinearAnimator {
	return &LinearAnimator{
		clock:   clock,
		current: angle,
	}
}

// AnimateArm starts moving the arm to the target angle.
func (a *LinearAnimator) AnimateArm(
	targetTenthsDeg int,
	d time.Duration,
	onUpdate func(angle int),
) {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.anim = &animation{
		from:     a.current,
		to:       targetTenthsDeg,
		start:    a.clock.Now(),
		duration: d,
		onUpdate: onUpdate,
	}
}

// Tick updates the running animation. It returns false if no animation is
// running.
func (a *LinearAnimator) Tick(_ context.Context) bool {
	a.lock.Lock()

	anim := a.anim
	if anim == nil {
		a.lock.Unlock()
		return false
	}

	elapsed := a.clock.Now().Sub(anim.start)

	angle := anim.to
	if elapsed < anim.duration {
		delta := int64(anim.to-anim.from) * int64(elapsed) / int64(anim.duration)
		angle = anim.from + int(delta)
	} else {
		a.anim = nil
	}

	a.current = angle

	a.lock.Unlock()

	if anim.onUpdate != nil {
		anim.onUpdate(angle)
	}

	return true
}

// Angle returns the current arm angle.
func (a *LinearAnimator) Angle() int {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.current
}

// Busy tells if an animation is running.
func (a *LinearAnimator) Busy() bool {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.anim != nil
}
