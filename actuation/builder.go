package actuation

import (
	"log"
	"time"
)

// Builder can build actuators.
type Builder struct {
	driver                   Driver
	animator                 Animator
	openSignal, closedSignal int
	openAngle, closedAngle   int
	duration                 time.Duration
	onAngle                  func(angle int)
}

// MakeBuilder creates a builder with the default barrier parameters: a
// 2000us open pulse, a 1000us closed pulse, the arm upright (0) when open
// and horizontal (900) when closed, and a 500ms movement.
func MakeBuilder() Builder {
	return Builder{
		openSignal:   2000,
		closedSignal: 1000,
		openAngle:    0,
		closedAngle:  900,
		duration:     500 * time.Millisecond,
	}
}

// WithDriver sets the motor driver.
func (b Builder) WithDriver(d Driver) Builder {
	b.driver = d
	return b
}

// WithAnimator sets the arm animator.
func (b Builder) WithAnimator(a Animator) Builder {
	b.animator = a
	return b
}

// WithSignals sets the drive levels for the open and closed positions.
func (b Builder) WithSignals(open, closed int) Builder {
	b.openSignal = open
	b.closedSignal = closed

	return b
}

// WithAngles sets the arm angles, in tenths of a degree, for the open and
// closed positions.
func (b Builder) WithAngles(open, closed int) Builder {
	b.openAngle = open
	b.closedAngle = closed

	return b
}

// WithAnimationDuration sets how long an arm movement takes.
func (b Builder) WithAnimationDuration(d time.Duration) Builder {
	b.duration = d
	return b
}

// WithAngleListener sets a function that receives every arm angle update.
func (b Builder) WithAngleListener(f func(angle int)) Builder {
	b.onAngle = f
	return b
}

// Build creates a closed actuator.
func (b Builder) Build(name string) *Actuator {
	if b.driver == nil {
		log.Panic("actuator requires a driver")
	}

	if b.animator == nil {
		log.Panic("actuator requires an animator")
	}

	return &Actuator{
		name:         name,
		driver:       b.driver,
		animator:     b.animator,
		openSignal:   b.openSignal,
		closedSignal: b.closedSignal,
		openAngle:    b.openAngle,
		closedAngle:  b.closedAngle,
		duration:     b.duration,
		onAngle:      b.onAngle,
		state:        Closed,
		angle:        b.closedAngle,
	}
}
