package controller

import (
	"log"

	"github.com/sarchlab/gatekeeper/actuation"
	"github.com/sarchlab/gatekeeper/auth"
	"github.com/sarchlab/gatekeeper/capacity"
	"github.com/sarchlab/gatekeeper/config"
	"github.com/sarchlab/gatekeeper/credential"
	"github.com/sarchlab/gatekeeper/hooking"
	"github.com/sarchlab/gatekeeper/policy"
	"github.com/sarchlab/gatekeeper/presentation"
	"github.com/sarchlab/gatekeeper/sensing"
	"github.com/sarchlab/gatekeeper/timing"
)

// Builder can build controllers.
type Builder struct {
	clock    timing.Clock
	sensors  sensing.Reader
	driver   actuation.Driver
	animator actuation.Animator
	display  presentation.Display
	events   *presentation.EventQueue
	config   config.Config
}

// MakeBuilder creates a builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		config: config.Default(),
	}
}

// WithClock sets the clock that the controller reads and sleeps on.
func (b Builder) WithClock(c timing.Clock) Builder {
	b.clock = c
	return b
}

// WithSensors sets the presence sensors.
func (b Builder) WithSensors(r sensing.Reader) Builder {
	b.sensors = r
	return b
}

// WithDriver sets the barrier motor driver.
func (b Builder) WithDriver(d actuation.Driver) Builder {
	b.driver = d
	return b
}

// WithAnimator sets the arm animator. If the animator is also a
// timing.Ticker, the controller ticks it on every tick and every wait step.
// When no animator is given, a LinearAnimator on the controller's clock is
// used.
func (b Builder) WithAnimator(a actuation.Animator) Builder {
	b.animator = a
	return b
}

// WithDisplay sets the presentation layer.
func (b Builder) WithDisplay(d presentation.Display) Builder {
	b.display = d
	return b
}

// WithEvents sets the queue that carries the driver's input. When not set, the
// controller creates its own.
func (b Builder) WithEvents(q *presentation.EventQueue) Builder {
	b.events = q
	return b
}

// WithConfig sets the gate parameters.
func (b Builder) WithConfig(c config.Config) Builder {
	b.config = c
	return b
}

// Build creates a controller in the Idle state with the barrier closed.
func (b Builder) Build(name string) *Controller {
	b.mustBeComplete()

	store, err := credential.NewStore(b.config.DefaultCredential)
	if err != nil {
		log.Panic(err)
	}

	c := &Controller{
		name:         name,
		clock:        b.clock,
		sensors:      b.sensors,
		monitor:      sensing.NewMonitor(),
		capacity:     capacity.NewTracker(b.config.MaxCapacity, b.config.InitialCount),
		credentials:  store,
		session:      auth.NewSession(name+".Session", store),
		policy:       policy.NewAccessPolicy(b.config.ScheduleWindow),
		display:      b.display,
		events:       b.events,
		tickInterval: b.config.TickInterval,
		openSettle:   b.config.OpenSettle,
		closeSettle:  b.config.CloseSettle,
	}

	if c.events == nil {
		c.events = presentation.NewEventQueue()
	}

	c.waiter = timing.Waiter{
		Clock:    b.clock,
		Interval: b.config.ClearancePollInterval,
		Between:  c.service,
	}

	animator := b.animator
	if animator == nil {
		animator = actuation.NewLinearAnimator(
			b.clock, b.config.ClosedAngleTenthsDeg)
	}

	if t, ok := animator.(timing.Ticker); ok {
		c.services = append(c.services, t)
	}

	c.actuator = actuation.MakeBuilder().
		WithDriver(b.driver).
		WithAnimator(animator).
		WithSignals(b.config.OpenSignal, b.config.ClosedSignal).
		WithAngles(b.config.OpenAngleTenthsDeg, b.config.ClosedAngleTenthsDeg).
		WithAnimationDuration(b.config.AnimationDuration).
		WithAngleListener(b.display.SetArmAngle).
		Build(name + ".Actuator")
	c.actuator.AcceptHook(hooking.HookFunc(c.gateMoved))

	b.driver.SetActuatorSignal(b.config.ClosedSignal)
	b.display.SetArmAngle(b.config.ClosedAngleTenthsDeg)
	c.updateCountDisplay()

	return c
}

func (b Builder) mustBeComplete() {
	if b.clock == nil {
		log.Panic("controller requires a clock")
	}

	if b.sensors == nil {
		log.Panic("controller requires sensors")
	}

	if b.driver == nil {
		log.Panic("controller requires a driver")
	}

	if b.display == nil {
		log.Panic("controller requires a display")
	}

	if b.config.TickInterval <= 0 {
		log.Panic("tick interval must be positive")
	}

	if b.config.ClearancePollInterval <= 0 {
		log.Panic("clearance poll interval must be positive")
	}
}
