// Package controller runs the gate. It watches the presence sensors, decides
// whether a vehicle may pass, challenges the driver for a credential when
// required and sequences the barrier.
package controller

import (
	"context"
	"errors"
	"time"

	"github.com/rs/xid"

	"github.com/sarchlab/gatekeeper/actuation"
	"github.com/sarchlab/gatekeeper/auth"
	"github.com/sarchlab/gatekeeper/capacity"
	"github.com/sarchlab/gatekeeper/credential"
	"github.com/sarchlab/gatekeeper/hooking"
	"github.com/sarchlab/gatekeeper/policy"
	"github.com/sarchlab/gatekeeper/presentation"
	"github.com/sarchlab/gatekeeper/sensing"
	"github.com/sarchlab/gatekeeper/timing"
	"github.com/sarchlab/gatekeeper/tracing"
)

// Messages shown to the driver.
const (
	MsgLotFull            = "lot full"
	MsgWrongCredential    = "wrong credential"
	MsgCredentialChanged  = "credential changed"
	MsgCredentialRejected = "credential change rejected"
)

const (
	passageKind  = "passage"
	passageEntry = "entry"
	passageExit  = "exit"
)

// State is the phase of the control flow.
type State int

// States of the controller.
const (
	Idle State = iota
	EntryPending
	AwaitingCredential
	Actuating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case EntryPending:
		return "EntryPending"
	case AwaitingCredential:
		return "AwaitingCredential"
	case Actuating:
		return "Actuating"
	default:
		return "Unknown"
	}
}

// Controller is the gate control task. It handles one vehicle at a time;
// edges detected while a vehicle is being handled are ignored.
type Controller struct {
	hooking.HookableBase

	name        string
	clock       timing.Clock
	sensors     sensing.Reader
	monitor     *sensing.Monitor
	capacity    *capacity.Tracker
	credentials *credential.Store
	session     *auth.Session
	policy      *policy.AccessPolicy
	actuator    *actuation.Actuator
	display     presentation.Display
	events      *presentation.EventQueue
	services    []timing.Ticker
	waiter      timing.Waiter

	tickInterval time.Duration
	openSettle   time.Duration
	closeSettle  time.Duration

	state      State
	passageID  string
	gateCycles int
}

// Name returns the name of the controller.
func (c *Controller) Name() string {
	return c.name
}

// State returns the phase of the control flow.
func (c *Controller) State() State {
	return c.state
}

// Count returns the number of parked vehicles.
func (c *Controller) Count() int {
	return c.capacity.Count()
}

// GateCycles returns how many times the barrier has completed a full
// open-close cycle.
func (c *Controller) GateCycles() int {
	return c.gateCycles
}

// Actuator returns the barrier actuator.
func (c *Controller) Actuator() *actuation.Actuator {
	return c.actuator
}

// Session returns the authentication session.
func (c *Controller) Session() *auth.Session {
	return c.session
}

// Events returns the queue through which the presentation layer reports the
// driver's input.
func (c *Controller) Events() *presentation.EventQueue {
	return c.events
}

// Run ticks the controller until the context is done.
func (c *Controller) Run(ctx context.Context) error {
	return timing.NewTickLoop(c.clock, c.tickInterval, c).Run(ctx)
}

// Tick runs one control step.
func (c *Controller) Tick(ctx context.Context) bool {
	c.service()

	madeProgress := c.handleEvents()

	edge := c.monitor.PollReader(c.sensors)

	switch c.state {
	case Idle:
		madeProgress = c.handleEdge(ctx, edge) || madeProgress
	case AwaitingCredential:
		madeProgress = c.awaitCredential(ctx) || madeProgress
	}

	return madeProgress
}

// service runs the periodic updates that must keep going during waits.
func (c *Controller) service() {
	c.display.SetClockDisplay(timing.FormatClock(c.clock.Now()))

	for _, s := range c.services {
		s.Tick(context.Background())
	}
}

func (c *Controller) handleEvents() bool {
	events := c.events.Drain()

	for _, e := range events {
		switch e := e.(type) {
		case presentation.ButtonPressed:
			c.handleButton(e)
		case presentation.FieldFocused:
			c.display.SetKeyboardVisible(true)
		case presentation.FieldDefocused:
			c.display.SetKeyboardVisible(false)
		case presentation.CredentialChangeRequested:
			c.changeCredential(e)
		}
	}

	return len(events) > 0
}

func (c *Controller) handleButton(e presentation.ButtonPressed) {
	if e.ID != presentation.ButtonValidate {
		return
	}

	c.display.SetKeyboardVisible(false)

	if c.state != AwaitingCredential {
		return
	}

	err := c.session.Submit(c.display.ReadCredentialInput())
	if errors.Is(err, auth.ErrCredentialMismatch) {
		c.display.ClearCredentialInput()
		c.display.ShowMessage(MsgWrongCredential)
		c.step("credential-mismatch")
	}
}

func (c *Controller) changeCredential(e presentation.CredentialChangeRequested) {
	if err := c.credentials.Rotate(e.Old, e.New); err != nil {
		c.display.ShowMessage(MsgCredentialRejected)
		return
	}

	c.display.ShowMessage(MsgCredentialChanged)
}

func (c *Controller) handleEdge(ctx context.Context, edge sensing.Edge) bool {
	switch edge {
	case sensing.EntryEdge:
		c.startPassage(passageEntry)
		c.admit(ctx)
	case sensing.ExitEdge:
		c.startPassage(passageExit)
		c.capacity.Release()
		c.updateCountDisplay()
		c.actuate(ctx)
	default:
		return false
	}

	return true
}

// admit decides on a vehicle that arrived at the entry sensor.
func (c *Controller) admit(ctx context.Context) {
	c.state = EntryPending

	if err := c.capacity.TryReserve(); err != nil {
		c.refuseFull()
		return
	}

	if !c.policy.RequiresAuthentication(c.clock.Now()) {
		c.step("auto-entry")
		c.updateCountDisplay()
		c.actuate(ctx)

		return
	}

	c.capacity.Release()

	if err := c.session.Start(); err != nil {
		c.display.ShowMessage(err.Error())
		c.endPassage()
		c.state = Idle

		return
	}

	c.step("auth-required")
	c.display.SetBarrierVisible(false)
	c.display.ShowLoginPrompt()
	c.state = AwaitingCredential
}

func (c *Controller) awaitCredential(ctx context.Context) bool {
	switch {
	case c.session.State() == auth.Granted:
		c.session.Consume()
		c.step("granted")
		c.display.HideLoginPrompt()
		c.display.SetBarrierVisible(true)

		if err := c.capacity.TryReserve(); err != nil {
			c.refuseFull()
			return true
		}

		c.updateCountDisplay()
		c.actuate(ctx)

		return true
	case c.monitor.Sample().Entry != sensing.Low:
		_ = c.session.Cancel()
		c.session.Consume()
		c.step("cancelled")
		c.display.HideLoginPrompt()
		c.display.SetBarrierVisible(true)
		c.endPassage()
		c.state = Idle

		return true
	}

	return false
}

func (c *Controller) refuseFull() {
	c.display.ShowMessage(MsgLotFull)
	c.step("lot-full")
	c.endPassage()
	c.state = Idle
}

// actuate lets the vehicle through: open, wait until the lane is clear, close
// and wait until the barrier is down.
func (c *Controller) actuate(ctx context.Context) {
	c.state = Actuating

	c.actuator.Open()

	if err := c.waiter.Delay(ctx, c.openSettle); err != nil {
		return
	}

	err := c.waiter.WaitFor(ctx, func() bool {
		return c.actuator.Cleared(c.sensors)
	})
	if err != nil {
		return
	}

	c.actuator.Close()

	if err := c.waiter.Delay(ctx, c.closeSettle); err != nil {
		return
	}

	if err := c.waiter.WaitFor(ctx, c.actuator.IsClosed); err != nil {
		return
	}

	c.updateCountDisplay()
	c.endPassage()
	c.monitor.Reset()
	c.state = Idle
}

func (c *Controller) gateMoved(ctx hooking.HookCtx) {
	if ctx.Pos != actuation.HookPosGateTransition {
		return
	}

	t := ctx.Item.(actuation.Transition)
	c.display.SetGateStateDisplay(t.To.String())

	switch t.To {
	case actuation.Opening:
		c.step("gate-opening")
	case actuation.Open:
		c.step("gate-open")
	case actuation.Closing:
		c.step("gate-closing")
	case actuation.Closed:
		c.step("gate-closed")
		c.gateCycles++
	}
}

func (c *Controller) updateCountDisplay() {
	c.display.SetCountDisplay(c.capacity.Count(), c.capacity.Max())
}

func (c *Controller) startPassage(what string) {
	c.passageID = xid.New().String()
	tracing.StartTask(c.passageID, "", c, passageKind, what, nil)
}

func (c *Controller) step(what string) {
	if c.passageID == "" {
		return
	}

	tracing.AddTaskStep(c.passageID, c, what)
}

func (c *Controller) endPassage() {
	if c.passageID == "" {
		return
	}

	tracing.EndTask(c.passageID, c)
	c.passageID = ""
}
