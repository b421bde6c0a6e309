// Package actuation moves the barrier arm. It drives the motor signal, asks
// the animator to move the visual arm, and enforces the gate cycle
// Closed -> Opening -> Open -> Closing -> Closed.
package actuation

import (
	"log"
	"sync"
	"time"

	"github.com/sarchlab/gatekeeper/hooking"
	"github.com/sarchlab/gatekeeper/sensing"
)

// GateState is the position of the barrier.
type GateState int

// States of the barrier.
const (
	Closed GateState = iota
	Opening
	Open
	Closing
)

func (s GateState) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Opening:
		return "Opening"
	case Open:
		return "Open"
	case Closing:
		return "Closing"
	default:
		return "Unknown"
	}
}

// next returns the only state that may follow s.
func (s GateState) next() GateState {
	return (s + 1) % 4
}

// Transition describes a change of the gate state. It is the item of the
// HookPosGateTransition hook.
type Transition struct {
	From GateState
	To   GateState
}

// HookPosGateTransition is triggered after the gate changes state.
var HookPosGateTransition = &hooking.HookPos{Name: "GateTransition"}

// Driver sets the physical drive level of the barrier motor.
type Driver interface {
	SetActuatorSignal(value int)
}

// Animator moves the visual arm to a target angle, in tenths of a degree,
// over a duration. It returns immediately and reports the intermediate angles
// through onUpdate; the last update carries the target angle.
type Animator interface {
	AnimateArm(targetTenthsDeg int, d time.Duration, onUpdate func(angle int))
}

// Actuator sequences the barrier movements.
type Actuator struct {
	hooking.HookableBase

	name     string
	driver   Driver
	animator Animator

	openSignal, closedSignal int
	openAngle, closedAngle   int
	duration                 time.Duration
	onAngle                  func(angle int)

	lock  sync.Mutex
	state GateState
	angle int
}

// Name returns the name of the actuator.
func (a *Actuator) Name() string {
	return a.name
}

// State returns the gate state.
func (a *Actuator) State() GateState {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.state
}

// Angle returns the last arm angle reported by the animator.
func (a *Actuator) Angle() int {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.angle
}

// Open raises the barrier. The gate must be closed.
func (a *Actuator) Open() {
	a.move(Closed, a.openSignal, a.openAngle)
}

// Close lowers the barrier. The gate must be open.
func (a *Actuator) Close() {
	a.move(Open, a.closedSignal, a.closedAngle)
}

func (a *Actuator) move(from GateState, signal, target int) {
	moving := a.transit(from)

	a.driver.SetActuatorSignal(signal)
	a.animator.AnimateArm(target, a.duration, func(angle int) {
		a.armMoved(moving, target, angle)
	})
}

func (a *Actuator) armMoved(moving GateState, target, angle int) {
	a.lock.Lock()
	a.angle = angle
	arrived := angle == target && a.state == moving
	a.lock.Unlock()

	if a.onAngle != nil {
		a.onAngle(angle)
	}

	if arrived {
		a.transit(moving)
	}
}

// transit moves the gate from the given state to the state that follows it.
func (a *Actuator) transit(from GateState) GateState {
	a.lock.Lock()

	if a.state != from {
		a.lock.Unlock()
		log.Panicf("gate %s cannot leave state %s, it is %s",
			a.name, from, a.state)
	}

	to := from.next()
	a.state = to

	a.lock.Unlock()

	a.InvokeHook(hooking.HookCtx{
		Domain: a,
		Pos:    HookPosGateTransition,
		Item:   Transition{From: from, To: to},
	})

	return to
}

// Cleared tells if the vehicle has passed: the barrier is fully open and
// neither sensor is LOW.
func (a *Actuator) Cleared(r sensing.Reader) bool {
	return a.State() == Open && sensing.Clear(r)
}

// IsClosed tells if the barrier is fully closed.
func (a *Actuator) IsClosed() bool {
	return a.State() == Closed
}
