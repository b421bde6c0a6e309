package simulation

import (
	"sync"

	"github.com/sarchlab/gatekeeper/sensing"
)

// ScriptedSensors are presence sensors whose levels are set by a scenario.
// Both start HIGH.
type ScriptedSensors struct {
	lock        sync.Mutex
	entry, exit bool
}

// NewScriptedSensors creates sensors on an empty lane.
func NewScriptedSensors() *ScriptedSensors {
	return &ScriptedSensors{entry: sensing.High, exit: sensing.High}
}

// ReadEntrySensor returns the level of the entry sensor.
func (s *ScriptedSensors) ReadEntrySensor() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.entry
}

// ReadExitSensor returns the level of the exit sensor.
func (s *ScriptedSensors) ReadExitSensor() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.exit
}

// Set changes the levels named in a step. Empty levels are left unchanged.
func (s *ScriptedSensors) Set(entry, exit string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if entry != "" {
		s.entry = entry == LevelHigh
	}

	if exit != "" {
		s.exit = exit == LevelHigh
	}
}

// SignalRecorder is a barrier driver that remembers every signal it was sent.
type SignalRecorder struct {
	lock    sync.Mutex
	signals []int
}

// SetActuatorSignal records the signal.
func (r *SignalRecorder) SetActuatorSignal(value int) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.signals = append(r.signals, value)
}

// Signals returns the signals in the order they were sent.
func (r *SignalRecorder) Signals() []int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return append([]int(nil), r.signals...)
}
