// Package simulation runs gates on a simulated clock. A Simulation owns the
// clock and the tracing backends; a Runner replays a Scenario against one
// gate and checks the outcome.
package simulation

import (
	"log"

	"github.com/sarchlab/gatekeeper/controller"
	"github.com/sarchlab/gatekeeper/datarecording"
	"github.com/sarchlab/gatekeeper/timing"
	"github.com/sarchlab/gatekeeper/tracing"
)

// A Simulation provides the services that the simulated gates share.
type Simulation struct {
	id    string
	clock *timing.SimClock

	logger       *log.Logger
	dataRecorder datarecording.DataRecorder
	ownsRecorder bool
	visTracer    *tracing.DBTracer
	stepCounter  *tracing.StepCountTracer
	passageTimer *tracing.AverageTimeTracer

	gates         []*controller.Controller
	gateNameIndex map[string]int
}

// ID returns the ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetClock returns the simulated clock.
func (s *Simulation) GetClock() *timing.SimClock {
	return s.clock
}

// GetLogger returns the logger that receives the gate logs, or nil.
func (s *Simulation) GetLogger() *log.Logger {
	return s.logger
}

// GetDataRecorder returns the data recorder, or nil if the simulation does
// not record.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetVisTracer returns the tracer that records passages, or nil if the
// simulation does not record.
func (s *Simulation) GetVisTracer() *tracing.DBTracer {
	return s.visTracer
}

// GetStepCounter returns the tracer that counts passage outcomes.
func (s *Simulation) GetStepCounter() *tracing.StepCountTracer {
	return s.stepCounter
}

// GetPassageTimer returns the tracer that measures passage durations.
func (s *Simulation) GetPassageTimer() *tracing.AverageTimeTracer {
	return s.passageTimer
}

// RegisterGate registers a gate with the simulation and attaches the
// simulation tracers to it.
func (s *Simulation) RegisterGate(c *controller.Controller) {
	name := c.Name()
	if _, found := s.gateNameIndex[name]; found {
		log.Panicf("gate %s already registered", name)
	}

	s.gates = append(s.gates, c)
	s.gateNameIndex[name] = len(s.gates) - 1

	tracing.CollectTrace(c, s.stepCounter)
	tracing.CollectTrace(c, s.passageTimer)

	if s.logger != nil {
		logTracer := tracing.NewLogTracer(s.logger, s.clock)
		tracing.CollectTrace(c, logTracer)
		tracing.CollectTrace(c.Session(), logTracer)
	}

	if s.visTracer != nil {
		tracing.CollectTrace(c, s.visTracer)
		tracing.CollectTrace(c.Session(), s.visTracer)
	}
}

// GetGateByName returns the gate with the given name, or nil.
func (s *Simulation) GetGateByName(name string) *controller.Controller {
	i, found := s.gateNameIndex[name]
	if !found {
		return nil
	}

	return s.gates[i]
}

// Gates returns all registered gates.
func (s *Simulation) Gates() []*controller.Controller {
	return s.gates
}

// Terminate flushes the passage records. A recorder created by the
// simulation is also closed.
func (s *Simulation) Terminate() error {
	if s.dataRecorder == nil {
		return nil
	}

	if s.ownsRecorder {
		return s.dataRecorder.Close()
	}

	return s.dataRecorder.Flush()
}
