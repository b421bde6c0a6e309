package simulation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sarchlab/gatekeeper/config"
	"github.com/sarchlab/gatekeeper/controller"
	"github.com/sarchlab/gatekeeper/hooking"
	"github.com/sarchlab/gatekeeper/presentation"
	"github.com/sarchlab/gatekeeper/timing"
)

// Result is the outcome of a scenario.
type Result struct {
	Name       string
	Count      int
	GateCycles int
	State      string
	Messages   []string
	GateStates []string
	Signals    []int
	Panel      presentation.PanelState
	Elapsed    time.Duration
	Failures   []string
}

// Passed tells if every expectation was met.
func (r Result) Passed() bool {
	return len(r.Failures) == 0
}

// Runner replays a scenario against a gate of a simulation. The steps are
// applied whenever the simulated clock reaches them, including while the
// gate waits for a vehicle to pass.
type Runner struct {
	scenario *Scenario
	sim      *Simulation
	config   config.Config

	sensors *ScriptedSensors
	driver  *SignalRecorder
	panel   *presentation.Panel
	gate    *controller.Controller

	nextStep int
	deadline time.Time
	cancel   context.CancelFunc
}

// NewRunner builds a gate for the scenario and registers it with the
// simulation. The gate is named after the scenario.
func NewRunner(s *Scenario, sim *Simulation, base config.Config) (*Runner, error) {
	cfg, err := s.Apply(base)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	r := &Runner{
		scenario: s,
		sim:      sim,
		config:   cfg,
		sensors:  NewScriptedSensors(),
		driver:   &SignalRecorder{},
		panel:    presentation.NewPanel(sim.GetLogger()),
		deadline: s.Start.Add(s.Duration),
	}

	r.gate = controller.MakeBuilder().
		WithClock(sim.GetClock()).
		WithSensors(r.sensors).
		WithDriver(r.driver).
		WithDisplay(r.panel).
		WithConfig(cfg).
		Build(s.Name)
	sim.RegisterGate(r.gate)

	sim.GetClock().AcceptHook(hooking.HookFunc(r.clockAdvanced))

	return r, nil
}

// Gate returns the simulated gate.
func (r *Runner) Gate() *controller.Controller {
	return r.gate
}

// Panel returns the panel of the simulated gate.
func (r *Runner) Panel() *presentation.Panel {
	return r.panel
}

// Run plays the scenario until its duration has elapsed. A gate waiting for
// a vehicle is interrupted at the end of the scenario.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	clock := r.sim.GetClock()
	if clock.Now().Before(r.scenario.Start) {
		clock.Advance(r.scenario.Start.Sub(clock.Now()))
	}

	start := clock.Now()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.cancel = cancel
	defer func() { r.cancel = nil }()

	r.applyDue(start)

	loop := timing.NewTickLoop(clock, r.config.TickInterval, r.gate)

	_, err := loop.RunUntil(runCtx, r.deadline)
	if err != nil && ctx.Err() != nil {
		return Result{}, err
	}

	result := r.result()
	result.Elapsed = clock.Now().Sub(start)

	return result, nil
}

func (r *Runner) clockAdvanced(ctx hooking.HookCtx) {
	now := ctx.Item.(time.Time)

	r.applyDue(now)

	if r.cancel != nil && !now.Before(r.deadline) {
		r.cancel()
	}
}

func (r *Runner) applyDue(now time.Time) {
	steps := r.scenario.Steps

	for r.nextStep < len(steps) {
		step := steps[r.nextStep]
		if r.scenario.Start.Add(step.At).After(now) {
			return
		}

		r.apply(step)
		r.nextStep++
	}
}

func (r *Runner) apply(step Step) {
	r.sensors.Set(step.Entry, step.Exit)

	if step.Input != nil {
		r.panel.TypeInput(*step.Input)
	}

	for _, e := range step.events() {
		r.gate.Events().Push(e)
	}
}

func (r *Runner) result() Result {
	snapshot := r.panel.Snapshot()

	res := Result{
		Name:       r.scenario.Name,
		Count:      r.gate.Count(),
		GateCycles: r.gate.GateCycles(),
		State:      r.gate.State().String(),
		Messages:   r.panel.Messages(),
		GateStates: r.panel.GateStates(),
		Signals:    r.driver.Signals(),
		Panel:      snapshot,
	}

	res.Failures = r.check(res)

	return res
}

func (r *Runner) check(res Result) []string {
	var failures []string

	exp := r.scenario.Expect

	if exp.Count != nil && *exp.Count != res.Count {
		failures = append(failures,
			fmt.Sprintf("count is %d, expected %d", res.Count, *exp.Count))
	}

	if exp.GateCycles != nil && *exp.GateCycles != res.GateCycles {
		failures = append(failures,
			fmt.Sprintf("gate cycles are %d, expected %d",
				res.GateCycles, *exp.GateCycles))
	}

	if exp.PromptShown != nil && *exp.PromptShown != res.Panel.LoginPromptShown {
		failures = append(failures,
			fmt.Sprintf("login prompt shown is %t, expected %t",
				res.Panel.LoginPromptShown, *exp.PromptShown))
	}

	if exp.State != "" && exp.State != res.State {
		failures = append(failures,
			fmt.Sprintf("state is %s, expected %s", res.State, exp.State))
	}

	for _, msg := range exp.MessagesContain {
		if !containsMessage(res.Messages, msg) {
			failures = append(failures,
				fmt.Sprintf("message %q was never shown", msg))
		}
	}

	return failures
}

func containsMessage(messages []string, want string) bool {
	for _, m := range messages {
		if strings.Contains(m, want) {
			return true
		}
	}

	return false
}

// ErrScenarioFailed is returned by RunAll when a scenario does not meet its
// expectations.
var ErrScenarioFailed = errors.New("scenario failed")

// RunAll plays every scenario on its own simulation built by newSim and
// returns the results in order. It stops at the first error.
func RunAll(
	ctx context.Context,
	scenarios []*Scenario,
	base config.Config,
	newSim func(s *Scenario) *Simulation,
) ([]Result, error) {
	results := make([]Result, 0, len(scenarios))
	failed := false

	for _, s := range scenarios {
		sim := newSim(s)

		runner, err := NewRunner(s, sim, base)
		if err != nil {
			return results, err
		}

		res, err := runner.Run(ctx)
		if termErr := sim.Terminate(); err == nil {
			err = termErr
		}

		if err != nil {
			return results, err
		}

		results = append(results, res)
		failed = failed || !res.Passed()
	}

	if failed {
		return results, ErrScenarioFailed
	}

	return results, nil
}
