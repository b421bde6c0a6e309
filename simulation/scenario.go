package simulation

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/gatekeeper/config"
	"github.com/sarchlab/gatekeeper/policy"
	"github.com/sarchlab/gatekeeper/presentation"
)

// Sensor levels as written in scenario files.
const (
	LevelLow  = "low"
	LevelHigh = "high"
)

// Scenario is a scripted sequence of driver actions and the expected outcome.
type Scenario struct {
	Name         string        `yaml:"name"`
	Start        time.Time     `yaml:"start"`
	Duration     time.Duration `yaml:"duration"`
	InitialCount int           `yaml:"initial_count"`
	Config       Overrides     `yaml:"config"`
	Steps        []Step        `yaml:"steps"`
	Expect       Expectation   `yaml:"expect"`
}

// Overrides replaces parts of the base gate configuration.
type Overrides struct {
	MaxCapacity           *int           `yaml:"max_capacity"`
	ScheduleHours         *[]int         `yaml:"schedule_hours"`
	Credential            *string        `yaml:"credential"`
	TickInterval          *time.Duration `yaml:"tick_interval"`
	AnimationDuration     *time.Duration `yaml:"animation_duration"`
	ClearancePollInterval *time.Duration `yaml:"poll_interval"`
	OpenSettle            *time.Duration `yaml:"open_settle"`
	CloseSettle           *time.Duration `yaml:"close_settle"`
}

// Step is what happens at a moment of the scenario, relative to its start.
type Step struct {
	At               time.Duration     `yaml:"at"`
	Entry            string            `yaml:"entry"`
	Exit             string            `yaml:"exit"`
	Focus            string            `yaml:"focus"`
	Input            *string           `yaml:"input"`
	Press            string            `yaml:"press"`
	Defocus          string            `yaml:"defocus"`
	ChangeCredential *CredentialChange `yaml:"change_credential"`
}

// CredentialChange asks the gate to replace its credential.
type CredentialChange struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// Expectation is the state the gate must be in when the scenario ends. Unset
// fields are not checked.
type Expectation struct {
	Count           *int     `yaml:"count"`
	GateCycles      *int     `yaml:"gate_cycles"`
	PromptShown     *bool    `yaml:"prompt_shown"`
	State           string   `yaml:"state"`
	MessagesContain []string `yaml:"messages_contain"`
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// ParseScenario decodes and checks a YAML scenario. The steps are sorted by
// time; steps at the same time keep their order.
func ParseScenario(data []byte) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	sort.SliceStable(s.Steps, func(i, j int) bool {
		return s.Steps[i].At < s.Steps[j].At
	})

	return s, nil
}

// Validate reports every malformed part of the scenario.
func (s *Scenario) Validate() error {
	var errs []error

	if s.Name == "" {
		errs = append(errs, errors.New("scenario has no name"))
	}

	if s.Start.IsZero() {
		errs = append(errs, errors.New("scenario has no start time"))
	}

	if s.Duration <= 0 {
		errs = append(errs, errors.New("scenario duration must be positive"))
	}

	for i, step := range s.Steps {
		if step.At < 0 || step.At > s.Duration {
			errs = append(errs,
				fmt.Errorf("step %d: time %s is outside the scenario", i, step.At))
		}

		for _, level := range []string{step.Entry, step.Exit} {
			if level != "" && level != LevelLow && level != LevelHigh {
				errs = append(errs,
					fmt.Errorf("step %d: unknown sensor level %q", i, level))
			}
		}
	}

	return errors.Join(errs...)
}

// Apply returns the base configuration with the scenario overrides and
// initial count.
func (s *Scenario) Apply(base config.Config) (config.Config, error) {
	c := base
	o := s.Config

	if o.MaxCapacity != nil {
		c.MaxCapacity = *o.MaxCapacity
	}

	if o.ScheduleHours != nil {
		w, err := policy.NewScheduleWindow(*o.ScheduleHours...)
		if err != nil {
			return config.Config{}, err
		}

		c.ScheduleWindow = w
	}

	if o.Credential != nil {
		c.DefaultCredential = *o.Credential
	}

	setDuration(&c.TickInterval, o.TickInterval)
	setDuration(&c.AnimationDuration, o.AnimationDuration)
	setDuration(&c.ClearancePollInterval, o.ClearancePollInterval)
	setDuration(&c.OpenSettle, o.OpenSettle)
	setDuration(&c.CloseSettle, o.CloseSettle)

	c.InitialCount = s.InitialCount

	if err := c.Validate(); err != nil {
		return config.Config{}, err
	}

	return c, nil
}

func setDuration(dst *time.Duration, src *time.Duration) {
	if src != nil {
		*dst = *src
	}
}

// events returns the panel events that the step produces, in the order a
// driver would cause them.
func (st Step) events() []presentation.Event {
	var events []presentation.Event

	if st.Focus != "" {
		events = append(events, presentation.FieldFocused{Field: st.Focus})
	}

	if st.Press != "" {
		events = append(events, presentation.ButtonPressed{ID: st.Press})
	}

	if st.Defocus != "" {
		events = append(events, presentation.FieldDefocused{Field: st.Defocus})
	}

	if st.ChangeCredential != nil {
		events = append(events, presentation.CredentialChangeRequested{
			Old: st.ChangeCredential.Old,
			New: st.ChangeCredential.New,
		})
	}

	return events
}
