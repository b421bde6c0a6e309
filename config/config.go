// Package config holds the tunable parameters of a gate.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sarchlab/gatekeeper/policy"
)

// Config is the full set of gate parameters.
type Config struct {
	MaxCapacity    int                   // GATE_MAX_CAPACITY (default 3)
	ScheduleWindow policy.ScheduleWindow // GATE_SCHEDULE_HOURS (default "17")
	TickInterval   time.Duration         // GATE_TICK_INTERVAL (default 200ms)

	OpenAngleTenthsDeg   int           // GATE_OPEN_ANGLE (default 0)
	ClosedAngleTenthsDeg int           // GATE_CLOSED_ANGLE (default 900)
	AnimationDuration    time.Duration // GATE_ANIMATION_DURATION (default 500ms)
	OpenSignal           int           // GATE_OPEN_SIGNAL (default 2000)
	ClosedSignal         int           // GATE_CLOSED_SIGNAL (default 1000)

	DefaultCredential string // GATE_CREDENTIAL (default "aa")

	ClearancePollInterval time.Duration // GATE_POLL_INTERVAL (default 100ms)
	OpenSettle            time.Duration // GATE_OPEN_SETTLE (default 100ms)
	CloseSettle           time.Duration // GATE_CLOSE_SETTLE (default 500ms)

	InitialCount int    // GATE_INITIAL_COUNT (default 0)
	RecordPath   string // GATE_RECORD_PATH (optional, empty = no recording)
}

// Default returns the parameters of the reference gate.
func Default() Config {
	window, _ := policy.NewScheduleWindow(17)

	return Config{
		MaxCapacity:           3,
		ScheduleWindow:        window,
		TickInterval:          200 * time.Millisecond,
		OpenAngleTenthsDeg:    0,
		ClosedAngleTenthsDeg:  900,
		AnimationDuration:     500 * time.Millisecond,
		OpenSignal:            2000,
		ClosedSignal:          1000,
		DefaultCredential:     "aa",
		ClearancePollInterval: 100 * time.Millisecond,
		OpenSettle:            100 * time.Millisecond,
		CloseSettle:           500 * time.Millisecond,
	}
}

// Load returns the default configuration overridden by GATE_* environment
// variables. If envFile is not empty, it is loaded first; variables already
// set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	c := Default()
	p := envParser{}

	p.parseInt("GATE_MAX_CAPACITY", &c.MaxCapacity)
	p.parseWindow("GATE_SCHEDULE_HOURS", &c.ScheduleWindow)
	p.parseDuration("GATE_TICK_INTERVAL", &c.TickInterval)
	p.parseInt("GATE_OPEN_ANGLE", &c.OpenAngleTenthsDeg)
	p.parseInt("GATE_CLOSED_ANGLE", &c.ClosedAngleTenthsDeg)
	p.parseDuration("GATE_ANIMATION_DURATION", &c.AnimationDuration)
	p.parseInt("GATE_OPEN_SIGNAL", &c.OpenSignal)
	p.parseInt("GATE_CLOSED_SIGNAL", &c.ClosedSignal)
	p.parseDuration("GATE_POLL_INTERVAL", &c.ClearancePollInterval)
	p.parseDuration("GATE_OPEN_SETTLE", &c.OpenSettle)
	p.parseDuration("GATE_CLOSE_SETTLE", &c.CloseSettle)
	p.parseInt("GATE_INITIAL_COUNT", &c.InitialCount)
	c.DefaultCredential = envOrDefault("GATE_CREDENTIAL", c.DefaultCredential)
	c.RecordPath = envOrDefault("GATE_RECORD_PATH", c.RecordPath)

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate reports every parameter that is out of range.
func (c Config) Validate() error {
	var errs []error

	if c.MaxCapacity < 1 {
		errs = append(errs,
			fmt.Errorf("max capacity must be positive, got %d", c.MaxCapacity))
	}

	if c.InitialCount < 0 || c.InitialCount > c.MaxCapacity {
		errs = append(errs,
			fmt.Errorf("initial count %d is outside [0, %d]",
				c.InitialCount, c.MaxCapacity))
	}

	if c.TickInterval <= 0 {
		errs = append(errs, errors.New("tick interval must be positive"))
	}

	if c.ClearancePollInterval <= 0 {
		errs = append(errs, errors.New("clearance poll interval must be positive"))
	}

	if c.AnimationDuration < 0 || c.OpenSettle < 0 || c.CloseSettle < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}

	if c.OpenAngleTenthsDeg == c.ClosedAngleTenthsDeg {
		errs = append(errs, errors.New("open and closed angles must differ"))
	}

	if c.DefaultCredential == "" {
		errs = append(errs, errors.New("default credential must not be empty"))
	}

	if c.ScheduleWindow == nil {
		errs = append(errs, errors.New("schedule window is not set"))
	}

	return errors.Join(errs...)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

type envParser struct {
	errs []error
}

func (p *envParser) parseInt(key string, dst *int) {
	s := os.Getenv(key)
	if s == "" {
		return
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return
	}

	*dst = v
}

func (p *envParser) parseDuration(key string, dst *time.Duration) {
	s := os.Getenv(key)
	if s == "" {
		return
	}

	v, err := time.ParseDuration(s)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return
	}

	*dst = v
}

// parseWindow reads a comma-separated hour list. A variable that is set but
// holds only spaces disables automatic entry.
func (p *envParser) parseWindow(key string, dst *policy.ScheduleWindow) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return
	}

	v, err := policy.ParseScheduleWindow(s)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return
	}

	*dst = v
}
