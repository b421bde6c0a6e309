// Package auth runs the credential challenge that a vehicle has to pass
// before the gate opens outside the automatic-entry window.
package auth

import (
	"errors"

	"github.com/rs/xid"

	"github.com/sarchlab/gatekeeper/hooking"
	"github.com/sarchlab/gatekeeper/tracing"
)

var (
	// ErrSessionActive is returned when a session is started while another
	// one is still live.
	ErrSessionActive = errors.New("an authentication session is already active")

	// ErrCredentialMismatch is returned when the submitted credential is
	// wrong. The session keeps waiting for input.
	ErrCredentialMismatch = errors.New("credential mismatch")

	// ErrNotAwaitingInput is returned when a credential is submitted or a
	// session is cancelled while no session waits for input.
	ErrNotAwaitingInput = errors.New("no session is awaiting input")
)

// State is the state of a session.
type State int

// States of a session.
const (
	Idle State = iota
	AwaitingInput
	Granted
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case AwaitingInput:
		return "AwaitingInput"
	case Granted:
		return "Granted"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Validator checks a candidate credential.
type Validator interface {
	Validate(candidate string) bool
}

// Session is the single challenge/response cycle of the gate. At most one
// cycle is live at a time.
type Session struct {
	hooking.HookableBase

	name      string
	validator Validator
	state     State
	id        string
}

// NewSession creates an idle session checking credentials with v.
func NewSession(name string, v Validator) *Session {
	return &Session{
		name:      name,
		validator: v,
	}
}

// Name returns the name of the session.
func (s *Session) Name() string {
	return s.name
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// ID returns the ID of the live session, or an empty string when idle.
func (s *Session) ID() string {
	return s.id
}

// Start opens a new challenge. It fails with ErrSessionActive, and changes
// nothing, while a previous challenge is live.
func (s *Session) Start() error {
	if s.state != Idle {
		return ErrSessionActive
	}

	s.state = AwaitingInput
	s.id = xid.New().String()

	tracing.StartTask(s.id, "", s, "session", "authenticate", nil)

	return nil
}

// Submit checks a candidate credential. A match grants the session; a
// mismatch leaves it waiting and returns ErrCredentialMismatch. There is no
// limit on the number of attempts.
func (s *Session) Submit(candidate string) error {
	if s.state != AwaitingInput {
		return ErrNotAwaitingInput
	}

	if !s.validator.Validate(candidate) {
		tracing.AddTaskStep(s.id, s, "credential-mismatch")
		return ErrCredentialMismatch
	}

	s.state = Granted
	tracing.AddTaskStep(s.id, s, "granted")

	return nil
}

// Cancel abandons a session waiting for input.
func (s *Session) Cancel() error {
	if s.state != AwaitingInput {
		return ErrNotAwaitingInput
	}

	s.state = Cancelled
	tracing.AddTaskStep(s.id, s, "cancelled")

	return nil
}

// Consume returns the state of a resolved session and resets it to Idle. A
// session that is idle or still waiting is left as it is.
func (s *Session) Consume() State {
	resolved := s.state
	if resolved != Granted && resolved != Cancelled {
		return resolved
	}

	tracing.EndTask(s.id, s)

	s.state = Idle
	s.id = ""

	return resolved
}
