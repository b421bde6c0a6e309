package presentation

import (
	"log"
	"sync"
)

// PanelState is a copy of everything a Panel shows.
type PanelState struct {
	LoginPromptShown bool
	CredentialInput  string
	KeyboardVisible  bool
	BarrierVisible   bool
	ArmAngle         int
	Message          string
	Count            int
	MaxCount         int
	Clock            string
	GateState        string
}

// Panel is an in-memory Display. It keeps the current screen content and the
// history of messages and gate states. When a logger is given, every change
// that a driver would notice is also printed.
//
// The lock is held for a single mutation only.
type Panel struct {
	lock sync.Mutex

	state      PanelState
	messages   []string
	gateStates []string
	logger     *log.Logger
}

// NewPanel creates a panel showing a visible, closed barrier.
func NewPanel(logger *log.Logger) *Panel {
	return &Panel{
		state: PanelState{
			BarrierVisible: true,
			ArmAngle:       900,
			GateState:      "Closed",
		},
		logger: logger,
	}
}

func (p *Panel) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

// ShowLoginPrompt shows the credential window with an empty field.
func (p *Panel) ShowLoginPrompt() {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.state.LoginPromptShown = true
	p.state.CredentialInput = ""
	p.logf("[panel] login prompt shown")
}

// HideLoginPrompt closes the credential window and the keyboard.
func (p *Panel) HideLoginPrompt() {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.state.LoginPromptShown = false
	p.state.KeyboardVisible = false
	p.state.CredentialInput = ""
	p.logf("[panel] login prompt hidden")
}

// ReadCredentialInput returns the text in the credential field.
func (p *Panel) ReadCredentialInput() string {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.state.CredentialInput
}

// ClearCredentialInput empties the credential field.
func (p *Panel) ClearCredentialInput() {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.state.CredentialInput = ""
}

// TypeInput replaces the text in the credential field, as the driver typing
// on the keyboard would. It has no effect while the prompt is hidden.
func (p *Panel) TypeInput(text string) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if !p.state.LoginPromptShown {
		return
	}

	p.state.CredentialInput = text
}

// SetKeyboardVisible shows or hides the on-screen keyboard.
func (p *Panel) SetKeyboardVisible(visible bool) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.state.KeyboardVisible = visible
}

// SetBarrierVisible shows or hides the barrier drawing.
func (p *Panel) SetBarrierVisible(visible bool) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.state.BarrierVisible = visible
}

// SetArmAngle rotates the barrier drawing.
func (p *Panel) SetArmAngle(tenthsDeg int) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.state.ArmAngle = tenthsDeg
}

// ShowMessage shows a status message.
func (p *Panel) ShowMessage(text string) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.state.Message = text
	p.messages = append(p.messages, text)
	p.logf("[panel] message: %s", text)
}

// SetCountDisplay shows the number of parked vehicles.
func (p *Panel) SetCountDisplay(count, max int) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.state.Count == count && p.state.MaxCount == max {
		return
	}

	p.state.Count = count
	p.state.MaxCount = max
	p.logf("[panel] vehicles: %d/%d", count, max)
}

// SetClockDisplay shows the time of day.
func (p *Panel) SetClockDisplay(text string) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.state.Clock = text
}

// SetGateStateDisplay shows the gate state.
func (p *Panel) SetGateStateDisplay(state string) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.state.GateState = state
	p.gateStates = append(p.gateStates, state)
	p.logf("[panel] gate: %s", state)
}

// Snapshot returns what the panel currently shows.
func (p *Panel) Snapshot() PanelState {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.state
}

// Messages returns every message shown so far.
func (p *Panel) Messages() []string {
	p.lock.Lock()
	defer p.lock.Unlock()

	return append([]string(nil), p.messages...)
}

// GateStates returns every gate state shown so far.
func (p *Panel) GateStates() []string {
	p.lock.Lock()
	defer p.lock.Unlock()

	return append([]string(nil), p.gateStates...)
}
