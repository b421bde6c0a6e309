package presentation

import "sync"

// Names of the widgets that produce events.
const (
	ButtonValidate  = "validate"
	FieldCredential = "credential"
)

// Event is something the driver did on the panel.
type Event interface {
	isEvent()
}

// ButtonPressed is sent when a button is clicked.
type ButtonPressed struct {
	ID string
}

// FieldFocused is sent when a text field gains focus.
type FieldFocused struct {
	Field string
}

// FieldDefocused is sent when a text field loses focus.
type FieldDefocused struct {
	Field string
}

// CredentialChangeRequested asks to replace the credential.
type CredentialChangeRequested struct {
	Old string
	New string
}

func (ButtonPressed) isEvent()             {}
func (FieldFocused) isEvent()              {}
func (FieldDefocused) isEvent()            {}
func (CredentialChangeRequested) isEvent() {}

// EventQueue carries events from the presentation task to the control task.
type EventQueue struct {
	lock   sync.Mutex
	events []Event
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event.
func (q *EventQueue) Push(e Event) {
	q.lock.Lock()
	defer q.lock.Unlock()

	q.events = append(q.events, e)
}

// Drain removes and returns all queued events in arrival order.
func (q *EventQueue) Drain() []Event {
	q.lock.Lock()
	defer q.lock.Unlock()

	events := q.events
	q.events = nil

	return events
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return len(q.events)
}
