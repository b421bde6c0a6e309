// Package sensing turns the raw levels of the entry and exit presence sensors
// into directional edge events.
//
// Sensor levels follow the hardware convention: true is HIGH (lane empty),
// false is LOW (a vehicle is over the sensor).
package sensing

// Level values for readability at call sites.
const (
	High = true
	Low  = false
)

// Reader reads the raw sensor levels.
type Reader interface {
	ReadEntrySensor() bool
	ReadExitSensor() bool
}

// Edge is the directional event detected by a poll.
type Edge int

// Edges a Monitor can report.
const (
	NoEdge Edge = iota
	EntryEdge
	ExitEdge
)

func (e Edge) String() string {
	switch e {
	case EntryEdge:
		return "EntryEdge"
	case ExitEdge:
		return "ExitEdge"
	default:
		return "NoEdge"
	}
}

// Sample holds the current and previous levels of both sensors.
type Sample struct {
	Entry     bool
	Exit      bool
	PrevEntry bool
	PrevExit  bool
}

// Monitor detects falling edges on the presence sensors.
type Monitor struct {
	sample Sample
}

// NewMonitor creates a Monitor that assumes an empty lane.
func NewMonitor() *Monitor {
	m := &Monitor{}
	m.Reset()

	return m
}

// Reset forgets the observed levels and assumes an empty lane again, so that a
// vehicle already standing on a sensor fires on the next poll.
func (m *Monitor) Reset() {
	m.sample = Sample{
		Entry:     High,
		Exit:      High,
		PrevEntry: High,
		PrevExit:  High,
	}
}

// Sample returns the levels seen by the last poll.
func (m *Monitor) Sample() Sample {
	return m.sample
}

// Poll feeds the current levels and reports a falling edge on exactly one
// sensor while the other one is not LOW. When both sensors are LOW no event
// is reported. The previous levels are updated on every poll.
func (m *Monitor) Poll(entryLevel, exitLevel bool) Edge {
	m.sample.Entry = entryLevel
	m.sample.Exit = exitLevel

	edge := NoEdge

	switch {
	case m.sample.PrevEntry == High && entryLevel == Low && exitLevel != Low:
		edge = EntryEdge
	case m.sample.PrevExit == High && exitLevel == Low && entryLevel != Low:
		edge = ExitEdge
	}

	m.sample.PrevEntry = entryLevel
	m.sample.PrevExit = exitLevel

	return edge
}

// PollReader reads both sensors and polls them.
func (m *Monitor) PollReader(r Reader) Edge {
	return m.Poll(r.ReadEntrySensor(), r.ReadExitSensor())
}

// Clear tells if both sensors are not LOW.
func Clear(r Reader) bool {
	return r.ReadEntrySensor() != Low && r.ReadExitSensor() != Low
}
