// Package capacity tracks the number of parked vehicles against the size of
// the lot.
package capacity

import "errors"

// ErrFull is returned when a reservation is attempted on a full lot.
var ErrFull = errors.New("parking lot is full")

// Tracker counts parked vehicles. The count always stays in [0, Max].
type Tracker struct {
	count int
	max   int
}

// NewTracker creates a tracker for a lot of the given size. The initial count
// is clamped into the valid range.
func NewTracker(max, initial int) *Tracker {
	if max < 0 {
		max = 0
	}

	t := &Tracker{max: max}
	t.count = clamp(initial, 0, max)

	return t
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// TryReserve takes one place. It returns ErrFull, and changes nothing, when
// no place is left.
func (t *Tracker) TryReserve() error {
	if t.count >= t.max {
		return ErrFull
	}

	t.count++

	return nil
}

// Release frees one place. Releasing on an empty lot keeps the count at zero.
func (t *Tracker) Release() {
	if t.count > 0 {
		t.count--
	}
}

// Count returns the number of parked vehicles.
func (t *Tracker) Count() int {
	return t.count
}

// Max returns the size of the lot.
func (t *Tracker) Max() int {
	return t.max
}

// Full tells if no place is left.
func (t *Tracker) Full() bool {
	return t.count >= t.max
}
