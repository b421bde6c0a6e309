// Package policy decides when a vehicle has to authenticate before entering.
package policy

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ScheduleWindow is the set of hours of the day during which vehicles enter
// without authentication.
type ScheduleWindow map[int]bool

// NewScheduleWindow creates a window from a list of hours.
func NewScheduleWindow(hours ...int) (ScheduleWindow, error) {
	w := make(ScheduleWindow, len(hours))

	for _, h := range hours {
		if h < 0 || h > 23 {
			return nil, fmt.Errorf("hour %d is out of range [0, 23]", h)
		}

		w[h] = true
	}

	return w, nil
}

// ParseScheduleWindow parses a comma-separated list of hours, such as "17"
// or "7,17,18". An empty string yields an empty window.
func ParseScheduleWindow(s string) (ScheduleWindow, error) {
	var hours []int

	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		h, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid hour %q: %w", field, err)
		}

		hours = append(hours, h)
	}

	return NewScheduleWindow(hours...)
}

// Contains tells if the hour is part of the window.
func (w ScheduleWindow) Contains(hour int) bool {
	return w[hour]
}

// Hours returns the hours of the window in ascending order.
func (w ScheduleWindow) Hours() []int {
	hours := make([]int, 0, len(w))
	for h, in := range w {
		if in {
			hours = append(hours, h)
		}
	}

	sort.Ints(hours)

	return hours
}

func (w ScheduleWindow) String() string {
	hours := w.Hours()

	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = strconv.Itoa(h)
	}

	return strings.Join(parts, ",")
}

// AccessPolicy decides whether an entry needs a credential. It does not look
// at the lot capacity; a full lot is rejected before the policy is asked.
type AccessPolicy struct {
	window ScheduleWindow
}

// NewAccessPolicy creates a policy with the given automatic-entry window.
func NewAccessPolicy(window ScheduleWindow) *AccessPolicy {
	return &AccessPolicy{window: window}
}

// Window returns the automatic-entry window.
func (p *AccessPolicy) Window() ScheduleWindow {
	return p.window
}

// RequiresAuthentication is false iff the hour of now is in the window.
func (p *AccessPolicy) RequiresAuthentication(now time.Time) bool {
	return !p.window.Contains(now.Hour())
}
