// Package clock abstracts the monotonic time source read by timelines.
package clock

import "time"

// Clock reports the current time. Timelines only subtract values read
// from the same Clock, so any monotonic source works.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock, which carries a monotonic reading.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Manual is a Clock advanced explicitly. It drives fixed-step sampling and
// tests. The zero value starts at the zero time.
type Manual struct {
	now time.Time
}

// NewManual returns a Manual clock starting at t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

func (m *Manual) Now() time.Time { return m.now }

// Advance moves the clock forward by d. Negative durations are ignored.
func (m *Manual) Advance(d time.Duration) {
	if d > 0 {
		m.now = m.now.Add(d)
	}
}

// Set moves the clock to t if t is not before the current time.
func (m *Manual) Set(t time.Time) {
	if t.After(m.now) {
		m.now = t
	}
}
