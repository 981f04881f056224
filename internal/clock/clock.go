// Package clock provides the time and scheduling collaborators used by the
// ledger and the app flow. Production code uses System and Ticker; tests drive
// time explicitly with Manual.
package clock

import (
	"sync"
	"time"
)

// DateLayout is the calendar-day key format used for ledger records.
const DateLayout = "2006-01-02"

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}

// DateKey returns the "YYYY-MM-DD" key for the clock's current day, in the
// location of the instant the clock returns.
func DateKey(c Clock) string {
	return c.Now().Format(DateLayout)
}

// System is the wall clock, reporting instants in Location (time.Local if nil).
type System struct {
	Location *time.Location
}

func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

// Manual is a clock that only moves when told to. Safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock stopped at t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Set jumps the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}
