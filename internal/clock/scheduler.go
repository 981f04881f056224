package clock

import (
	"sync"
	"time"
)

// Cancel releases a scheduled callback. Calling it more than once is a no-op.
type Cancel func()

// Scheduler runs a callback periodically until the returned Cancel is called.
type Scheduler interface {
	Schedule(fn func(), period time.Duration) Cancel
}

// Ticker schedules callbacks on a time.Ticker in its own goroutine. Callers
// that share state with the callback must do their own locking.
type Ticker struct{}

func (Ticker) Schedule(fn func(), period time.Duration) Cancel {
	t := time.NewTicker(period)
	done := make(chan struct{})
	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// ManualScheduler records scheduled callbacks and fires them only when Fire is
// called, so tests can observe acquisition and release of periodic work.
type ManualScheduler struct {
	mu     sync.Mutex
	nextID int
	jobs   map[int]manualJob
}

type manualJob struct {
	fn     func()
	period time.Duration
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{jobs: make(map[int]manualJob)}
}

func (s *ManualScheduler) Schedule(fn func(), period time.Duration) Cancel {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.jobs[id] = manualJob{fn: fn, period: period}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.jobs, id)
		s.mu.Unlock()
	}
}

// Active returns the number of callbacks that have not been cancelled.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Periods returns the periods of the active callbacks.
func (s *ManualScheduler) Periods() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j.period)
	}
	return out
}

// Fire runs every active callback once. Callbacks may cancel themselves or
// schedule new work while firing.
func (s *ManualScheduler) Fire() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.jobs))
	for _, j := range s.jobs {
		fns = append(fns, j.fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
