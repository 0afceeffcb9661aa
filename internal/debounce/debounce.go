// Package debounce runs at most one pending task after a quiet period,
// dropping tasks that a newer Schedule call has superseded.
package debounce

import (
	"sync"
	"time"

	bep "github.com/bep/debounce"
)

// Scheduler debounces tasks and tags each with a generation number.
// Only the task of the latest generation ever runs, runs never overlap,
// and Apply lets a finished task publish its result only while it is
// still the latest.
type Scheduler struct {
	debounced func(func())

	mu      sync.Mutex
	gen     uint64
	pending func()

	runMu sync.Mutex // serializes task execution
}

// New returns a Scheduler that waits delay after the last Schedule call.
func New(delay time.Duration) *Scheduler {
	return &Scheduler{debounced: bep.New(delay)}
}

// Schedule supersedes any pending task with task and returns its generation.
// task receives that generation so it can pass it to Apply.
func (s *Scheduler) Schedule(task func(gen uint64)) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	g := s.gen
	run := func() { s.run(g, task) }
	s.pending = run
	// Handing the timer over while holding mu keeps timer order equal to
	// generation order.
	s.debounced(run)
	return g
}

func (s *Scheduler) run(g uint64, task func(uint64)) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.mu.Lock()
	if g != s.gen || s.pending == nil {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.mu.Unlock()

	task(g)
}

// Flush runs the pending task now, on the caller's goroutine. It reports
// whether a task ran. The superseded timer becomes a no-op.
func (s *Scheduler) Flush() bool {
	s.mu.Lock()
	p := s.pending
	s.mu.Unlock()
	if p == nil {
		return false
	}
	p()
	return true
}

// Cancel drops the pending task, if any, without running it.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.pending = nil
}

// Pending reports whether a task is waiting for its quiet period.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Generation returns the latest generation handed out.
func (s *Scheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Apply calls fn only if gen is still the latest generation, and reports
// whether it did. fn runs with the scheduler lock held, so it must not call
// back into the Scheduler.
func (s *Scheduler) Apply(gen uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	fn()
	return true
}
