package store

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the scheduler needs.
type Timer interface {
	Stop() bool
}

// AfterFunc arms a one-shot timer that calls f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// saveScheduler coalesces writes: every schedule call pushes the deadline
// out by delay, and only the timer armed by the last call performs the save.
type saveScheduler struct {
	delay     time.Duration
	afterFunc AfterFunc
	now       func() time.Time
	save      func() error
	onError   func(error)

	mu       sync.Mutex
	pending  bool
	deadline time.Time
	timer    Timer
	gen      uint64
	closed   bool

	// held for the whole snapshot+write so the newest state always lands last
	saveMu sync.Mutex
}

func newSaveScheduler(delay time.Duration, afterFunc AfterFunc, now func() time.Time, save func() error, onError func(error)) *saveScheduler {
	return &saveScheduler{
		delay:     delay,
		afterFunc: afterFunc,
		now:       now,
		save:      save,
		onError:   onError,
	}
}

// schedule marks a write pending and (re)arms the timer.
func (s *saveScheduler) schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = true
	s.deadline = s.now().Add(s.delay)
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timer = s.afterFunc(s.delay, func() { s.fire(gen) })
}

// fire runs when a timer expires. Timers superseded by a later schedule,
// flush or cancel see a stale generation and do nothing.
func (s *saveScheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.timer = nil
	s.mu.Unlock()

	if err := s.run(); err != nil && s.onError != nil {
		s.onError(err)
	}
}

// takePending clears the pending state and reports whether a write was due.
func (s *saveScheduler) takePending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.pending
	s.pending = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	return was
}

// flush performs a pending write now. It is a no-op when nothing is pending.
func (s *saveScheduler) flush() error {
	if !s.takePending() {
		return nil
	}
	return s.run()
}

// saveNow drops any pending write and saves immediately.
func (s *saveScheduler) saveNow() error {
	s.takePending()
	return s.run()
}

// isPending reports whether a coalesced write is waiting and when it is due.
func (s *saveScheduler) isPending() (bool, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, s.deadline
}

// close flushes and refuses further scheduling.
func (s *saveScheduler) close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.flush()
}

func (s *saveScheduler) run() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.save()
}
