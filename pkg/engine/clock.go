package engine

import (
	"sync"
	"time"
)

// Clock abstracts time so tests can drive the session deterministically.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall clock.
var SystemClock Clock = realClock{}

// Task names a delayed job. Posting a task replaces any pending job with the
// same name.
type Task string

const (
	TaskUpdateSuggestions Task = "update-suggestions"
	TaskRestartWord       Task = "restart-word"
)

// Scheduler runs named, cancellable, delayed tasks. Fired tasks are handed to
// a dispatch function; a nil dispatch runs them on the timer's goroutine.
type Scheduler struct {
	clock    Clock
	dispatch func(func())

	mu      sync.Mutex
	pending map[Task]*scheduled
}

type scheduled struct {
	timer     Timer
	cancelled bool
}

func NewScheduler(clock Clock, dispatch func(func())) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	return &Scheduler{
		clock:    clock,
		dispatch: dispatch,
		pending:  make(map[Task]*scheduled),
	}
}

// Post runs fn after delay, superseding any pending run of task.
func (s *Scheduler) Post(task Task, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(task)

	entry := &scheduled{}
	s.pending[task] = entry
	entry.timer = s.clock.AfterFunc(delay, func() {
		run := func() {
			s.mu.Lock()
			if entry.cancelled || s.pending[task] != entry {
				s.mu.Unlock()
				return
			}
			delete(s.pending, task)
			s.mu.Unlock()
			fn()
		}
		if s.dispatch != nil {
			s.dispatch(run)
			return
		}
		run()
	})
}

// Cancel drops the pending runs of the given tasks.
func (s *Scheduler) Cancel(tasks ...Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tasks {
		s.cancelLocked(t)
	}
}

func (s *Scheduler) cancelLocked(task Task) {
	if entry, ok := s.pending[task]; ok {
		entry.cancelled = true
		entry.timer.Stop()
		delete(s.pending, task)
	}
}

// Pending reports whether task is waiting to run.
func (s *Scheduler) Pending(task Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[task]
	return ok
}

// Loop serializes fired tasks and external events onto one goroutine.
type Loop struct {
	jobs chan func()
}

func NewLoop(buffer int) *Loop {
	return &Loop{jobs: make(chan func(), buffer)}
}

// Dispatch queues fn for the loop goroutine. It is safe from any goroutine.
func (l *Loop) Dispatch(fn func()) { l.jobs <- fn }

// Jobs is drained by the goroutine that owns the session.
func (l *Loop) Jobs() <-chan func() { return l.jobs }
