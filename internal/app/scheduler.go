package app

import (
	"sync"
	"time"
)

// Timer is a cancelable handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the cancellation happened
	// before the callback started running.
	Stop() bool
}

// Scheduler abstracts deferred execution so session timing (the one-second
// countdown and the feedback-display delay) can be driven deterministically
// in tests.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// WallClockScheduler schedules on the runtime timer wheel.
type WallClockScheduler struct{}

func (WallClockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler queues callbacks and only runs them when Fire is called.
// Test-only, in the spirit of the injectable clocks used elsewhere.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{delay: d, f: f, sched: m}
	m.pending = append(m.pending, t)
	return t
}

// Fire runs the oldest pending callback and reports whether one ran.
// The callback executes outside the scheduler lock so it may schedule again.
func (m *ManualScheduler) Fire() bool {
	m.mu.Lock()
	var next *manualTimer
	for i, t := range m.pending {
		if !t.stopped {
			next = t
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	if next == nil {
		return false
	}
	next.f()
	return true
}

// Pending counts callbacks that are scheduled and not yet stopped or fired.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

type manualTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
	sched   *ManualScheduler
}

func (t *manualTimer) Stop() bool {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}
