package shared

import (
	"sync"
	"time"
)

// Clock is the only source of wall time in the domain: session start times
// and ledger timestamps read it, tests pin it
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// NewRealClock returns the system clock in UTC
func NewRealClock() Clock {
	return realClock{}
}

// MockClock is a settable Clock, safe to share between goroutines
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock starts a MockClock at start, or at the current time when start is zero
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now()
	}
	return &MockClock{now: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
