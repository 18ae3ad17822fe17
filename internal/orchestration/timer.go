package orchestration

import (
	"sync"
	"time"
)

// Clock returns the current time. Tests substitute a fake.
type Clock func() time.Time

// Timer measures wall-clock time between Start and Stop.
type Timer struct {
	clock Clock

	mu      sync.Mutex
	start   time.Time
	elapsed time.Duration
	running bool
}

// NewTimer returns a Timer reading from clock, or time.Now when clock is nil.
func NewTimer(clock Clock) *Timer {
	if clock == nil {
		clock = time.Now
	}
	return &Timer{clock: clock}
}

// Start records the start instant, discarding any previous measurement.
func (t *Timer) Start() {
	t.mu.Lock()
	t.start = t.clock()
	t.elapsed = 0
	t.running = true
	t.mu.Unlock()
}

// Stop freezes the measurement and returns it. Calling Stop on a stopped
// Timer returns the frozen value.
func (t *Timer) Stop() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		t.elapsed = t.clock().Sub(t.start)
		if t.elapsed < 0 {
			t.elapsed = 0
		}
		t.running = false
	}
	return t.elapsed
}

// Elapsed returns the time since Start while running, or the frozen value.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return t.clock().Sub(t.start)
	}
	return t.elapsed
}
