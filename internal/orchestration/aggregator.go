package orchestration

import (
	"slices"
	"sync"
)

// Aggregator accumulates primes reported by workers. All methods are safe for
// concurrent use.
type Aggregator struct {
	mu     sync.Mutex
	primes []int64
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add appends one prime.
func (a *Aggregator) Add(p int64) {
	a.mu.Lock()
	a.primes = append(a.primes, p)
	a.mu.Unlock()
}

// Len returns the number of primes collected so far.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.primes)
}

// Reset discards everything collected.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	a.primes = nil
	a.mu.Unlock()
}

// Finalize returns an ascending copy of the collected primes. A single worker
// already reports in ascending order so the sort is skipped.
func (a *Aggregator) Finalize(workers int) []int64 {
	a.mu.Lock()
	out := slices.Clone(a.primes)
	a.mu.Unlock()
	if out == nil {
		out = []int64{}
	}
	if workers > 1 {
		slices.Sort(out)
	}
	return out
}
