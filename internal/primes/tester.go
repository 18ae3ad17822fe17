package primes

import "context"

// Verdict is the outcome of a single primality test.
type Verdict int

const (
	// Composite means a divisor was found, or the number is below 2.
	Composite Verdict = iota
	// Prime means no divisor exists in [2, n).
	Prime
	// Cancelled means the test was aborted before reaching a verdict. It is
	// not a statement about the number and must never be reported as one.
	Cancelled
)

// String returns a lowercase name for the verdict.
func (v Verdict) String() string {
	switch v {
	case Composite:
		return "composite"
	case Prime:
		return "prime"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsPrime decides whether n is prime by trial division against every
// integer from 2 up to n-1.
//
// The cost is O(n) divisions per number. The cancellation signal is polled
// before every division, so a cancelled context is observed after at most one
// more modulo operation.
//
// Parameters:
//   - ctx: Cancellation token; a done context yields Cancelled.
//   - n: The number to test. Values below 2 are Composite.
//
// Returns:
//   - Verdict: Prime, Composite or Cancelled.
func IsPrime(ctx context.Context, n int64) Verdict {
	if n < 2 {
		return Composite
	}
	done := ctx.Done()
	for d := int64(2); d < n; d++ {
		select {
		case <-done:
			return Cancelled
		default:
		}
		if n%d == 0 {
			return Composite
		}
	}
	return Prime
}
