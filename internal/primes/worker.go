package primes

import "context"

// PrimeEvent is a single discovery emitted by a worker.
type PrimeEvent struct {
	// Value is the prime that was found.
	Value int64
	// Worker is the zero-based index of the worker that found it.
	Worker int
	// Range is the sub-range the worker was scanning.
	Range SubRange
}

// Scan runs the primality test over every candidate of r in ascending order
// and calls onPrime synchronously for each prime, so discoveries from a single
// worker are always emitted in ascending order.
//
// The context is checked before each candidate in addition to the per-divisor
// checks inside IsPrime. A candidate whose test was cancelled is never
// reported.
//
// Returns ctx.Err() if the scan was cancelled, nil once the range is done.
func Scan(ctx context.Context, r SubRange, onPrime func(int64)) error {
	start := r.Start
	if start < MinPrime {
		start = MinPrime
	}
	if start > r.End {
		return nil
	}

	for candidate := start; ; candidate++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch IsPrime(ctx, candidate) {
		case Prime:
			onPrime(candidate)
		case Cancelled:
			return ctx.Err()
		}
		// Exit on equality: End may be math.MaxInt64.
		if candidate == r.End {
			return nil
		}
	}
}
