package primes

import "fmt"

// MinPrime is the lower bound of every search range.
const MinPrime int64 = 2

// SubRange is a closed interval [Start, End] of candidates owned by a single
// worker. A SubRange with Start > End is empty.
type SubRange struct {
	Start int64
	End   int64
}

// Empty reports whether the range contains no candidate.
func (r SubRange) Empty() bool { return r.Start > r.End }

// Len returns the number of candidates in the range.
func (r SubRange) Len() int64 {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether v lies inside the range.
func (r SubRange) Contains(v int64) bool { return v >= r.Start && v <= r.End }

// String renders the range in interval notation.
func (r SubRange) String() string {
	if r.Empty() {
		return "[]"
	}
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// Partition divides [2, n] into workers contiguous, non-overlapping
// sub-ranges.
//
// Each slice has floor(n/workers) candidates; slice i (1-indexed) covers
// [tuple*(i-1), tuple*i-1]. Every start is clamped to 2 and the last slice
// ends at n, absorbing the division remainder. Leading slices may be empty
// when n is small relative to workers, but the union is always exactly
// [2, n].
//
// Parameters:
//   - n: The inclusive upper bound. Values below 2 yield no ranges.
//   - workers: The number of slices. Values below 1 are treated as 1.
//
// Returns:
//   - []SubRange: Exactly workers ranges in ascending order, or nil if n < 2.
func Partition(n int64, workers int) []SubRange {
	if n < MinPrime {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers == 1 {
		return []SubRange{{Start: MinPrime, End: n}}
	}

	tuple := n / int64(workers)
	ranges := make([]SubRange, workers)
	for i := 1; i <= workers; i++ {
		start := tuple * int64(i-1)
		end := tuple*int64(i) - 1
		if start < MinPrime {
			start = MinPrime
		}
		if i == workers {
			end = n
		}
		ranges[i-1] = SubRange{Start: start, End: end}
	}
	return ranges
}
