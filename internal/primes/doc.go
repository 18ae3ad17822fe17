// Package primes implements the trial-division engine: the per-number
// primality test, the partitioning of [2, N] into per-worker sub-ranges, and
// the worker loop that scans one sub-range and emits primes in ascending
// order. Every blocking loop in this package honors context cancellation at
// the granularity of a single division.
package primes
