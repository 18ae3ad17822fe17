// Package orchestration owns the lifecycle of prime computation runs. A
// Controller starts one Job at a time, fans the partitioned range out to
// worker goroutines, serialises their discoveries through a single collector
// into the Aggregator and the caller's PrimeReporter, and guarantees that a
// superseded Job is fully joined before the next one starts.
package orchestration
