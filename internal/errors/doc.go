// Package apperrors classifies the ways a run can end badly (bad
// configuration, unusable input, computation faults, timeouts) and maps each
// class to a process exit code. Every type that carries a cause implements
// Unwrap.
package apperrors
