package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // Run completed and results are consistent.
	ExitErrorGeneric  = 1   // Computation fault or unclassified error.
	ExitErrorTimeout  = 2   // The -timeout budget was exhausted.
	ExitErrorMismatch = 3   // Single and multi-worker results disagree.
	ExitErrorConfig   = 4   // Invalid flags, environment or .env file.
	ExitErrorCanceled = 130 // Interrupted by a signal.
)

// ConfigError reports an invalid flag, environment variable or .env entry.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError is a fault that stops a job from producing a result: an
// upper bound that does not fit in int64, or a panic inside a worker. The
// cause stays reachable through errors.Is and errors.As.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

func (e CalculationError) Unwrap() error { return e.Cause }

// NewWorkerPanic turns a value recovered from a worker goroutine into a
// CalculationError.
func NewWorkerPanic(worker int, recovered any) error {
	return CalculationError{Cause: fmt.Errorf("worker %d panicked: %v", worker, recovered)}
}

// TimeoutError is a run stopped because it exceeded its time budget.
type TimeoutError struct {
	// Limit is the configured budget.
	Limit time.Duration
	// Cause is the error the run returned, usually wrapping
	// context.DeadlineExceeded.
	Cause error
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("search exceeded its %s time limit", e.Limit)
}

func (e TimeoutError) Unwrap() error { return e.Cause }

// AsTimeout wraps err in a TimeoutError carrying limit when err was caused by
// a deadline. Other errors, and nil, are returned unchanged.
func AsTimeout(err error, limit time.Duration) error {
	if err == nil || !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return TimeoutError{Limit: limit, Cause: err}
}

// ValidationError reports input that is not a usable value. For the upper
// bound the orchestration layer recovers from it by running an empty job.
type ValidationError struct {
	// Field names the rejected input, e.g. "n".
	Field string
	// Input is the offending text after trimming.
	Input string
	// Reason explains the rejection.
	Reason string
}

func (e ValidationError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Input, e.Reason)
}

// WrapError adds context to err with %w so errors.Is and errors.As still see
// the original. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from context cancellation or a
// deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
