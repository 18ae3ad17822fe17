package orchestration

import (
	"errors"
	"strconv"
	"strings"

	apperrors "github.com/esteban505r/MultithreadPrimeCalculator/internal/errors"
)

// ParseUpperBound converts user text into an upper bound.
//
// Surrounding whitespace is ignored. Empty, non-numeric and negative input
// yields 0 together with a ValidationError; callers may proceed with the 0 to
// obtain an empty result. A number that does not fit in int64 yields a
// CalculationError wrapping strconv.ErrRange.
func ParseUpperBound(text string) (int64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, apperrors.ValidationError{Field: "n", Reason: "upper bound is empty"}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(s, "-") {
			return 0, apperrors.CalculationError{Cause: apperrors.WrapError(err, "upper bound %q out of range", s)}
		}
		return 0, apperrors.ValidationError{Field: "n", Input: s, Reason: "not an integer"}
	}
	if n < 0 {
		return 0, apperrors.ValidationError{Field: "n", Input: s, Reason: "must not be negative"}
	}
	return n, nil
}
