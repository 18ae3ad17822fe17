package orchestration

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/samber/lo"

	apperrors "github.com/esteban505r/MultithreadPrimeCalculator/internal/errors"
)

// RunOutcome pairs a finished run with the label it is presented under.
type RunOutcome struct {
	// Label identifies the run in comparison output (e.g., "single").
	Label string
	// Result is the completed run. It is the zero value if Err is set.
	Result Result
	// Err contains the error returned by Run.Wait.
	Err error
}

// Execute starts a job in the given mode and waits for it. It is the blocking
// form used by one-shot callers.
func Execute(ctx context.Context, c *Controller, mode Mode, n int64, reporter PrimeReporter) RunOutcome {
	res, err := c.Start(ctx, mode, n, reporter).Wait()
	return RunOutcome{Label: string(mode), Result: res, Err: err}
}

// ExecuteComparison runs the single-worker and multi-worker searches one
// after the other for the same bound.
func ExecuteComparison(ctx context.Context, c *Controller, n int64, reporter PrimeReporter) []RunOutcome {
	runs := make([]RunOutcome, 0, 2)
	for _, mode := range []Mode{ModeSingle, ModeMulti} {
		out := Execute(ctx, c, mode, n, reporter)
		runs = append(runs, out)
		if ctx.Err() != nil {
			break
		}
	}
	return runs
}

// AnalyzeComparisonResults validates that every successful run produced the
// same ResultSet and generates a summary report.
//
// Runs are ordered by success then duration before the comparison table is
// presented. A mismatch between successful runs is reported as
// ExitErrorMismatch along with the primes only one side found.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(runs []RunOutcome, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	slices.SortStableFunc(runs, func(a, b RunOutcome) int {
		if (a.Err == nil) != (b.Err == nil) {
			if a.Err == nil {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Result.Duration, b.Result.Duration)
	})

	successful := lo.Filter(runs, func(r RunOutcome, _ int) bool { return r.Err == nil })

	presenter.PresentComparisonTable(runs, out)

	if len(successful) == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No run could complete the search.\n")
		var firstErr error
		if len(runs) > 0 {
			firstErr = runs[0].Err
		}
		return handler.HandleError(firstErr, 0, out)
	}

	reference := successful[0]
	for _, r := range successful[1:] {
		missing, extra := lo.Difference(reference.Result.Primes, r.Result.Primes)
		if len(missing) > 0 || len(extra) > 0 || !slices.Equal(reference.Result.Primes, r.Result.Primes) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s disagree (only in %s: %v, only in %s: %v).\n",
				reference.Label, r.Label, reference.Label, missing, r.Label, extra)
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(reference.Result, opts, out)
	return apperrors.ExitSuccess
}

// Speedup returns how many times faster multi ran than single. It returns 0
// when either duration is not positive.
func Speedup(single, multi time.Duration) float64 {
	if single <= 0 || multi <= 0 {
		return 0
	}
	return float64(single) / float64(multi)
}
