//go:generate mockgen -destination=mocks/mock_orchestration.go -package=mocks github.com/esteban505r/MultithreadPrimeCalculator/internal/orchestration JobObserver,PrimeReporter

package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/primes"
)

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	// Columns is the number of primes per row in grid output.
	Columns int
	// Verbose prints the full prime list instead of a summary.
	Verbose bool
	// Quiet prints only the primes, space separated.
	Quiet bool
}

// PrimeReporter defines the interface for consuming primes as they are found.
// This interface decouples the orchestration layer from the presentation
// layer: the Controller produces events, implementations decide how (and
// whether) to show them.
//
// DisplayPrimes is started in its own goroutine for every Job. It must drain
// primeChan until it is closed and then call wg.Done(); the Controller does
// not consider a Job joined until it has.
type PrimeReporter interface {
	DisplayPrimes(wg *sync.WaitGroup, primeChan <-chan primes.PrimeEvent, job JobInfo)
}

// NullPrimeReporter is a no-op implementation of PrimeReporter.
// It drains the channel without displaying anything.
type NullPrimeReporter struct{}

// DisplayPrimes drains the channel without output.
func (NullPrimeReporter) DisplayPrimes(wg *sync.WaitGroup, primeChan <-chan primes.PrimeEvent, _ JobInfo) {
	defer wg.Done()
	DrainChannel(primeChan)
}

// DrainChannel consumes ch until it is closed.
func DrainChannel[T any](ch <-chan T) {
	for range ch {
	}
}

// Outcome is the terminal classification of a Job, as seen by observers.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeDiscarded Outcome = "discarded"
	OutcomeFailed    Outcome = "failed"
)

// JobObserver receives lifecycle notifications for instrumentation. The
// Controller calls PrimeFound from the collector goroutine and the other
// methods from the goroutine driving the Job, never concurrently for the same
// Job.
type JobObserver interface {
	JobStarted(job JobInfo)
	PrimeFound(job JobInfo)
	JobFinished(job JobInfo, outcome Outcome, elapsed time.Duration)
}

// NullObserver ignores every notification.
type NullObserver struct{}

func (NullObserver) JobStarted(JobInfo) {}

func (NullObserver) PrimeFound(JobInfo) {}

func (NullObserver) JobFinished(JobInfo, Outcome, time.Duration) {}

// ResultPresenter defines the interface for presenting completed runs.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per run with its duration and
	// status.
	PresentComparisonTable(runs []RunOutcome, out io.Writer)

	// PresentResult displays the final ResultSet and duration of a run.
	PresentResult(result Result, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles run errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
