package orchestration

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/primes"
)

// Mode selects how many workers a Job uses.
type Mode string

const (
	// ModeSingle scans the whole range with one worker.
	ModeSingle Mode = "single"
	// ModeMulti scans with one worker per available processor.
	ModeMulti Mode = "multi"
)

// ParseMode converts a user supplied mode name. Unknown names report ok=false.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeSingle, ModeMulti:
		return Mode(s), true
	}
	return "", false
}

// State is the lifecycle state of a Job or of the Controller.
type State string

const (
	StateIdle       State = "idle"
	StateRunning    State = "running"
	StateCancelling State = "cancelling"
	StateCompleted  State = "completed"
	StateDiscarded  State = "discarded"
	StateFailed     State = "failed"
)

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateDiscarded || s == StateFailed
}

// JobInfo is the immutable description of a Job handed to reporters and
// observers.
type JobInfo struct {
	ID         string
	Generation uint64
	N          int64
	Mode       Mode
	Workers    int
	Ranges     []primes.SubRange
}

// Job is one execution of the prime search for a given upper bound and mode.
type Job struct {
	info JobInfo

	ctx    context.Context
	cancel context.CancelCauseFunc
	span   trace.Span
	timer  *Timer

	mu    sync.Mutex
	state State

	// done is closed once workers, collector and reporter have all exited.
	done chan struct{}
}

func newJob(parent context.Context, info JobInfo, timer *Timer) *Job {
	ctx, cancel := context.WithCancelCause(parent)
	return &Job{
		info:   info,
		ctx:    ctx,
		cancel: cancel,
		timer:  timer,
		state:  StateRunning,
		done:   make(chan struct{}),
	}
}

// Info returns the job description.
func (j *Job) Info() JobInfo { return j.info }

// ID returns the unique job identifier.
func (j *Job) ID() string { return j.info.ID }

// Generation returns the monotonically increasing sequence number assigned by
// the Controller.
func (j *Job) Generation() uint64 { return j.info.Generation }

// State returns the current lifecycle state.
func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// Elapsed is the compute time so far, frozen once the workers and collector
// have finished.
func (j *Job) Elapsed() time.Duration { return j.timer.Elapsed() }

// Done is closed when the job has been fully joined.
func (j *Job) Done() <-chan struct{} { return j.done }

// requestCancel moves a running job to Cancelling and cancels its context.
// It reports whether a transition happened.
func (j *Job) requestCancel(cause error) bool {
	j.mu.Lock()
	if j.state != StateRunning {
		j.mu.Unlock()
		return false
	}
	j.state = StateCancelling
	j.mu.Unlock()
	j.cancel(cause)
	return true
}

// settle records the terminal state. Cancellation requested at any point
// during the job's lifetime wins over normal completion.
func (j *Job) settle(workerErr error) State {
	j.mu.Lock()
	defer j.mu.Unlock()
	switch {
	case j.state == StateCancelling || context.Cause(j.ctx) != nil:
		j.state = StateDiscarded
	case workerErr != nil:
		j.state = StateFailed
	default:
		j.state = StateCompleted
	}
	return j.state
}

// Result is the outcome of a completed Job.
type Result struct {
	JobID      string
	Generation uint64
	N          int64
	Mode       Mode
	Workers    int
	// Primes is the ResultSet: every prime in [2, N], ascending, no duplicates.
	Primes   []int64
	Duration time.Duration
}

// Millis returns the elapsed time in whole milliseconds.
func (r Result) Millis() int64 { return r.Duration.Milliseconds() }

// Run is the caller's handle on a started Job.
type Run struct {
	job    *Job
	result Result
	err    error
}

// Job returns the underlying job, or nil when the run failed before a job
// could be created.
func (r *Run) Job() *Job { return r.job }

// Done is closed when the run has finished and Wait will not block.
func (r *Run) Done() <-chan struct{} { return r.job.done }

// Wait blocks until the job is joined. A discarded job returns an error
// matching ErrDiscarded; a faulted job returns a CalculationError.
func (r *Run) Wait() (Result, error) {
	<-r.job.done
	return r.result, r.err
}
