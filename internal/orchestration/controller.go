package orchestration

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/esteban505r/MultithreadPrimeCalculator/internal/errors"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/logging"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/primes"
)

const instrumentationName = "github.com/esteban505r/MultithreadPrimeCalculator/internal/orchestration"

// EventBufferMultiplier defines the per-worker buffer size of the event
// channel. A larger buffer reduces the likelihood of blocking workers when the
// reporter is slow to consume primes.
const EventBufferMultiplier = 64

// ErrDiscarded is returned by Run.Wait for a job that was cancelled or
// superseded before it completed. It matches context.Canceled.
var ErrDiscarded = fmt.Errorf("job discarded: %w", context.Canceled)

// ErrSuperseded is the cancellation cause recorded on a job replaced by a
// newer request.
var ErrSuperseded = errors.New("superseded by a newer request")

// ErrCancelled is the cancellation cause recorded on a job stopped by Cancel.
var ErrCancelled = errors.New("cancelled by request")

type scanFunc func(ctx context.Context, r primes.SubRange, onPrime func(int64)) error

// Controller runs prime computations and enforces that at most one Job is
// live at a time. Starting a new Job cancels and fully joins the previous one
// first, so no prime from an old Job can reach a reporter after the new Job
// has started.
type Controller struct {
	// startMu serialises supersede-then-start so concurrent requests cannot
	// interleave their cancel and launch steps.
	startMu sync.Mutex

	mu         sync.Mutex
	current    *Job
	generation uint64

	workers  func() int
	logger   logging.Logger
	observer JobObserver
	tracer   trace.Tracer
	clock    Clock
	scan     scanFunc
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver sets the lifecycle observer.
func WithObserver(o JobObserver) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithWorkers fixes the multi-worker count. Values below 1 keep the default
// of one worker per logical CPU.
func WithWorkers(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.workers = func() int { return n }
		}
	}
}

// WithClock overrides the time source used for job timing.
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithTracer overrides the tracer. The default comes from the global
// OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) {
		if t != nil {
			c.tracer = t
		}
	}
}

// NewController returns an idle Controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		workers:  runtime.NumCPU,
		logger:   logging.Nop(),
		observer: NullObserver{},
		tracer:   otel.Tracer(instrumentationName),
		scan:     primes.Scan,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunSingleThreaded supersedes any live job and starts a single-worker search
// for primes in [2, n].
func (c *Controller) RunSingleThreaded(ctx context.Context, n int64, reporter PrimeReporter) *Run {
	return c.Start(ctx, ModeSingle, n, reporter)
}

// RunMultiThreaded supersedes any live job and starts a search split across
// one worker per available processor.
func (c *Controller) RunMultiThreaded(ctx context.Context, n int64, reporter PrimeReporter) *Run {
	return c.Start(ctx, ModeMulti, n, reporter)
}

// RunInput parses raw user text as the upper bound and starts a job in the
// given mode. Text that is not a non-negative integer is logged and runs as
// n = 0, which completes with an empty result. A value outside the int64
// range is a fault: the live job is still superseded, no new job starts and
// a CalculationError is returned.
func (c *Controller) RunInput(ctx context.Context, mode Mode, text string, reporter PrimeReporter) (*Run, error) {
	n, err := ParseUpperBound(text)
	if err != nil {
		var verr apperrors.ValidationError
		if !errors.As(err, &verr) {
			c.Cancel()
			c.logger.Error("rejected upper bound", err, logging.String("input", text))
			return nil, err
		}
		c.logger.Warn("invalid upper bound, running empty job",
			logging.String("input", text), logging.Err(err))
	}
	return c.Start(ctx, mode, n, reporter), nil
}

// Start supersedes any live job and launches a new one. It returns as soon as
// the workers have been spawned.
func (c *Controller) Start(ctx context.Context, mode Mode, n int64, reporter PrimeReporter) *Run {
	if reporter == nil {
		reporter = NullPrimeReporter{}
	}

	c.startMu.Lock()
	defer c.startMu.Unlock()

	c.supersede(ErrSuperseded)

	workers := 1
	if mode == ModeMulti {
		workers = max(c.workers(), 1)
	}

	c.mu.Lock()
	c.generation++
	info := JobInfo{
		ID:         uuid.NewString(),
		Generation: c.generation,
		N:          n,
		Mode:       mode,
		Workers:    workers,
	}
	job := newJob(ctx, info, NewTimer(c.clock))
	c.current = job
	c.mu.Unlock()

	return c.launch(job, reporter)
}

// Cancel requests cancellation of the live job, if any, and waits until it
// has been joined. Calling Cancel while idle is a no-op.
func (c *Controller) Cancel() {
	c.startMu.Lock()
	defer c.startMu.Unlock()
	c.supersede(ErrCancelled)
}

// State reports the controller state. Discarded and failed jobs leave the
// controller idle.
func (c *Controller) State() State {
	c.mu.Lock()
	job := c.current
	c.mu.Unlock()
	if job == nil {
		return StateIdle
	}
	switch s := job.State(); s {
	case StateDiscarded, StateFailed:
		return StateIdle
	default:
		return s
	}
}

// Workers is the worker count the next multi-worker job will use.
func (c *Controller) Workers() int {
	return max(c.workers(), 1)
}

// Current returns the most recently started job, or nil.
func (c *Controller) Current() *Job {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// supersede cancels the current job with cause and blocks until it is
// joined. Callers must hold startMu.
func (c *Controller) supersede(cause error) {
	c.mu.Lock()
	prev := c.current
	c.mu.Unlock()
	if prev == nil {
		return
	}
	if prev.requestCancel(cause) {
		c.logger.Debug("cancelling job",
			logging.String("job_id", prev.ID()),
			logging.String("cause", cause.Error()),
			logging.Uint64("generation", prev.Generation()))
		if prev.span != nil {
			prev.span.AddEvent("cancellation requested")
		}
	}
	<-prev.done
}

func (c *Controller) launch(job *Job, reporter PrimeReporter) *Run {
	run := &Run{job: job}
	timer := job.timer
	timer.Start()

	job.info.Ranges = primes.Partition(job.info.N, job.info.Workers)
	info := job.info

	ctx, span := c.tracer.Start(job.ctx, "primecalc.job", trace.WithAttributes(
		attribute.String("primecalc.job_id", info.ID),
		attribute.Int64("primecalc.generation", int64(info.Generation)),
		attribute.Int64("primecalc.upper_bound", info.N),
		attribute.String("primecalc.mode", string(info.Mode)),
		attribute.Int("primecalc.workers", info.Workers),
	))
	job.span = span

	c.logger.Debug("job started",
		logging.String("job_id", info.ID),
		logging.Uint64("generation", info.Generation),
		logging.Int64("n", info.N),
		logging.String("mode", string(info.Mode)),
		logging.Int("workers", info.Workers),
		logging.Int("ranges", len(info.Ranges)))
	c.observer.JobStarted(info)

	bufSize := max(len(info.Ranges), 1) * EventBufferMultiplier
	events := make(chan primes.PrimeEvent, bufSize)
	display := make(chan primes.PrimeEvent, bufSize)
	agg := NewAggregator()

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range info.Ranges {
		idx, subRange := i, r
		g.Go(func() (err error) {
			defer recoverWorker(&err, idx)
			return c.scan(gctx, subRange, func(p int64) {
				select {
				case events <- primes.PrimeEvent{Value: p, Worker: idx, Range: subRange}:
				case <-gctx.Done():
				}
			})
		})
	}

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayPrimes(&displayWg, display, info)

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		defer close(display)
		for ev := range events {
			agg.Add(ev.Value)
			c.observer.PrimeFound(info)
			display <- ev
		}
	}()

	go func() {
		err := g.Wait()
		close(events)
		<-collected
		timer.Stop()
		displayWg.Wait()
		c.finish(job, run, agg, timer, err)
	}()

	return run
}

func (c *Controller) finish(job *Job, run *Run, agg *Aggregator, timer *Timer, workerErr error) {
	info := job.info
	span := job.span
	defer close(job.done)
	defer span.End()
	defer job.cancel(nil)

	if workerErr != nil && apperrors.IsContextError(workerErr) {
		workerErr = nil
	}

	switch job.settle(workerErr) {
	case StateCompleted:
		found := agg.Finalize(info.Workers)
		elapsed := timer.Stop()
		run.result = Result{
			JobID:      info.ID,
			Generation: info.Generation,
			N:          info.N,
			Mode:       info.Mode,
			Workers:    info.Workers,
			Primes:     found,
			Duration:   elapsed,
		}
		span.SetAttributes(attribute.Int("primecalc.primes_found", len(found)))
		span.SetStatus(codes.Ok, "")
		c.observer.JobFinished(info, OutcomeCompleted, elapsed)
		c.logger.Info("job completed",
			logging.String("job_id", info.ID),
			logging.Uint64("generation", info.Generation),
			logging.Int("primes", len(found)),
			logging.Duration("elapsed", elapsed))

	case StateFailed:
		elapsed := timer.Stop()
		var calcErr apperrors.CalculationError
		if !errors.As(workerErr, &calcErr) {
			workerErr = apperrors.CalculationError{Cause: workerErr}
		}
		run.err = workerErr
		span.RecordError(workerErr)
		span.SetStatus(codes.Error, workerErr.Error())
		c.observer.JobFinished(info, OutcomeFailed, elapsed)
		c.logger.Error("job failed", workerErr,
			logging.String("job_id", info.ID),
			logging.Uint64("generation", info.Generation))

	default:
		elapsed := timer.Stop()
		dropped := agg.Len()
		agg.Reset()
		run.err = fmt.Errorf("%w: %w", ErrDiscarded, context.Cause(job.ctx))
		span.AddEvent("discarded")
		c.observer.JobFinished(info, OutcomeDiscarded, elapsed)
		c.logger.Debug("job discarded",
			logging.String("job_id", info.ID),
			logging.Uint64("generation", info.Generation),
			logging.Int("primes_dropped", dropped),
			logging.Err(context.Cause(job.ctx)))
	}
}

func recoverWorker(err *error, worker int) {
	if r := recover(); r != nil {
		*err = apperrors.NewWorkerPanic(worker, r)
	}
}
