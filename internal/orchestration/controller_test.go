package orchestration

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/esteban505r/MultithreadPrimeCalculator/internal/errors"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/primes"
)

var primesTo30 = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}

// recordingReporter records every event it receives, across jobs, in arrival
// order.
type recordingReporter struct {
	mu     sync.Mutex
	values []int64
	gens   []uint64
}

func (r *recordingReporter) DisplayPrimes(wg *sync.WaitGroup, ch <-chan primes.PrimeEvent, job JobInfo) {
	defer wg.Done()
	for ev := range ch {
		r.mu.Lock()
		r.values = append(r.values, ev.Value)
		r.gens = append(r.gens, job.Generation)
		r.mu.Unlock()
	}
}

func (r *recordingReporter) snapshot() ([]int64, []uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.values), slices.Clone(r.gens)
}

// sieve is an independent reference for primes in [2, n].
func sieve(n int64) []int64 {
	out := []int64{}
	if n < 2 {
		return out
	}
	composite := make([]bool, n+1)
	for i := int64(2); i <= n; i++ {
		if composite[i] {
			continue
		}
		out = append(out, i)
		for j := i * i; j <= n; j += i {
			composite[j] = true
		}
	}
	return out
}

// blockingScan blocks ranges that reach beyond limit until cancelled, and
// scans everything else normally.
func blockingScan(limit int64, started chan<- struct{}) scanFunc {
	var once sync.Once
	return func(ctx context.Context, r primes.SubRange, onPrime func(int64)) error {
		if r.End <= limit {
			return primes.Scan(ctx, r, onPrime)
		}
		onPrime(2)
		once.Do(func() { close(started) })
		<-ctx.Done()
		return ctx.Err()
	}
}

func waitRun(t *testing.T, run *Run) (Result, error) {
	t.Helper()
	select {
	case <-run.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("run did not finish within timeout")
	}
	return run.Wait()
}

func TestRunSingleThreaded(t *testing.T) {
	t.Parallel()
	c := NewController()
	reporter := &recordingReporter{}

	res, err := waitRun(t, c.RunSingleThreaded(context.Background(), 30, reporter))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(res.Primes, primesTo30) {
		t.Errorf("Primes = %v, want %v", res.Primes, primesTo30)
	}
	if res.Workers != 1 || res.Mode != ModeSingle || res.N != 30 {
		t.Errorf("unexpected result metadata: %+v", res)
	}
	streamed, _ := reporter.snapshot()
	if !slices.Equal(streamed, primesTo30) {
		t.Errorf("single worker must stream in ascending order, got %v", streamed)
	}
	if got := c.State(); got != StateCompleted {
		t.Errorf("State() = %s, want %s", got, StateCompleted)
	}
}

func TestRunMultiThreadedMatchesSingle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		n       int64
		workers int
	}{
		{"n=30 four workers", 30, 4},
		{"n=10 eight workers", 10, 8},
		{"n=1000 three workers", 1000, 3},
		{"n=5000 sixteen workers", 5000, 16},
		{"more workers than numbers", 3, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewController(WithWorkers(tt.workers))
			single, err := waitRun(t, c.RunSingleThreaded(context.Background(), tt.n, nil))
			if err != nil {
				t.Fatalf("single: %v", err)
			}
			multi, err := waitRun(t, c.RunMultiThreaded(context.Background(), tt.n, NullPrimeReporter{}))
			if err != nil {
				t.Fatalf("multi: %v", err)
			}
			if multi.Workers != tt.workers {
				t.Errorf("Workers = %d, want %d", multi.Workers, tt.workers)
			}
			if !slices.Equal(single.Primes, multi.Primes) {
				t.Errorf("multi %v != single %v", multi.Primes, single.Primes)
			}
			if want := sieve(tt.n); !slices.Equal(multi.Primes, want) {
				t.Errorf("Primes = %v, want %v", multi.Primes, want)
			}
		})
	}
}

func TestBoundaryInputs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []int64
	}{
		{"zero", "0", []int64{}},
		{"one", "1", []int64{}},
		{"two", "2", []int64{2}},
		{"padded", "  30 \n", primesTo30},
		{"garbage", "abc", []int64{}},
		{"empty", "", []int64{}},
		{"negative", "-7", []int64{}},
		{"decimal", "10.5", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for _, mode := range []Mode{ModeSingle, ModeMulti} {
				c := NewController(WithWorkers(4))
				run, err := c.RunInput(context.Background(), mode, tt.input, nil)
				if err != nil {
					t.Fatalf("%s: unexpected error: %v", mode, err)
				}
				res, err := waitRun(t, run)
				if err != nil {
					t.Fatalf("%s: unexpected run error: %v", mode, err)
				}
				if !slices.Equal(res.Primes, tt.want) {
					t.Errorf("%s: Primes = %v, want %v", mode, res.Primes, tt.want)
				}
				if res.Primes == nil {
					t.Errorf("%s: Primes must be empty, not nil", mode)
				}
			}
		})
	}
}

func TestRunInputOverflowIsFault(t *testing.T) {
	t.Parallel()
	started := make(chan struct{})
	c := NewController()
	c.scan = blockingScan(100, started)

	prev := c.RunSingleThreaded(context.Background(), 10_000, nil)
	<-started

	run, err := c.RunInput(context.Background(), ModeMulti, "99999999999999999999", nil)
	if run != nil {
		t.Error("expected no run for an out-of-range bound")
	}
	var calcErr apperrors.CalculationError
	if !errors.As(err, &calcErr) {
		t.Fatalf("expected CalculationError, got %T: %v", err, err)
	}
	if _, err := waitRun(t, prev); !errors.Is(err, ErrDiscarded) {
		t.Errorf("previous run error = %v, want ErrDiscarded", err)
	}
	if got := c.State(); got != StateIdle {
		t.Errorf("State() = %s, want %s", got, StateIdle)
	}
}

func TestSupersedeDiscardsPreviousJob(t *testing.T) {
	t.Parallel()
	started := make(chan struct{})
	c := NewController(WithWorkers(4))
	c.scan = blockingScan(100, started)
	reporter := &recordingReporter{}

	first := c.RunMultiThreaded(context.Background(), 10_000, reporter)
	<-started
	if got := c.State(); got != StateRunning {
		t.Fatalf("State() = %s, want %s", got, StateRunning)
	}

	second := c.RunSingleThreaded(context.Background(), 30, reporter)

	// The first job is joined before the second is created.
	select {
	case <-first.Done():
	default:
		t.Fatal("previous job was not joined before the new one started")
	}
	if _, err := first.Wait(); !errors.Is(err, ErrDiscarded) || !errors.Is(err, ErrSuperseded) {
		t.Errorf("first.Wait() error = %v, want ErrDiscarded caused by ErrSuperseded", err)
	}
	if first.Job().State() != StateDiscarded {
		t.Errorf("first job state = %s, want %s", first.Job().State(), StateDiscarded)
	}

	res, err := waitRun(t, second)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !slices.Equal(res.Primes, primesTo30) {
		t.Errorf("second Primes = %v, want %v", res.Primes, primesTo30)
	}
	if second.Job().Generation() <= first.Job().Generation() {
		t.Errorf("generation did not increase: %d then %d", first.Job().Generation(), second.Job().Generation())
	}

	_, gens := reporter.snapshot()
	seenNew := false
	for _, g := range gens {
		if g == second.Job().Generation() {
			seenNew = true
		} else if seenNew {
			t.Fatalf("event from generation %d arrived after the new job started: %v", g, gens)
		}
	}
}

func TestCancel(t *testing.T) {
	t.Parallel()

	t.Run("idle is a no-op", func(t *testing.T) {
		t.Parallel()
		c := NewController()
		c.Cancel()
		c.Cancel()
		if got := c.State(); got != StateIdle {
			t.Errorf("State() = %s, want %s", got, StateIdle)
		}
	})

	t.Run("running job is discarded", func(t *testing.T) {
		t.Parallel()
		started := make(chan struct{})
		c := NewController()
		c.scan = blockingScan(100, started)
		run := c.RunSingleThreaded(context.Background(), 10_000, nil)
		<-started

		c.Cancel()
		c.Cancel()

		res, err := run.Wait()
		if !errors.Is(err, ErrDiscarded) || !errors.Is(err, context.Canceled) {
			t.Errorf("Wait() error = %v, want ErrDiscarded", err)
		}
		if !errors.Is(err, ErrCancelled) || errors.Is(err, ErrSuperseded) {
			t.Errorf("Wait() error = %v, want cause ErrCancelled", err)
		}
		if res.Primes != nil {
			t.Errorf("discarded run must not report primes, got %v", res.Primes)
		}
		if got := c.State(); got != StateIdle {
			t.Errorf("State() = %s, want %s", got, StateIdle)
		}
	})

	t.Run("completed job is left alone", func(t *testing.T) {
		t.Parallel()
		c := NewController()
		run := c.RunSingleThreaded(context.Background(), 30, nil)
		if _, err := waitRun(t, run); err != nil {
			t.Fatal(err)
		}
		c.Cancel()
		if got := run.Job().State(); got != StateCompleted {
			t.Errorf("job state = %s, want %s", got, StateCompleted)
		}
	})
}

func TestParentContextDeadline(t *testing.T) {
	t.Parallel()
	started := make(chan struct{})
	c := NewController()
	c.scan = blockingScan(100, started)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := waitRun(t, c.RunSingleThreaded(ctx, 10_000, nil))
	if !errors.Is(err, ErrDiscarded) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want ErrDiscarded with DeadlineExceeded", err)
	}
}

func TestWorkerPanicIsFault(t *testing.T) {
	t.Parallel()
	c := NewController(WithWorkers(4))
	c.scan = func(ctx context.Context, r primes.SubRange, onPrime func(int64)) error {
		if r.Contains(primes.MinPrime) {
			panic("boom")
		}
		return primes.Scan(ctx, r, onPrime)
	}

	_, err := waitRun(t, c.RunMultiThreaded(context.Background(), 1000, nil))
	var calcErr apperrors.CalculationError
	if !errors.As(err, &calcErr) {
		t.Fatalf("expected CalculationError, got %T: %v", err, err)
	}
	if got := c.State(); got != StateIdle {
		t.Errorf("State() = %s, want %s", got, StateIdle)
	}
	if got := c.Current().State(); got != StateFailed {
		t.Errorf("job state = %s, want %s", got, StateFailed)
	}
}

func TestDurationUsesClock(t *testing.T) {
	t.Parallel()
	var ticks atomic.Int64
	base := time.Unix(0, 0)
	clock := func() time.Time {
		return base.Add(time.Duration(ticks.Add(1)) * 7 * time.Millisecond)
	}
	c := NewController(WithClock(clock))

	res, err := waitRun(t, c.RunSingleThreaded(context.Background(), 30, nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.Millis() != 7 {
		t.Errorf("Millis() = %d, want 7", res.Millis())
	}
	if got := c.Current().Elapsed(); got != res.Duration {
		t.Errorf("Job.Elapsed() = %v, want frozen %v", got, res.Duration)
	}
}

func TestSingleThreadedRunsAreRepeatable(t *testing.T) {
	t.Parallel()
	c := NewController()
	const n = 5000

	first, err := waitRun(t, c.RunSingleThreaded(context.Background(), n, nil))
	if err != nil {
		t.Fatal(err)
	}
	second, err := waitRun(t, c.RunSingleThreaded(context.Background(), n, nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Primes) != 669 {
		t.Errorf("found %d primes up to %d, want 669", len(first.Primes), n)
	}
	if !slices.Equal(first.Primes, second.Primes) {
		t.Errorf("second run differs: %d vs %d primes", len(second.Primes), len(first.Primes))
	}
}

// drainThenAdvance drains like NullPrimeReporter and then advances the fake
// clock, standing in for a reporter with slow terminal output. It waits for
// the job's timer to stop first, giving up after a second.
type drainThenAdvance struct {
	c     *Controller
	clock *fakeClock
	by    time.Duration
}

func (r drainThenAdvance) DisplayPrimes(wg *sync.WaitGroup, ch <-chan primes.PrimeEvent, _ JobInfo) {
	defer wg.Done()
	for range ch {
	}
	timer := r.c.Current().timer
	for deadline := time.Now().Add(time.Second); time.Now().Before(deadline); {
		timer.mu.Lock()
		stopped := !timer.running
		timer.mu.Unlock()
		if stopped {
			break
		}
		time.Sleep(time.Millisecond)
	}
	r.clock.Advance(r.by)
}

func TestDurationExcludesReporterDrain(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := NewController(WithClock(clock.Now))

	res, err := waitRun(t, c.RunSingleThreaded(context.Background(), 30, drainThenAdvance{c: c, clock: clock, by: time.Hour}))
	if err != nil {
		t.Fatal(err)
	}
	if res.Duration >= time.Hour {
		t.Errorf("Duration = %v includes the reporter's drain time", res.Duration)
	}
}

func TestJobIdentity(t *testing.T) {
	t.Parallel()
	c := NewController()
	seen := make(map[string]bool)
	var last uint64
	for range 5 {
		run := c.RunSingleThreaded(context.Background(), 10, nil)
		if _, err := waitRun(t, run); err != nil {
			t.Fatal(err)
		}
		info := run.Job().Info()
		if seen[info.ID] {
			t.Errorf("duplicate job ID %s", info.ID)
		}
		seen[info.ID] = true
		if info.Generation <= last {
			t.Errorf("generation %d not greater than %d", info.Generation, last)
		}
		last = info.Generation
	}
}

func TestConcurrentRequestsNoDeadlock(t *testing.T) {
	t.Parallel()
	c := NewController(WithWorkers(4))
	reporter := &recordingReporter{}

	var wg sync.WaitGroup
	runs := make(chan *Run, 40)
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			mode := ModeSingle
			if i%2 == 0 {
				mode = ModeMulti
			}
			runs <- c.Start(context.Background(), mode, int64(500+i*100), reporter)
		}()
		go func() {
			defer wg.Done()
			c.Cancel()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(runs)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("DEADLOCK: concurrent start/cancel did not complete within timeout")
	}

	completed := 0
	for run := range runs {
		res, err := waitRun(t, run)
		switch {
		case err == nil:
			completed++
			if want := sieve(res.N); !slices.Equal(res.Primes, want) {
				t.Errorf("job %d: wrong primes", res.Generation)
			}
		case !errors.Is(err, ErrDiscarded):
			t.Errorf("unexpected error: %v", err)
		}
	}
	if s := c.State(); s == StateRunning || s == StateCancelling {
		t.Errorf("State() = %s after all runs were joined", s)
	}
	t.Logf("%d of 20 runs completed", completed)
}

func TestPropertyMultiEqualsSingle(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("multi-worker ResultSet equals single-worker ResultSet", prop.ForAll(
		func(n int64, workers int) bool {
			c := NewController(WithWorkers(workers))
			single, err := c.RunSingleThreaded(context.Background(), n, nil).Wait()
			if err != nil {
				return false
			}
			multi, err := c.RunMultiThreaded(context.Background(), n, nil).Wait()
			if err != nil {
				return false
			}
			return slices.Equal(single.Primes, multi.Primes) && slices.IsSorted(multi.Primes)
		},
		gen.Int64Range(0, 3000),
		gen.IntRange(1, 16),
	))

	properties.TestingRun(t)
}
