package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/orchestration"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/primes"
)

const (
	// batchInterval bounds how long a prime waits before reaching the UI.
	batchInterval = 50 * time.Millisecond
	// batchSize flushes early when this many primes are pending.
	batchSize = 512
)

// messageSink accepts messages for the running program.
type messageSink interface {
	Send(msg tea.Msg)
}

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIPrimeReporter implements orchestration.PrimeReporter.
// It drains the prime channel and forwards primes to the program in batches,
// so a fast search does not flood the update loop with one message per prime.
type TUIPrimeReporter struct {
	sink messageSink
}

// Verify interface compliance.
var _ orchestration.PrimeReporter = (*TUIPrimeReporter)(nil)

// DisplayPrimes batches primes and sends PrimeBatchMsg values tagged with the
// job's generation. The final partial batch is flushed when the channel
// closes.
func (t *TUIPrimeReporter) DisplayPrimes(wg *sync.WaitGroup, primeChan <-chan primes.PrimeEvent, job orchestration.JobInfo) {
	defer wg.Done()

	ticker := time.NewTicker(batchInterval)
	defer ticker.Stop()

	var pending []int64
	flush := func() {
		if len(pending) == 0 {
			return
		}
		t.sink.Send(PrimeBatchMsg{Generation: job.Generation, Values: pending})
		pending = nil
	}

	for {
		select {
		case ev, ok := <-primeChan:
			if !ok {
				flush()
				return
			}
			pending = append(pending, ev.Value)
			if len(pending) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// startJobCmd asks the controller to supersede the running job and start a
// new one. It runs off the update loop because superseding blocks until the
// previous job is joined.
func startJobCmd(c *orchestration.Controller, ctx context.Context, mode orchestration.Mode, text string, sink messageSink) tea.Cmd {
	return func() tea.Msg {
		run, err := c.RunInput(ctx, mode, text, &TUIPrimeReporter{sink: sink})
		if err != nil {
			return InputErrorMsg{Err: err}
		}
		return JobStartedMsg{Info: run.Job().Info(), run: run}
	}
}

// waitJobCmd blocks until the run is joined and reports its outcome.
func waitJobCmd(run *orchestration.Run) tea.Cmd {
	return func() tea.Msg {
		res, err := run.Wait()
		return JobFinishedMsg{Generation: run.Job().Generation(), Result: res, Err: err}
	}
}

// cancelJobCmd cancels the running job off the update loop.
func cancelJobCmd(c *orchestration.Controller) tea.Cmd {
	return func() tea.Msg {
		c.Cancel()
		return nil
	}
}
