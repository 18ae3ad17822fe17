package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/orchestration"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/primes"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/ui"
)

// CLIPrimeReporter implements orchestration.PrimeReporter for CLI output.
// By default it shows a spinner with a running count; in verbose mode it
// prints every prime as it arrives.
type CLIPrimeReporter struct {
	Out     io.Writer
	Verbose bool
}

// Verify that CLIPrimeReporter implements orchestration.PrimeReporter.
var _ orchestration.PrimeReporter = CLIPrimeReporter{}

// DisplayPrimes consumes primeChan until it is closed.
func (r CLIPrimeReporter) DisplayPrimes(wg *sync.WaitGroup, primeChan <-chan primes.PrimeEvent, job orchestration.JobInfo) {
	if r.Verbose {
		StreamPrimes(wg, primeChan, job, r.Out)
		return
	}
	DisplayPrimes(wg, primeChan, job, r.Out)
}

// DisplayPrimes shows a spinner whose suffix reports how many primes have
// been found so far. The spinner is refreshed at ProgressRefreshRate rather
// than once per prime.
func DisplayPrimes(wg *sync.WaitGroup, primeChan <-chan primes.PrimeEvent, job orchestration.JobInfo, out io.Writer) {
	defer wg.Done()

	s := newSpinner(spinner.WithWriter(out))
	count := 0
	s.UpdateSuffix(spinnerSuffix(job, count))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case _, ok := <-primeChan:
			if !ok {
				s.UpdateSuffix(spinnerSuffix(job, count))
				s.Stop()
				return
			}
			count++
		case <-ticker.C:
			s.UpdateSuffix(spinnerSuffix(job, count))
		}
	}
}

func spinnerSuffix(job orchestration.JobInfo, count int) string {
	return fmt.Sprintf(" Searching [2, %d] with %d worker(s)... %d primes found", job.N, job.Workers, count)
}

// StreamPrimes prints every prime on its own line, tagged with the worker
// that found it.
func StreamPrimes(wg *sync.WaitGroup, primeChan <-chan primes.PrimeEvent, job orchestration.JobInfo, out io.Writer) {
	defer wg.Done()
	for ev := range primeChan {
		fmt.Fprintf(out, "  %s%d%s  %s(worker %d, range %s)%s\n",
			ui.ColorGreen(), ev.Value, ui.ColorReset(),
			ui.ColorCyan(), ev.Worker, ev.Range, ui.ColorReset())
	}
}
