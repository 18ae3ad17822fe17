package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/esteban505r/MultithreadPrimeCalculator/internal/errors"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/metrics"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/orchestration"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/ui"
)

func TestPresentComparisonTable(t *testing.T) {
	ui.InitTheme(true)
	t.Cleanup(func() { ui.InitTheme(false) })

	runs := []orchestration.RunOutcome{
		{Label: "multi", Result: orchestration.Result{Mode: orchestration.ModeMulti, Workers: 8, Primes: []int64{2, 3}, Duration: 10 * time.Millisecond}},
		{Label: "single", Result: orchestration.Result{Mode: orchestration.ModeSingle, Workers: 1, Primes: []int64{2, 3}, Duration: 40 * time.Millisecond}},
	}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(runs, &buf)
	out := buf.String()

	for _, want := range []string{"Comparison Summary", "Mode", "Workers", "multi", "single", "10 milliseconds", "✅ Success", "Speedup: 4.00x"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestPresentComparisonTable_Failure(t *testing.T) {
	ui.InitTheme(true)
	t.Cleanup(func() { ui.InitTheme(false) })

	runs := []orchestration.RunOutcome{
		{Label: "single", Err: errors.New("boom")},
	}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(runs, &buf)
	if !strings.Contains(buf.String(), "Failure (boom)") {
		t.Errorf("missing failure row:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Speedup") {
		t.Error("speedup must not be shown for failed runs")
	}
}

func TestPresentResultQuiet(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentResult(orchestration.Result{Primes: []int64{2, 3, 5}}, orchestration.PresentationOptions{Quiet: true}, &buf)
	if buf.String() != "2 3 5\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"discarded by signal", orchestration.ErrDiscarded, apperrors.ExitErrorCanceled},
		{"fault", apperrors.CalculationError{Cause: errors.New("overflow")}, apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if got := (CLIResultPresenter{}).HandleError(tt.err, time.Second, &buf); got != tt.want {
				t.Errorf("HandleError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemoryDelta{PeakHeap: 2048, Allocated: 1 << 20, GCCycles: 3, Goroutines: 5}, &buf)
	out := buf.String()
	for _, want := range []string{"2.0 KiB", "1.0 MiB", "GC cycles:       3", "Goroutines:      5"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}
