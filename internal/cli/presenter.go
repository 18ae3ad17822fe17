package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	apperrors "github.com/esteban505r/MultithreadPrimeCalculator/internal/errors"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/format"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/metrics"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/orchestration"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/ui"
)

// CLIColorProvider supplies ANSI colors from the active theme.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for run results in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays the comparison summary table with mode
// names, worker counts, prime counts, durations, and status in a formatted
// tabular layout. Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(runs []orchestration.RunOutcome, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	headers := []string{"Mode", "Workers", "Primes", "Duration"}
	widths := make([]int, len(headers))
	rows := make([][]string, len(runs))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for i, run := range runs {
		rows[i] = []string{
			run.Label,
			strconv.Itoa(run.Result.Workers),
			strconv.Itoa(len(run.Result.Primes)),
			format.FormatMillis(run.Result.Duration),
		}
		if run.Err != nil {
			rows[i][1], rows[i][2], rows[i][3] = "-", "-", "-"
		}
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], len(cell))
		}
	}

	for i, h := range headers {
		fmt.Fprintf(out, "%s%s%s%s   ", ui.ColorUnderline(), h, ui.ColorReset(), padRight("", widths[i]-len(h)))
	}
	fmt.Fprintf(out, "%sStatus%s\n", ui.ColorUnderline(), ui.ColorReset())

	colors := []func() string{ui.ColorBlue, ui.ColorCyan, ui.ColorCyan, ui.ColorYellow}
	for i, run := range runs {
		for j, cell := range rows[i] {
			fmt.Fprintf(out, "%s%s%s%s   ", colors[j](), cell, ui.ColorReset(), padRight("", widths[j]-len(cell)))
		}
		if run.Err != nil {
			fmt.Fprintf(out, "%s❌ Failure (%v)%s\n", ui.ColorRed(), run.Err, ui.ColorReset())
		} else {
			fmt.Fprintf(out, "%s✅ Success%s\n", ui.ColorGreen(), ui.ColorReset())
		}
	}

	if len(runs) == 2 && runs[0].Err == nil && runs[1].Err == nil {
		single, multi := runs[0].Result, runs[1].Result
		if single.Mode == orchestration.ModeMulti {
			single, multi = multi, single
		}
		if s := orchestration.Speedup(single.Duration, multi.Duration); s > 0 {
			fmt.Fprintf(out, "Speedup: %s%.2fx%s\n", ui.ColorGreen(), s, ui.ColorReset())
		}
	}
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the final run result using the CLI's DisplayResult
// function.
func (CLIResultPresenter) PresentResult(result orchestration.Result, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		DisplayQuietResult(out, result)
		return
	}
	DisplayResult(result, opts, out)
}

// HandleError handles run errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats shows memory statistics gathered around a run.
func DisplayMemoryStats(delta metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(delta.PeakHeap))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(delta.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.GCCycles)
	if delta.PauseNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.PauseNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
	fmt.Fprintf(out, "  Goroutines:      %d\n", delta.Goroutines)
}
