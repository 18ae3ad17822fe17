package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/config"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the upper bound, timeout, and environment details.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Searching primes up to %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Input, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single, multi, or
// comparison of both).
func PrintExecutionMode(mode string, workers int, out io.Writer) {
	var modeDesc string
	switch mode {
	case config.ModeCompare:
		modeDesc = "Comparison of single-worker and multi-worker searches"
	case config.ModeSingle:
		modeDesc = fmt.Sprintf("Single-worker search (%s1%s worker)", ui.ColorGreen(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Multi-worker search (%s%d%s workers)", ui.ColorGreen(), workers, ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
