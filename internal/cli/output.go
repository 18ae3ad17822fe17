// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayPrimes].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult], [FormatResultGrid].

package cli

import (
	"fmt"
	"io"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/format"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/orchestration"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/ui"
)

// FormatQuietResult formats a result for quiet mode output: the primes on a
// single line, space separated, suitable for scripting.
func FormatQuietResult(result orchestration.Result) string {
	return format.FormatPrimeList(result.Primes)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, result orchestration.Result) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// FormatResultGrid lays the primes out in a grid. Unless full is set, a
// ResultSet longer than DisplayLimit is truncated to its first and last
// DisplayEdges primes.
func FormatResultGrid(primes []int64, columns int, full bool) string {
	if full || len(primes) <= DisplayLimit {
		return format.FormatPrimeGrid(primes, columns)
	}
	head := format.FormatPrimeGrid(primes[:DisplayEdges], columns)
	tail := format.FormatPrimeGrid(primes[len(primes)-DisplayEdges:], columns)
	return fmt.Sprintf("%s\n... (%d more) ...\n%s", head, len(primes)-2*DisplayEdges, tail)
}

// DisplayResult formats and prints the final ResultSet and the elapsed time.
func DisplayResult(result orchestration.Result, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- Results ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Upper bound:  %s%d%s\n", ui.ColorMagenta(), result.N, ui.ColorReset())
	fmt.Fprintf(out, "Mode:         %s%s%s (%d worker(s))\n", ui.ColorCyan(), result.Mode, ui.ColorReset(), result.Workers)
	fmt.Fprintf(out, "Primes found: %s%d%s\n", ui.ColorGreen(), len(result.Primes), ui.ColorReset())
	if n := len(result.Primes); n > 0 {
		fmt.Fprintf(out, "Largest:      %s%d%s\n", ui.ColorGreen(), result.Primes[n-1], ui.ColorReset())
		fmt.Fprintf(out, "\n%s\n", FormatResultGrid(result.Primes, opts.Columns, opts.Verbose))
	}
	fmt.Fprintf(out, "\nDuration: %s%s%s\n", ui.ColorYellow(), format.FormatMillis(result.Duration), ui.ColorReset())
}
