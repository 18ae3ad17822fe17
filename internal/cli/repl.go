package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/format"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/orchestration"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/ui"
)

// REPLConfig tunes a REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration for each job.
	Timeout time.Duration
	// Columns is the number of primes per row when showing the last result.
	Columns int
}

// REPL represents an interactive prime search session. Jobs run in the
// background; starting a new one supersedes whatever is still running.
type REPL struct {
	config     REPLConfig
	controller *orchestration.Controller
	in         io.Reader
	out        *syncWriter

	mu      sync.Mutex
	current *orchestration.Run
	last    *orchestration.Result
	pending sync.WaitGroup
}

// syncWriter serialises writes from the prompt loop and from background job
// reports.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// NewREPL creates a new REPL instance driving the given controller.
func NewREPL(controller *orchestration.Controller, config REPLConfig) *REPL {
	if config.Columns < 1 {
		config.Columns = 10
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Minute
	}
	return &REPL{
		config:     config,
		controller: controller,
		in:         os.Stdin,
		out:        &syncWriter{w: os.Stdout},
	}
}

func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

func (r *REPL) SetOutput(out io.Writer) {
	r.out = &syncWriter{w: out}
}

// Start runs the prompt loop until exit, EOF or ctx ends. A job still in
// flight is cancelled and joined before it returns.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	defer r.shutdown()

	lines := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"primes> "+ui.ColorReset())

		line, err := lines.ReadString('\n')
		switch {
		case errors.Is(err, io.EOF) && strings.TrimSpace(line) == "":
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		case err != nil && !errors.Is(err, io.EOF):
			fmt.Fprintf(r.out, "%sinput: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !r.processCommand(ctx, line) {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (r *REPL) shutdown() {
	r.controller.Cancel()
	r.pending.Wait()
}

func (r *REPL) printBanner() {
	title := "Prime Calculator · interactive"
	rule := strings.Repeat("─", len([]rune(title))+4)
	fmt.Fprintf(r.out, "\n%s┌%s┐%s\n", ui.ColorCyan(), rule, ui.ColorReset())
	fmt.Fprintf(r.out, "%s│%s  %s%s%s  %s│%s\n", ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), title, ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s└%s┘%s\n\n", ui.ColorCyan(), rule, ui.ColorReset())
}

// replCommands is the help table, in display order.
var replCommands = []struct{ usage, summary string }{
	{"single <n>", "search [2, n] on one worker, in the background"},
	{"multi <n>", "search [2, n] on every worker, in the background"},
	{"<n>", "shorthand for multi <n>"},
	{"compare <n>", "run both searches and compare them"},
	{"cancel", "stop the running search"},
	{"wait", "block until the running search is joined"},
	{"last", "print the primes of the last completed search"},
	{"status", "show the controller and current job"},
	{"workers", "show how many workers multi uses"},
	{"help", "print this list"},
	{"exit, quit", "leave"},
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, c := range replCommands {
		fmt.Fprintf(r.out, "  %s%-12s%s %s\n", ui.ColorYellow(), c.usage, ui.ColorReset(), c.summary)
	}
}

// processCommand runs one line of input and reports whether the loop should
// keep going.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return true
	}
	cmd, arg := strings.ToLower(fields[0]), strings.Join(fields[1:], " ")

	switch cmd {
	case "single", "s":
		r.cmdRun(ctx, orchestration.ModeSingle, arg)
	case "multi", "m":
		r.cmdRun(ctx, orchestration.ModeMulti, arg)
	case "compare", "cmp":
		r.cmdCompare(ctx, arg)
	case "cancel", "c":
		r.cmdCancel()
	case "wait", "w":
		r.cmdWait()
	case "last", "l":
		r.cmdLast()
	case "status", "st":
		r.cmdStatus()
	case "workers":
		fmt.Fprintf(r.out, "Multi-worker searches use %s%d%s worker(s).\n", ui.ColorCyan(), r.controller.Workers(), ui.ColorReset())
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if _, err := orchestration.ParseUpperBound(cmd); err == nil {
			r.cmdRun(ctx, orchestration.ModeMulti, cmd)
			break
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s (try help)\n", ui.ColorRed(), cmd, ui.ColorReset())
	}

	return true
}

// cmdRun starts a background job. Unparseable input still starts a job,
// which completes with an empty result.
func (r *REPL) cmdRun(ctx context.Context, mode orchestration.Mode, arg string) {
	jobCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)

	run, err := r.controller.RunInput(jobCtx, mode, arg, orchestration.NullPrimeReporter{})
	if err != nil {
		cancel()
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	info := run.Job().Info()
	r.mu.Lock()
	r.current = run
	r.mu.Unlock()

	fmt.Fprintf(r.out, "Job %s#%d%s started: %s search of [2, %d] with %d worker(s).\n",
		ui.ColorMagenta(), info.Generation, ui.ColorReset(), info.Mode, info.N, info.Workers)

	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		defer cancel()
		res, err := run.Wait()
		r.reportRun(info, res, err)
	}()
}

func (r *REPL) reportRun(info orchestration.JobInfo, res orchestration.Result, err error) {
	switch {
	case err == nil:
		r.mu.Lock()
		r.last = &res
		r.mu.Unlock()
		fmt.Fprintf(r.out, "\n%sJob #%d completed:%s %d primes in [2, %d]. Duration: %s\n",
			ui.ColorGreen(), info.Generation, ui.ColorReset(), len(res.Primes), res.N, format.FormatMillis(res.Duration))
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(r.out, "\n%sJob #%d timed out after %s.%s\n", ui.ColorYellow(), info.Generation, r.config.Timeout, ui.ColorReset())
	case errors.Is(err, orchestration.ErrDiscarded):
		fmt.Fprintf(r.out, "\n%sJob #%d discarded.%s\n", ui.ColorYellow(), info.Generation, ui.ColorReset())
	default:
		fmt.Fprintf(r.out, "\n%sJob #%d failed: %v%s\n", ui.ColorRed(), info.Generation, err, ui.ColorReset())
	}
}

// cmdCompare runs both searches in the foreground.
func (r *REPL) cmdCompare(ctx context.Context, arg string) {
	n, err := orchestration.ParseUpperBound(arg)
	if err != nil {
		fmt.Fprintf(r.out, "%sUsage: compare <n> (%v)%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	runs := orchestration.ExecuteComparison(ctx, r.controller, n, orchestration.NullPrimeReporter{})
	presenter := CLIResultPresenter{}
	orchestration.AnalyzeComparisonResults(runs, orchestration.PresentationOptions{Columns: r.config.Columns}, summaryPresenter{presenter}, presenter, r.out)
	fmt.Fprintln(r.out)
}

// summaryPresenter prints the comparison table but only a one-line summary
// of the result, keeping the REPL readable for large bounds.
type summaryPresenter struct {
	CLIResultPresenter
}

func (summaryPresenter) PresentResult(result orchestration.Result, _ orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "%d primes in [2, %d].\n", len(result.Primes), result.N)
}

// cmdCancel cancels the running job and waits until it has stopped.
func (r *REPL) cmdCancel() {
	if s := r.controller.State(); s != orchestration.StateRunning {
		fmt.Fprintf(r.out, "Nothing to cancel (state: %s).\n", s)
		return
	}
	r.controller.Cancel()
}

// cmdWait blocks until the most recent job has been joined.
func (r *REPL) cmdWait() {
	r.mu.Lock()
	run := r.current
	r.mu.Unlock()
	if run == nil {
		return
	}
	<-run.Done()
	r.pending.Wait()
}

// cmdLast shows the primes of the last completed job.
func (r *REPL) cmdLast() {
	r.mu.Lock()
	last := r.last
	r.mu.Unlock()
	if last == nil {
		fmt.Fprintln(r.out, "No completed search yet.")
		return
	}
	fmt.Fprintf(r.out, "%s\n", FormatResultGrid(last.Primes, r.config.Columns, false))
	fmt.Fprintf(r.out, "Duration: %s\n", format.FormatMillis(last.Duration))
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sController%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  State:    %s%s%s\n", ui.ColorCyan(), r.controller.State(), ui.ColorReset())
	if job := r.controller.Current(); job != nil {
		info := job.Info()
		fmt.Fprintf(r.out, "  Job:      %s#%d%s (%s, %s)\n", ui.ColorCyan(), info.Generation, ui.ColorReset(), info.Mode, job.State())
		fmt.Fprintf(r.out, "  Range:    [2, %d] over %d worker(s)\n", info.N, info.Workers)
		fmt.Fprintf(r.out, "  Elapsed:  %s\n", format.FormatExecutionDuration(job.Elapsed()))
	}
	fmt.Fprintf(r.out, "  Timeout:  %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintln(r.out)
}
