package app

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/cli"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/config"
	apperrors "github.com/esteban505r/MultithreadPrimeCalculator/internal/errors"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/logging"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/metrics"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/orchestration"
)

// runCalculate orchestrates the execution of the one-shot CLI command.
func (a *Application) runCalculate(ctx context.Context, controller *orchestration.Controller, logger logging.Logger, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(a.Config.Mode, a.workers(), out)
	}

	reporter := a.reporter(out)
	presenter := cli.CLIResultPresenter{}
	opts := orchestration.PresentationOptions{
		Columns: a.Config.Columns,
		Verbose: a.Config.Verbose,
		Quiet:   a.Config.Quiet,
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()

	var code int
	if a.Config.Mode == config.ModeCompare {
		code = a.runComparison(ctx, controller, logger, reporter, presenter, opts, out)
	} else {
		code = a.runSingleMode(ctx, controller, reporter, presenter, opts, out)
	}

	if a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(collector.Snapshot().Since(before), out)
	}
	return code
}

// runSingleMode runs one job in the configured mode and presents its result.
func (a *Application) runSingleMode(ctx context.Context, controller *orchestration.Controller, reporter orchestration.PrimeReporter, presenter cli.CLIResultPresenter, opts orchestration.PresentationOptions, out io.Writer) int {
	mode, ok := orchestration.ParseMode(a.Config.Mode)
	if !ok {
		mode = orchestration.ModeMulti
	}

	run, err := controller.RunInput(ctx, mode, a.Config.Input, reporter)
	if err != nil {
		return presenter.HandleError(err, 0, out)
	}
	result, err := run.Wait()
	if err != nil {
		return presenter.HandleError(apperrors.AsTimeout(err, a.Config.Timeout), 0, out)
	}
	presenter.PresentResult(result, opts, out)
	return apperrors.ExitSuccess
}

// runComparison runs the single- and multi-worker searches back to back and
// checks that they agree.
func (a *Application) runComparison(ctx context.Context, controller *orchestration.Controller, logger logging.Logger, reporter orchestration.PrimeReporter, presenter cli.CLIResultPresenter, opts orchestration.PresentationOptions, out io.Writer) int {
	n, err := orchestration.ParseUpperBound(a.Config.Input)
	if err != nil {
		var calcErr apperrors.CalculationError
		if errors.As(err, &calcErr) {
			logger.Error("upper bound rejected", err, logging.String("input", a.Config.Input))
			return presenter.HandleError(err, 0, out)
		}
		logger.Warn("unparseable upper bound, searching an empty range",
			logging.String("input", a.Config.Input), logging.Err(err))
	}

	runs := orchestration.ExecuteComparison(ctx, controller, n, reporter)
	for i := range runs {
		runs[i].Err = apperrors.AsTimeout(runs[i].Err, a.Config.Timeout)
	}
	return orchestration.AnalyzeComparisonResults(runs, opts, presenter, presenter, out)
}

// reporter picks the progress display: nothing when quiet, otherwise the
// spinner or, with -v, a line per prime.
func (a *Application) reporter(out io.Writer) orchestration.PrimeReporter {
	if a.Config.Quiet {
		return orchestration.NullPrimeReporter{}
	}
	return cli.CLIPrimeReporter{Out: out, Verbose: a.Config.Verbose}
}

// workers is the worker count a multi-worker job will use.
func (a *Application) workers() int {
	if a.Config.Workers > 0 {
		return a.Config.Workers
	}
	return runtime.NumCPU()
}
