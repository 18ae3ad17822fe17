// Package app wires configuration, logging, metrics and the job controller
// together and dispatches to the one-shot CLI, the REPL or the dashboard.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/cli"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/config"
	apperrors "github.com/esteban505r/MultithreadPrimeCalculator/internal/errors"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/logging"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/metrics"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/orchestration"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/tui"
	"github.com/esteban505r/MultithreadPrimeCalculator/internal/ui"
)

// Application represents the primecalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Metrics   *metrics.Metrics

	controllerOpts []orchestration.Option
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithControllerOptions appends options applied to the job controller after
// the ones derived from the configuration.
func WithControllerOptions(opts ...orchestration.Option) AppOption {
	return func(a *Application) { a.controllerOpts = append(a.controllerOpts, opts...) }
}

// New creates a new Application instance by parsing command-line arguments.
// A .env file in the working directory, if any, is loaded first so that
// PRIMECALC_* variables defined there take part in configuration.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(errWriter, "Error loading .env: %v\n", err)
		return nil, apperrors.NewConfigError("invalid .env file: %v", err)
	}

	programName := "primecalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	logger := logging.NewConsoleLogger(a.ErrWriter, a.Config.LogLevel)
	a.Metrics = metrics.New()
	controller := a.newController(logger)

	var code int
	switch {
	case a.Config.TUI:
		code = a.runTUI(ctx, controller)
	case a.Config.REPL:
		code = a.runREPL(ctx, controller, out)
	default:
		code = a.runCalculate(ctx, controller, logger, out)
	}

	if a.Config.Metrics {
		if err := a.Metrics.WriteText(out); err != nil {
			logger.Error("writing metrics", err)
		}
	}
	return code
}

func (a *Application) newController(logger logging.Logger) *orchestration.Controller {
	opts := []orchestration.Option{
		orchestration.WithLogger(logger),
		orchestration.WithObserver(a.Metrics),
	}
	if a.Config.Workers > 0 {
		opts = append(opts, orchestration.WithWorkers(a.Config.Workers))
	}
	return orchestration.NewController(append(opts, a.controllerOpts...)...)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI dashboard. The timeout does not apply
// here; the session lasts until the user quits or a signal arrives.
func (a *Application) runTUI(ctx context.Context, controller *orchestration.Controller) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, controller, a.Config, Version)
}

// runREPL launches the interactive command loop.
func (a *Application) runREPL(ctx context.Context, controller *orchestration.Controller, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	repl := cli.NewREPL(controller, cli.REPLConfig{
		Timeout: a.Config.Timeout,
		Columns: a.Config.Columns,
	})
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
