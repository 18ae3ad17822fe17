package main

import (
	"context"
	"os"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/app"
	apperrors "github.com/esteban505r/MultithreadPrimeCalculator/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.HandleCalculationError(err, 0, os.Stderr, nil))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
