package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used to highlight error output.
// A nil provider renders plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleCalculationError reports a failed run on out and maps it to an exit
// code. A nil error maps to ExitSuccess and prints nothing.
//
// Parameters:
//   - err: The error returned by the run.
//   - duration: How long the run took before failing (zero if unknown).
//   - out: The writer for the message.
//   - colors: Optional color provider.
//
// Returns:
//   - int: The exit code matching the error class.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration.Round(time.Millisecond))
	}

	var (
		timeoutErr TimeoutError
		configErr  ConfigError
	)
	switch {
	case errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%sStatus: Timeout%s. The %s.\n", yellow, reset, timeoutErr.Error())
		return ExitErrorTimeout
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sStatus: Timeout%s. The run exceeded its time limit%s.\n", yellow, reset, suffix)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s%s.\n", yellow, reset, suffix)
		return ExitErrorCanceled
	case errors.As(err, &configErr):
		fmt.Fprintf(out, "%sConfiguration error:%s %v\n", red, reset, err)
		return ExitErrorConfig
	default:
		fmt.Fprintf(out, "%sStatus: Failure%s%s: %v\n", red, reset, suffix, err)
		return ExitErrorGeneric
	}
}
