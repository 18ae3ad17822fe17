package cli

import (
	"time"

	"github.com/briandowns/spinner"
)

const (
	// ProgressRefreshRate is how often the progress line is redrawn.
	ProgressRefreshRate = 200 * time.Millisecond
	// DisplayLimit caps how many primes the grid prints before it is cut
	// down to its head and tail. Verbose output is never cut.
	DisplayLimit = 200
	// DisplayEdges is the number of primes kept at each end of a cut grid.
	DisplayEdges = 50
)

// Spinner is the progress line drawn while a search runs.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type terminalSpinner struct {
	*spinner.Spinner
}

// UpdateSuffix takes the spinner's lock; its animation goroutine reads Suffix
// on every frame.
func (t terminalSpinner) UpdateSuffix(suffix string) {
	t.Lock()
	defer t.Unlock()
	t.Suffix = suffix
}

// newSpinner is swapped out by tests.
var newSpinner = func(opts ...spinner.Option) Spinner {
	opts = append([]spinner.Option{spinner.WithHiddenCursor(true)}, opts...)
	return terminalSpinner{spinner.New(spinner.CharSets[14], ProgressRefreshRate/2, opts...)}
}
