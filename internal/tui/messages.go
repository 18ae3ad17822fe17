package tui

import (
	"time"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/orchestration"
)

// Every job-related message carries the generation of the job it belongs to.
// The model ignores messages older than the job it is showing.

// JobStartedMsg reports that the controller accepted a new job.
type JobStartedMsg struct {
	Info orchestration.JobInfo
	run  *orchestration.Run
}

// PrimeBatchMsg carries primes streamed by the reporter since the last batch.
type PrimeBatchMsg struct {
	Generation uint64
	Values     []int64
}

// JobFinishedMsg reports the terminal outcome of a job.
type JobFinishedMsg struct {
	Generation uint64
	Result     orchestration.Result
	Err        error
}

// InputErrorMsg reports a request the controller refused to start.
type InputErrorMsg struct {
	Err error
}

// TickMsg drives the periodic header refresh.
type TickMsg time.Time

// SysStatsMsg carries a system-wide CPU/memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
