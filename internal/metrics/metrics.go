package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/esteban505r/MultithreadPrimeCalculator/internal/orchestration"
)

const namespace = "primecalc"

// Metrics records job lifecycle events. It implements
// orchestration.JobObserver and is safe for concurrent use.
type Metrics struct {
	registry *prometheus.Registry

	jobsStarted   *prometheus.CounterVec
	jobsFinished  *prometheus.CounterVec
	primesFound   *prometheus.CounterVec
	jobDuration   *prometheus.HistogramVec
	activeWorkers prometheus.Gauge
	lastGen       prometheus.Gauge
}

var _ orchestration.JobObserver = (*Metrics)(nil)

// New creates a Metrics backed by its own registry, so repeated construction
// in tests never collides with the global default registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		jobsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_started_total",
			Help:      "Number of prime search jobs started.",
		}, []string{"mode"}),
		jobsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_finished_total",
			Help:      "Number of prime search jobs that reached a terminal state.",
		}, []string{"mode", "outcome"}),
		primesFound: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "primes_found_total",
			Help:      "Number of primes reported by workers, including discarded jobs.",
		}, []string{"mode"}),
		jobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Wall-clock duration of completed jobs.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"mode"}),
		activeWorkers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_workers",
			Help:      "Workers belonging to the live job.",
		}),
		lastGen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_generation",
			Help:      "Generation number of the most recently started job.",
		}),
	}
}

// JobStarted implements orchestration.JobObserver.
func (m *Metrics) JobStarted(job orchestration.JobInfo) {
	m.jobsStarted.WithLabelValues(string(job.Mode)).Inc()
	m.activeWorkers.Set(float64(len(job.Ranges)))
	m.lastGen.Set(float64(job.Generation))
}

// PrimeFound implements orchestration.JobObserver.
func (m *Metrics) PrimeFound(job orchestration.JobInfo) {
	m.primesFound.WithLabelValues(string(job.Mode)).Inc()
}

// JobFinished implements orchestration.JobObserver.
func (m *Metrics) JobFinished(job orchestration.JobInfo, outcome orchestration.Outcome, elapsed time.Duration) {
	m.jobsFinished.WithLabelValues(string(job.Mode), string(outcome)).Inc()
	m.activeWorkers.Set(0)
	if outcome == orchestration.OutcomeCompleted {
		m.jobDuration.WithLabelValues(string(job.Mode)).Observe(elapsed.Seconds())
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteText writes every collected metric family to w in the Prometheus text
// exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
