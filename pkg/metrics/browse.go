package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BrowseMetrics records filter-sort runs by outcome.
type BrowseMetrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewBrowseMetrics registers the browse metrics on the provided registerer.
func NewBrowseMetrics(reg prometheus.Registerer) *BrowseMetrics {
	if reg == nil {
		return &BrowseMetrics{}
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "browse_runs_total",
		Help: "Filter-sort runs by outcome (applied, stale, failed).",
	}, []string{"outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "browse_run_duration_seconds",
		Help:    "Time from submission to settle for filter-sort runs.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	reg.MustRegister(runs, duration)
	return &BrowseMetrics{runs: runs, duration: duration}
}

// ObserveBrowse counts a settled run. Zero elapsed means the run never started.
func (m *BrowseMetrics) ObserveBrowse(outcome string, elapsed time.Duration) {
	if m == nil || m.runs == nil {
		return
	}
	outcome = normalizeLabel(outcome)
	m.runs.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	}
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
