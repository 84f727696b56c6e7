package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuotationMetrics records quotation document exports.
type QuotationMetrics struct {
	exports  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewQuotationMetrics registers the quotation metrics on the provided registerer.
func NewQuotationMetrics(reg prometheus.Registerer) *QuotationMetrics {
	if reg == nil {
		return &QuotationMetrics{}
	}
	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotation_exports_total",
		Help: "Quotation exports by format and result.",
	}, []string{"format", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quotation_export_duration_seconds",
		Help:    "Duration of quotation exports in seconds.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"format"})
	reg.MustRegister(exports, duration)
	return &QuotationMetrics{exports: exports, duration: duration}
}

// ObserveExport records one export attempt.
func (m *QuotationMetrics) ObserveExport(format string, elapsed time.Duration, err error) {
	if m == nil || m.exports == nil {
		return
	}
	format = normalizeLabel(format)
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.exports.WithLabelValues(format, result).Inc()
	m.duration.WithLabelValues(format).Observe(elapsed.Seconds())
}
