package metrics

import "github.com/prometheus/client_golang/prometheus"

// CartMetrics records cart store loads and mutations.
type CartMetrics struct {
	loads     *prometheus.CounterVec
	mutations *prometheus.CounterVec
}

func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_store_loads_total",
		Help: "Cart stores opened, by seed outcome (found, empty, corrupt).",
	}, []string{"outcome"})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Add-to-cart requests by result (applied, rejected, failed).",
	}, []string{"result"})
	reg.MustRegister(loads, mutations)
	return &CartMetrics{loads: loads, mutations: mutations}
}

func (m *CartMetrics) ObserveCartLoad(outcome string) {
	if m == nil || m.loads == nil {
		return
	}
	m.loads.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *CartMetrics) ObserveCartMutation(result string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(result)).Inc()
}
