package metrics

import "github.com/prometheus/client_golang/prometheus"

// Agentic search Prometheus metrics.
var (
	searchIterations = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wicara",
			Name:      "search_iterations",
			Help:      "Number of agent iterations per search run",
			Buckets:   []float64{1, 2, 3, 4, 5},
		},
	)

	searchConfidenceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wicara",
			Name:      "search_confidence_total",
			Help:      "Search runs by final confidence level",
		},
		[]string{"confidence"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(searchIterations)
	prometheus.MustRegister(searchConfidenceTotal)
	searchMetricsRegistered = true
}

// ObserveSearch records the outcome of one agent search run.
// Safe to call before registration; unregistered metrics simply stay local.
func ObserveSearch(iterations int, confidence string) {
	searchIterations.Observe(float64(iterations))
	searchConfidenceTotal.WithLabelValues(confidence).Inc()
}
