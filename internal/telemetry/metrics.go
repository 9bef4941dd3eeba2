package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the restart/improvement counters and the final-cost
// histogram exposed when the CLI is started with --metrics-addr, grounded
// on noah-isme-sma-adp-api's MetricsService.
type Metrics struct {
	registry          *prometheus.Registry
	handler           http.Handler
	restartsAttempted prometheus.Counter
	restartsImproved  prometheus.Counter
	finalCost         prometheus.Histogram
}

// NewMetrics registers the solve-instrumentation collectors on a fresh
// registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	restartsAttempted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "examsched_restarts_attempted_total",
		Help: "Total number of hill-climbing restarts attempted.",
	})
	restartsImproved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "examsched_restarts_improved_total",
		Help: "Number of restarts whose final solution improved on the running best.",
	})
	finalCost := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "examsched_restart_final_cost",
		Help:    "Distribution of each restart's final cost.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	registry.MustRegister(restartsAttempted, restartsImproved, finalCost)

	return &Metrics{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		restartsAttempted: restartsAttempted,
		restartsImproved:  restartsImproved,
		finalCost:         finalCost,
	}
}

// Handler returns the HTTP handler serving the registered metrics in the
// Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// ObserveRestart records one completed restart's final cost, and whether it
// improved on the best solution seen so far.
func (m *Metrics) ObserveRestart(finalCost float64, improved bool) {
	m.restartsAttempted.Inc()
	m.finalCost.Observe(finalCost)
	if improved {
		m.restartsImproved.Inc()
	}
}
