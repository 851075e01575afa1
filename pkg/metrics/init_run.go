package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRunMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netclop_runs_total",
			Help: "Total number of significance-clustering runs by status",
		},
		[]string{"status"},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netclop_run_duration_seconds",
			Help:    "Wall-clock duration of a full significance-clustering run",
			Buckets: []float64{0.1, 1, 5, 10, 30, 60, 300, 900},
		},
	)

	r.RunReplicates = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netclop_run_replicates",
			Help: "Number of bootstrap replicates in the most recent run",
		},
	)
}
