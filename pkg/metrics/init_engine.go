package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEngineMetrics() {
	r.ScoreEvaluationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "netclop_score_evaluations_total",
			Help: "Total number of candidate scores computed against the bootstrap ensemble",
		},
	)

	r.AnnealRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netclop_anneal_runs_total",
			Help: "Total number of simulated-annealing runs by outcome",
		},
		[]string{"outcome"},
	)

	r.AnnealSweeps = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netclop_anneal_sweeps",
			Help:    "Number of temperature sweeps performed per annealing run",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	r.AnnealAcceptanceRatio = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netclop_anneal_acceptance_ratio",
			Help:    "Fraction of flip proposals accepted per annealing run",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)
}
