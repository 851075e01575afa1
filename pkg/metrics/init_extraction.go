package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initExtractionMetrics() {
	r.ModulesProcessedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "netclop_modules_processed_total",
			Help: "Total number of reference modules passed through core extraction",
		},
	)

	r.CoresExtractedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "netclop_cores_extracted_total",
			Help: "Total number of significant cores extracted",
		},
	)

	r.CoreSize = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netclop_core_size_nodes",
			Help:    "Number of nodes per extracted core",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	r.CoreStability = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netclop_core_stability",
			Help:    "Fraction of bootstrap replicates that keep an extracted core together",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	r.ModuleDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netclop_module_duration_seconds",
			Help:    "Core extraction duration per module in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 60},
		},
	)
}
