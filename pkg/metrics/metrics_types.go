package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Engine metrics
	ScoreEvaluationsTotal prometheus.Counter
	AnnealRunsTotal       *prometheus.CounterVec
	AnnealSweeps          prometheus.Histogram
	AnnealAcceptanceRatio prometheus.Histogram

	// Extraction metrics
	ModulesProcessedTotal prometheus.Counter
	CoresExtractedTotal   prometheus.Counter
	CoreSize              prometheus.Histogram
	CoreStability         prometheus.Histogram
	ModuleDuration        prometheus.Histogram

	// Run metrics
	RunsTotal     *prometheus.CounterVec
	RunDuration   prometheus.Histogram
	RunReplicates prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initEngineMetrics()
	r.initExtractionMetrics()
	r.initRunMetrics()

	return r
}
