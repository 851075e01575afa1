package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Annealing run outcomes
const (
	OutcomeSignificant = "significant"
	OutcomeRejected    = "rejected"
)

// RecordAnnealRun records one annealing run of the restart wrapper
func (r *Registry) RecordAnnealRun(significant bool, sweeps, proposals, accepted int) {
	outcome := OutcomeRejected
	if significant {
		outcome = OutcomeSignificant
	}
	r.AnnealRunsTotal.WithLabelValues(outcome).Inc()
	r.AnnealSweeps.Observe(float64(sweeps))
	if proposals > 0 {
		r.AnnealAcceptanceRatio.Observe(float64(accepted) / float64(proposals))
	}
}

// AddScoreEvaluations adds n candidate evaluations
func (r *Registry) AddScoreEvaluations(n int) {
	r.ScoreEvaluationsTotal.Add(float64(n))
}

// RecordCore records an extracted core
func (r *Registry) RecordCore(size int, stability float64) {
	r.CoresExtractedTotal.Inc()
	r.CoreSize.Observe(float64(size))
	r.CoreStability.Observe(stability)
}

// RecordModule records a finished module
func (r *Registry) RecordModule(duration time.Duration) {
	r.ModulesProcessedTotal.Inc()
	r.ModuleDuration.Observe(duration.Seconds())
}

// RecordRun records a finished run
func (r *Registry) RecordRun(status string, replicates int, duration time.Duration) {
	r.RunsTotal.WithLabelValues(status).Inc()
	r.RunDuration.Observe(duration.Seconds())
	r.RunReplicates.Set(float64(replicates))
}

// WriteTextfile writes every metric in the text exposition format to path
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
