package sigclu

import (
	"fmt"
	"sync"
	"time"

	"github.com/dd0wney/cluso-netclop/pkg/logging"
	"github.com/dd0wney/cluso-netclop/pkg/metrics"
	"github.com/dd0wney/cluso-netclop/pkg/parallel"
	"github.com/dd0wney/cluso-netclop/pkg/validation"
)

// MaxWorkers bounds the number of modules processed concurrently
const MaxWorkers = 1024

// Run statuses recorded in metrics
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Runner applies an engine to every module of a reference partition
type Runner struct {
	cfg      Config
	workers  int
	logger   logging.Logger
	metrics  *metrics.Registry
	progress func(ModuleResult)
	mu       sync.Mutex
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithWorkers sets the number of modules processed concurrently; 0 means one
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		r.workers = n
	}
}

// WithRunLogger sets the runner logger; engines log through children of it
func WithRunLogger(logger logging.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRunMetrics records run and engine activity in registry
func WithRunMetrics(registry *metrics.Registry) RunnerOption {
	return func(r *Runner) {
		r.metrics = registry
	}
}

// WithProgress registers fn to be called once per finished module. Calls are
// serialized but arrive in completion order.
func WithProgress(fn func(ModuleResult)) RunnerOption {
	return func(r *Runner) {
		r.progress = fn
	}
}

// NewRunner validates cfg and returns a runner
func NewRunner(cfg Config, opts ...RunnerOption) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, wrapError("NewRunner", -1, ErrConfiguration, err)
	}
	r := &Runner{
		cfg:     cfg,
		workers: 1,
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	err := validation.NewConfigValidator("Runner").
		RangeInt("Workers", r.workers, 0, MaxWorkers).
		Validate()
	if err != nil {
		return nil, wrapError("NewRunner", -1, ErrConfiguration, err)
	}
	return r, nil
}

// Run extracts the cores of every reference module. Module j uses a random
// stream seeded with ModuleSeed(cfg.Seed, j), so the result does not depend
// on the worker count.
func (r *Runner) Run(reference Partition, ensemble Ensemble) (result *Result, err error) {
	start := time.Now()
	defer func() {
		if r.metrics == nil {
			return
		}
		status := StatusCompleted
		if err != nil {
			status = StatusFailed
		}
		r.metrics.RecordRun(status, len(ensemble), time.Since(start))
	}()

	if err := ensemble.Validate(); err != nil {
		return nil, wrapError("Run", -1, kindOf(err), err)
	}
	if module, err := reference.check(nil); err != nil {
		return nil, wrapError("Run", module, ErrInputInconsistency, err)
	}

	pool, err := parallel.NewWorkerPool(r.workers, r.logger)
	if err != nil {
		return nil, wrapError("Run", -1, ErrConfiguration, err)
	}

	r.logger.Info("significance clustering started",
		logging.Count(len(reference)),
		logging.Int("replicates", len(ensemble)),
		logging.Int("workers", pool.Workers()),
		logging.Seed(r.cfg.Seed))

	modules := make([]ModuleResult, len(reference))
	for j, module := range reference {
		pool.Submit(func() {
			modules[j] = r.runModule(j, module, ensemble)
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}

	result = &Result{
		Seed:       r.cfg.Seed,
		Replicates: len(ensemble),
		Modules:    modules,
		Duration:   time.Since(start),
	}
	r.logger.Info("significance clustering finished",
		logging.Int("cores", result.CoreCount()),
		logging.Int("core_nodes", result.CoreNodes()),
		logging.Latency(result.Duration))
	return result, nil
}

func (r *Runner) runModule(index int, module NodeSet, ensemble Ensemble) ModuleResult {
	logger := r.logger.With(logging.Module(index))
	engine := newEngine(r.cfg, ensemble,
		WithSeed(ModuleSeed(r.cfg.Seed, index)),
		WithLogger(logger),
		WithMetrics(r.metrics))

	op := logging.StartTimer(logger, "core found", logging.ModuleSize(module.Len()))
	cores := engine.ExtractCores(module)
	stability := make([]float64, len(cores))
	for i, core := range cores {
		stability[i] = Stability(core, ensemble)
	}
	res := ModuleResult{
		Index:     index,
		Module:    module,
		Cores:     cores,
		Stability: stability,
	}
	res.Duration = op.End(logging.Int("core_nodes", res.CoreNodes()), logging.Count(len(cores)))

	if r.metrics != nil {
		for i, core := range cores {
			r.metrics.RecordCore(core.Len(), stability[i])
		}
		r.metrics.RecordModule(res.Duration)
	}
	if r.progress != nil {
		r.mu.Lock()
		r.progress(res)
		r.mu.Unlock()
	}
	return res
}

// RecursiveReference returns a reference partition holding a single module
// made of every node seen in the ensemble
func RecursiveReference(ensemble Ensemble) Partition {
	return Partition{ensemble.Nodes()}
}
