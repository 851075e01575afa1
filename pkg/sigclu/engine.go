package sigclu

import (
	"math/rand"

	"github.com/dd0wney/cluso-netclop/pkg/logging"
	"github.com/dd0wney/cluso-netclop/pkg/metrics"
)

// Engine finds significant cores of node sets against a fixed bootstrap
// ensemble. An Engine owns its random stream and is not safe for concurrent
// use.
type Engine struct {
	cfg      Config
	ensemble Ensemble
	rng      *rand.Rand
	logger   logging.Logger
	metrics  *metrics.Registry
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records engine activity in registry
func WithMetrics(registry *metrics.Registry) Option {
	return func(e *Engine) {
		e.metrics = registry
	}
}

// WithSeed replaces the random stream with one seeded by seed
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = newRand(seed)
	}
}

// New validates cfg and ensemble and returns an engine seeded with cfg.Seed
func New(cfg Config, ensemble Ensemble, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, wrapError("New", -1, ErrConfiguration, err)
	}
	if err := ensemble.Validate(); err != nil {
		return nil, wrapError("New", -1, kindOf(err), err)
	}
	return newEngine(cfg, ensemble, opts...), nil
}

func newEngine(cfg Config, ensemble Ensemble, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		ensemble: ensemble,
		rng:      newRand(cfg.Seed),
		logger:   logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Score evaluates candidate with the penalty weighting of universe
func (e *Engine) Score(candidate, universe NodeSet) (Score, error) {
	return EvaluateScore(candidate, e.ensemble, e.cfg.PenWeight*float64(universe.Len()), e.cfg)
}

// FindCore returns the largest zero-penalty subset of universe found over
// OuterIterations annealing runs, or an empty set when no run ends without
// penalty. Universes of at most one node are returned as they are.
func (e *Engine) FindCore(universe NodeSet) NodeSet {
	if universe.Len() <= 1 {
		return universe.Clone()
	}

	p := newProblem(universe, e.ensemble, e.cfg)
	defer func() {
		if e.metrics != nil {
			e.metrics.AddScoreEvaluations(p.evaluations)
		}
	}()

	if p.score(p.full()).Penalty == 0 {
		e.logger.Debug("universe is significant as a whole", logging.ModuleSize(universe.Len()))
		return universe.Clone()
	}

	var (
		best      NodeSet
		bestScore Score
	)
	for restart := 0; restart < e.cfg.OuterIterations; restart++ {
		state, score, stats := e.anneal(p)
		significant := score.Significant()
		if e.metrics != nil {
			e.metrics.RecordAnnealRun(significant, stats.Sweeps, stats.Proposals, stats.Accepted)
		}
		e.logger.Debug("annealing run finished",
			logging.Int("restart", restart),
			logging.Int("sweeps", stats.Sweeps),
			logging.Int("accepted", stats.Accepted),
			logging.CoreSize(score.Size),
			logging.Float64("penalty", score.Penalty))

		if significant && (best == nil || score.Value() > bestScore.Value()) {
			best, bestScore = p.nodes(state), score
		}
	}

	if best == nil {
		return NewNodeSet()
	}
	return best
}

// ExtractCores peels significant cores off universe until the next core is
// smaller than MinCoreSize. Cores are disjoint subsets of universe ordered by
// descending size.
func (e *Engine) ExtractCores(universe NodeSet) CoreSet {
	cores := CoreSet{}
	pool := universe.Clone()
	for pool.Len() > 0 {
		core := e.FindCore(pool)
		if core.Len() < e.cfg.MinCoreSize || core.Len() == 0 {
			break
		}
		cores = append(cores, core)
		pool = pool.Difference(core)
	}
	sortCores(cores)
	return cores
}

func kindOf(err error) error {
	if IsConfiguration(err) {
		return ErrConfiguration
	}
	return ErrInputInconsistency
}
