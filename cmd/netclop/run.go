package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-netclop/pkg/config"
	"github.com/dd0wney/cluso-netclop/pkg/logging"
	"github.com/dd0wney/cluso-netclop/pkg/metrics"
	"github.com/dd0wney/cluso-netclop/pkg/partition"
	"github.com/dd0wney/cluso-netclop/pkg/report"
	"github.com/dd0wney/cluso-netclop/pkg/sigclu"
	"github.com/dd0wney/cluso-netclop/pkg/store"
	"github.com/dd0wney/cluso-netclop/pkg/validation"
)

type runFlags struct {
	scheme     string
	seed       int64
	sig        float64
	coolRate   float64
	minCore    int
	workers    int
	output     string
	report     string
	db         string
	metricsOut string
}

func newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run [REFERENCE] ENSEMBLE_DIR",
		Short: "Extract significant cores from every module",
		Long: `Extract significant cores from every module of a reference partition.

REFERENCE is a partition file of "node,module[,flow]" rows. ENSEMBLE_DIR holds
one such file per bootstrap replicate. With --scheme recursive the reference is
omitted and all ensemble nodes form a single module.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, &f)
			if err != nil {
				return err
			}
			return runClustering(cmd, settings, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.scheme, "scheme", config.SchemeStandard, "Reference scheme (standard, recursive)")
	flags.Int64Var(&f.seed, "seed", 0, "Random seed")
	flags.Float64Var(&f.sig, "sig", 0, "Significance level in (0, 1)")
	flags.Float64Var(&f.coolRate, "cool-rate", 0, "Annealing cooling rate in (0, 1)")
	flags.IntVar(&f.minCore, "min-core", 0, "Minimum core size")
	flags.IntVar(&f.workers, "workers", 0, "Modules processed concurrently (0 = one per CPU)")
	flags.StringVar(&f.output, "output", "", "Node table CSV output path")
	flags.StringVar(&f.report, "report", "", "YAML report output path")
	flags.StringVar(&f.db, "db", "", "SQLite results database")
	flags.StringVar(&f.metricsOut, "metrics-out", "", "Prometheus textfile output path")
	return cmd
}

// loadSettings layers changed flags over the config file and environment
func loadSettings(cmd *cobra.Command, f *runFlags) (*config.Settings, error) {
	s, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("scheme") {
		s.Scheme = f.scheme
	}
	if changed("seed") {
		s.SigClu.Seed = f.seed
	}
	if changed("sig") {
		s.SigClu.SignificanceLevel = f.sig
	}
	if changed("cool-rate") {
		s.SigClu.CoolRate = f.coolRate
	}
	if changed("min-core") {
		s.SigClu.MinCoreSize = f.minCore
	}
	if changed("workers") {
		s.Workers = f.workers
	}
	if changed("output") {
		s.Output = f.output
	}
	if changed("report") {
		s.Report = f.report
	}
	if changed("db") {
		s.Database = f.db
	}
	if changed("metrics-out") {
		s.MetricsOut = f.metricsOut
	}
	if logLevel != "" {
		s.LogLevel = logLevel
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func readInputs(scheme string, args []string) (sigclu.Partition, sigclu.Ensemble, error) {
	switch scheme {
	case config.SchemeRecursive:
		if len(args) != 1 {
			return nil, nil, fmt.Errorf("recursive scheme takes ENSEMBLE_DIR only, got %d arguments", len(args))
		}
		ensemble, err := partition.ReadEnsemble(args[0])
		if err != nil {
			return nil, nil, err
		}
		return sigclu.RecursiveReference(ensemble), ensemble, nil
	default:
		if len(args) != 2 {
			return nil, nil, fmt.Errorf("standard scheme takes REFERENCE and ENSEMBLE_DIR, got %d arguments", len(args))
		}
		reference, err := partition.ReadPartition(args[0])
		if err != nil {
			return nil, nil, err
		}
		ensemble, err := partition.ReadEnsemble(args[1])
		if err != nil {
			return nil, nil, err
		}
		return reference, ensemble, nil
	}
}

func runClustering(cmd *cobra.Command, s *config.Settings, args []string) error {
	var logger logging.Logger = logging.NewJSONLogger(cmd.ErrOrStderr(), logging.ParseLevel(s.LogLevel))
	logging.SetDefaultLogger(logger)
	out := newPrinter(cmd.OutOrStdout(), noColor)

	reference, ensemble, err := readInputs(s.Scheme, args)
	if err != nil {
		return err
	}

	runID := store.NewRunID()
	digest := partition.Digest(reference, ensemble)
	logger = logger.With(logging.RunID(runID))

	workers := validation.DefaultOrInt(s.Workers, runtime.NumCPU())

	stats := partition.Summarize(ensemble)
	out.header("netclop significance clustering")
	out.info("Run", "%s", runID)
	out.info("Scheme", "%s", s.Scheme)
	out.info("Reference modules", "%d (%d nodes)", len(reference), reference.Nodes().Len())
	out.info("Replicates", "%d", stats.Replicates)
	out.info("Modules per replicate", "%s", meanStd(stats.MeanModules, stats.StdModules))
	out.info("Nodes per replicate", "%s", meanStd(stats.MeanNodes, stats.StdNodes))
	out.info("Significance", "%g", s.SigClu.SignificanceLevel)
	out.info("Seed", "%d", s.SigClu.Seed)

	registry := metrics.NewRegistry()
	done := 0
	out.section("Modules")
	runner, err := sigclu.NewRunner(s.SigClu,
		sigclu.WithWorkers(workers),
		sigclu.WithRunLogger(logger),
		sigclu.WithRunMetrics(registry),
		sigclu.WithProgress(func(m sigclu.ModuleResult) {
			done++
			out.progress(done, len(reference), fmt.Sprintf("module %d: core found: %d/%d nodes",
				m.Index+1, m.CoreNodes(), m.Module.Len()))
		}))
	if err != nil {
		return err
	}

	op := logging.StartTimer(logger, "run finished", logging.Count(len(reference)))
	result, err := runner.Run(reference, ensemble)
	if err != nil {
		op.EndError(err)
		return err
	}
	op.End(logging.Int("cores", result.CoreCount()))

	out.section("Cores")
	for _, m := range result.Modules {
		if len(m.Cores) == 0 {
			continue
		}
		out.info(fmt.Sprintf("Module %d", m.Index+1), "sizes [%s]", joinInts(m.Cores.Sizes()))
	}
	out.info("Total", "%d cores, %d/%d nodes", result.CoreCount(), result.CoreNodes(), result.NodeCount())

	if err := writeOutputs(s, runID, digest, result, ensemble, registry, logger); err != nil {
		return err
	}

	out.success(fmt.Sprintf("Finished in %s", result.Duration.Round(time.Millisecond)))
	if result.CoreCount() == 0 {
		out.warn("No significant cores found")
	}
	return nil
}

func writeOutputs(s *config.Settings, runID, digest string, result *sigclu.Result,
	ensemble sigclu.Ensemble, registry *metrics.Registry, logger logging.Logger) error {
	if s.Output != "" {
		if err := partition.WriteNodeTable(s.Output, result); err != nil {
			return err
		}
		logger.Info("node table written", logging.Path(s.Output))
	}

	if s.Report != "" {
		summary := report.Build(result, report.Options{
			RunID:    runID,
			Scheme:   s.Scheme,
			Digest:   digest,
			Config:   s.SigClu,
			Ensemble: ensemble,
		})
		if err := report.WriteFile(s.Report, summary); err != nil {
			return err
		}
		logger.Info("report written", logging.Path(s.Report))
	}

	if s.Database != "" {
		db, err := store.Open(s.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := db.SaveRun(ctx, store.NewRun(runID, result, s.SigClu, s.Scheme, digest)); err != nil {
			return err
		}
	}

	if s.MetricsOut != "" {
		if err := registry.WriteTextfile(s.MetricsOut); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
