// Package report renders a YAML summary of a clustering run.
package report

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-netclop/pkg/partition"
	"github.com/dd0wney/cluso-netclop/pkg/sigclu"
)

// Summary is the serialized run report
type Summary struct {
	RunID    string          `yaml:"run_id,omitempty"`
	Scheme   string          `yaml:"scheme"`
	Seed     int64           `yaml:"seed"`
	Digest   string          `yaml:"digest,omitempty"`
	Duration string          `yaml:"duration"`
	Config   sigclu.Config   `yaml:"config"`
	Ensemble EnsembleSummary `yaml:"ensemble"`
	Totals   Totals          `yaml:"totals"`
	Modules  []Module        `yaml:"modules"`
}

// EnsembleSummary describes the bootstrap replicates
type EnsembleSummary struct {
	Replicates  int     `yaml:"replicates"`
	MeanModules float64 `yaml:"mean_modules"`
	StdModules  float64 `yaml:"std_modules"`
	MeanNodes   float64 `yaml:"mean_nodes"`
	StdNodes    float64 `yaml:"std_nodes"`
}

// Totals aggregates over modules
type Totals struct {
	Modules   int     `yaml:"modules"`
	Nodes     int     `yaml:"nodes"`
	Cores     int     `yaml:"cores"`
	CoreNodes int     `yaml:"core_nodes"`
	Coverage  float64 `yaml:"coverage"`
}

// Module summarizes one reference module
type Module struct {
	Module      int       `yaml:"module"`
	Size        int       `yaml:"size"`
	CoreSizes   []int     `yaml:"core_sizes,flow"`
	Stabilities []float64 `yaml:"stabilities,flow"`
}

// Options carries run metadata that is not part of the result
type Options struct {
	RunID    string
	Scheme   string
	Digest   string
	Config   sigclu.Config
	Ensemble sigclu.Ensemble
}

// Build assembles the summary of result
func Build(result *sigclu.Result, opts Options) *Summary {
	stats := partition.Summarize(opts.Ensemble)
	s := &Summary{
		RunID:    opts.RunID,
		Scheme:   opts.Scheme,
		Seed:     result.Seed,
		Digest:   opts.Digest,
		Duration: result.Duration.String(),
		Config:   opts.Config,
		Ensemble: EnsembleSummary{
			Replicates:  result.Replicates,
			MeanModules: stats.MeanModules,
			StdModules:  stats.StdModules,
			MeanNodes:   stats.MeanNodes,
			StdNodes:    stats.StdNodes,
		},
		Totals: Totals{
			Modules:   len(result.Modules),
			Nodes:     result.NodeCount(),
			Cores:     result.CoreCount(),
			CoreNodes: result.CoreNodes(),
		},
	}
	if s.Totals.Nodes > 0 {
		s.Totals.Coverage = float64(s.Totals.CoreNodes) / float64(s.Totals.Nodes)
	}

	for _, m := range result.Modules {
		stab := m.Stability
		if stab == nil {
			stab = []float64{}
		}
		s.Modules = append(s.Modules, Module{
			Module:      m.Index + 1,
			Size:        m.Module.Len(),
			CoreSizes:   m.Cores.Sizes(),
			Stabilities: stab,
		})
	}
	return s
}

// Write encodes s as YAML
func Write(w io.Writer, s *Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

// WriteFile writes the YAML report to path
func WriteFile(path string, s *Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
