package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-netclop/pkg/sigclu"
)

func sampleResult() *sigclu.Result {
	return &sigclu.Result{
		Seed:       42,
		Replicates: 2,
		Duration:   1500 * time.Millisecond,
		Modules: []sigclu.ModuleResult{
			{
				Index:     0,
				Module:    sigclu.NewNodeSet("a", "b", "c", "d"),
				Cores:     sigclu.CoreSet{sigclu.NewNodeSet("a", "b", "c")},
				Stability: []float64{0.5},
			},
			{Index: 1, Module: sigclu.NewNodeSet("e", "f", "g", "h")},
		},
	}
}

func sampleEnsemble() sigclu.Ensemble {
	return sigclu.Ensemble{
		{sigclu.NewNodeSet("a", "b", "c"), sigclu.NewNodeSet("d")},
		{sigclu.NewNodeSet("a"), sigclu.NewNodeSet("b", "c"), sigclu.NewNodeSet("d", "e")},
	}
}

func TestBuild(t *testing.T) {
	s := Build(sampleResult(), Options{
		RunID:    "r1",
		Scheme:   "standard",
		Digest:   "abc",
		Config:   sigclu.DefaultConfig(),
		Ensemble: sampleEnsemble(),
	})

	assert.Equal(t, "r1", s.RunID)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, "1.5s", s.Duration)
	assert.Equal(t, Totals{Modules: 2, Nodes: 8, Cores: 1, CoreNodes: 3, Coverage: 0.375}, s.Totals)
	assert.Equal(t, 2, s.Ensemble.Replicates)
	assert.InDelta(t, 2.5, s.Ensemble.MeanModules, 1e-12)
	assert.InDelta(t, 0.5, s.Ensemble.StdModules, 1e-12)

	require.Len(t, s.Modules, 2)
	assert.Equal(t, Module{Module: 1, Size: 4, CoreSizes: []int{3}, Stabilities: []float64{0.5}}, s.Modules[0])
	assert.Equal(t, Module{Module: 2, Size: 4, CoreSizes: []int{}, Stabilities: []float64{}}, s.Modules[1])
}

func TestWrite(t *testing.T) {
	s := Build(sampleResult(), Options{Scheme: "standard", Config: sigclu.DefaultConfig(), Ensemble: sampleEnsemble()})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))

	out := buf.String()
	assert.Contains(t, out, "scheme: standard")
	assert.Contains(t, out, "core_sizes: [3]")
	assert.Contains(t, out, "significance_level: 0.95")
	assert.NotContains(t, out, "run_id", "empty run id is omitted")

	var decoded Summary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, s.Totals, decoded.Totals)
	assert.Equal(t, s.Config, decoded.Config)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, WriteFile(path, Build(sampleResult(), Options{Ensemble: sampleEnsemble()})))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "seed: 42")
}
