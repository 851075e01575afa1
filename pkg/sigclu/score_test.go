package sigclu

import (
	"testing"
)

func TestPenaltyCount(t *testing.T) {
	tests := []struct {
		replicates int
		sig        float64
		want       int
	}{
		{10, 0.8, 2},
		{10, 0.95, 0},
		{100, 0.95, 5},
		{1000, 0.95, 50},
		{20, 0.9, 2},
		{1, 0.5, 0},
	}

	for _, tt := range tests {
		if got := PenaltyCount(tt.replicates, tt.sig); got != tt.want {
			t.Errorf("PenaltyCount(%d, %g) = %d, want %d", tt.replicates, tt.sig, got, tt.want)
		}
	}
}

func TestTrimCount(t *testing.T) {
	tests := []struct {
		name       string
		replicates int
		sig        float64
		trim       string
		want       int
	}{
		{"below quantile", 10, 0.8, TrimBelowQuantile, 1},
		{"at quantile", 10, 0.8, TrimAtQuantile, 2},
		{"clamped at zero", 10, 0.95, TrimBelowQuantile, 0},
		{"empty trim means below quantile", 100, 0.95, "", 4},
		{"low significance", 3, 0.01, TrimAtQuantile, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimCount(tt.replicates, tt.sig, tt.trim); got != tt.want {
				t.Errorf("TrimCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMismatch(t *testing.T) {
	tests := []struct {
		name      string
		candidate NodeSet
		replicate Partition
		want      int
	}{
		{"contained", set("AB"), part("ABC", "D"), 0},
		{"split", set("ABC"), part("A", "BC", "D"), 1},
		{"no overlap", set("XY"), part("ABC"), 2},
		{"empty replicate", set("AB"), Partition{}, 2},
		{"empty candidate", NewNodeSet(), part("AB"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mismatch(tt.candidate, tt.replicate); got != tt.want {
				t.Errorf("Mismatch = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEvaluateScore(t *testing.T) {
	cfg := testConfig()
	ensemble := scenarioEnsemble()

	tests := []struct {
		name      string
		candidate NodeSet
		size      int
		penalty   float64
	}{
		{"agreeing core", set("ABC"), 3, 0},
		{"whole module", set("ABCD"), 4, 4},
		{"straddling pair", set("AD"), 2, 4},
		{"empty", NewNodeSet(), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateScore(tt.candidate, ensemble, 4, cfg)
			if err != nil {
				t.Fatalf("EvaluateScore: %v", err)
			}
			if got.Size != tt.size || got.Penalty != tt.penalty {
				t.Errorf("EvaluateScore = %+v, want {Size:%d Penalty:%g}", got, tt.size, tt.penalty)
			}
		})
	}
}

func TestEvaluateScore_EmptyEnsemble(t *testing.T) {
	_, err := EvaluateScore(set("AB"), Ensemble{}, 1, DefaultConfig())
	if !IsConfiguration(err) {
		t.Errorf("got %v, want ErrConfiguration", err)
	}
}

func TestEvaluateScore_DoesNotMutateInputs(t *testing.T) {
	candidate := set("ABC")
	ensemble := scenarioEnsemble()

	if _, err := EvaluateScore(candidate, ensemble, 4, testConfig()); err != nil {
		t.Fatal(err)
	}
	if !candidate.Equal(set("ABC")) {
		t.Errorf("candidate changed to %v", candidate)
	}
	if !ensemble[9][1].Equal(set("BC")) {
		t.Errorf("ensemble changed: %v", ensemble[9][1])
	}
}

func TestProblemScoreMatchesSetScore(t *testing.T) {
	cfg := testConfig()
	for seed := int64(1); seed <= 30; seed++ {
		universe, ensemble := randomEnsemble(seed, 10, 12)
		p := newProblem(universe, ensemble, cfg)

		for c := int64(0); c < 10; c++ {
			candidate := randomSubset(seed*100+c, universe)
			state := p.full()
			state.ClearAll()
			for i, n := range p.universe {
				if candidate.Contains(n) {
					state.Set(uint(i))
				}
			}

			want, err := EvaluateScore(candidate, ensemble, cfg.PenWeight*float64(universe.Len()), cfg)
			if err != nil {
				t.Fatal(err)
			}
			if got := p.score(state); got != want {
				t.Fatalf("seed %d candidate %v: indexed %+v, set-based %+v", seed, candidate, got, want)
			}
			if got := p.nodes(state); !got.Equal(candidate) {
				t.Fatalf("nodes() = %v, want %v", got, candidate)
			}
		}
	}
}

func TestProblem_IgnoresNodesOutsideUniverse(t *testing.T) {
	ensemble := Ensemble{part("ABX", "CY"), part("AZ", "BC")}
	p := newProblem(set("ABC"), ensemble, testConfig())

	if got := len(p.replicates[0]); got != 2 {
		t.Errorf("replicate 0 has %d indexed modules, want 2", got)
	}
	if p.evaluations != 0 {
		t.Errorf("evaluations = %d before scoring", p.evaluations)
	}
	p.score(p.full())
	if p.evaluations != 1 {
		t.Errorf("evaluations = %d, want 1", p.evaluations)
	}
}
