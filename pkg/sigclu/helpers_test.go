package sigclu

import (
	"fmt"
	"math/rand"
	"strings"
)

// set builds a node set from single-letter node names, e.g. set("ABC")
func set(letters string) NodeSet {
	s := NewNodeSet()
	for _, r := range letters {
		s.Add(Node(string(r)))
	}
	return s
}

// part builds a partition from groups of single-letter node names
func part(groups ...string) Partition {
	p := make(Partition, len(groups))
	for i, g := range groups {
		p[i] = set(g)
	}
	return p
}

func repeat(p Partition, n int) Ensemble {
	e := make(Ensemble, n)
	for i := range e {
		e[i] = p
	}
	return e
}

// scenarioEnsemble has eight replicates that agree on {A,B,C} and two that
// split it
func scenarioEnsemble() Ensemble {
	e := repeat(part("ABC", "D"), 8)
	return append(e, repeat(part("A", "BC", "D"), 2)...)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SignificanceLevel = 0.8
	cfg.MaxInnerIterations = 200
	cfg.OuterIterations = 20
	cfg.MinCoreSize = 2
	return cfg
}

// randomEnsemble draws replicates over nodes n0..n{nodes-1}; each node is
// dropped with probability 0.1 and otherwise placed in one of three modules
func randomEnsemble(seed int64, nodes, replicates int) (NodeSet, Ensemble) {
	rng := rand.New(rand.NewSource(seed))
	universe := NewNodeSet()
	for i := 0; i < nodes; i++ {
		universe.Add(Node(fmt.Sprintf("n%d", i)))
	}
	ordered := universe.Sorted()

	ensemble := make(Ensemble, replicates)
	for r := range ensemble {
		modules := Partition{NewNodeSet(), NewNodeSet(), NewNodeSet()}
		for _, n := range ordered {
			if rng.Float64() < 0.1 {
				continue
			}
			modules[rng.Intn(len(modules))].Add(n)
		}
		ensemble[r] = modules
	}
	return universe, ensemble
}

func randomSubset(seed int64, universe NodeSet) NodeSet {
	rng := rand.New(rand.NewSource(seed))
	s := NewNodeSet()
	for _, n := range universe.Sorted() {
		if rng.Intn(2) == 0 {
			s.Add(n)
		}
	}
	return s
}

func coresString(c CoreSet) string {
	parts := make([]string, len(c))
	for i, core := range c {
		parts[i] = core.String()
	}
	return strings.Join(parts, ",")
}
