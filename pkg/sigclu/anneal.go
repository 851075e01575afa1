package sigclu

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// AnnealStats summarizes one annealing run
type AnnealStats struct {
	Sweeps    int
	Proposals int
	Accepted  int
}

// anneal runs one simulated annealing search over p. The universe must hold
// at least two nodes.
func (e *Engine) anneal(p *problem) (*bitset.BitSet, Score, AnnealStats) {
	n := p.size()
	var stats AnnealStats

	state := bitset.New(uint(n))
	perm := e.rng.Perm(n)
	for _, i := range perm[:1+e.rng.Intn(n-1)] {
		state.Set(uint(i))
	}
	current := p.score(state)

	temperature := e.cfg.TempInit
	for i := 0; i < e.cfg.MaxInnerIterations; i++ {
		repetitions := int(math.Ceil(float64(n) * math.Pow(e.cfg.DecayRate, float64(i))))
		if repetitions < 1 {
			repetitions = 1
		}

		accepted := 0
		for j := 0; j < repetitions; j++ {
			proposal := state.Clone()
			proposal.Flip(uint(e.rng.Intn(n)))
			score := p.score(proposal)
			stats.Proposals++
			if e.accept(current, score, temperature) {
				state, current = proposal, score
				accepted++
			}
		}
		stats.Sweeps++
		stats.Accepted += accepted

		if accepted == 0 {
			break
		}
		temperature = e.temperature(i)
	}

	// Riffle: greedily add absent nodes that keep the penalty at zero
	for i := 0; i < n; i++ {
		if state.Test(uint(i)) {
			continue
		}
		proposal := state.Clone().Set(uint(i))
		if score := p.score(proposal); score.Penalty == 0 {
			state, current = proposal, score
		}
	}

	return state, current, stats
}

// accept draws from the engine stream only for non-improving proposals
func (e *Engine) accept(current, proposed Score, temperature float64) bool {
	if proposed.Value() > current.Value() {
		return true
	}
	return Accept(current, proposed, temperature, e.rng.Float64())
}

// temperature returns the temperature after sweep i
func (e *Engine) temperature(i int) float64 {
	if e.cfg.cooling() == CoolingExponential {
		return e.cfg.TempInit * math.Exp(-float64(i+1)*e.cfg.CoolRate)
	}
	return e.cfg.TempInit * math.Pow(e.cfg.CoolRate, float64(i))
}
