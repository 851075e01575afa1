package sigclu

import "math"

// Accept is the Metropolis-Hastings rule. Improvements are always accepted;
// otherwise the proposal is accepted when exp(delta/temperature) >= draw.
// A non-positive temperature rejects every non-improving proposal.
func Accept(current, proposed Score, temperature, draw float64) bool {
	delta := proposed.Value() - current.Value()
	if delta > 0 {
		return true
	}
	if !(temperature > 0) {
		return false
	}
	return math.Exp(delta/temperature) >= draw
}
