package sigclu

import (
	"math"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// PenaltyCount returns n_pen = floor(replicates * (1 - significance)).
// A small tolerance absorbs binary rounding so that 10 * (1 - 0.8) yields 2.
func PenaltyCount(replicates int, significance float64) int {
	return int(math.Floor(float64(replicates)*(1-significance) + 1e-9))
}

// TrimCount returns how many of the smallest mismatches enter the penalty,
// clamped to [0, replicates]
func TrimCount(replicates int, significance float64, trim string) int {
	k := PenaltyCount(replicates, significance)
	if trim != TrimAtQuantile {
		k--
	}
	if k < 0 {
		return 0
	}
	if k > replicates {
		return replicates
	}
	return k
}

// Mismatch returns the number of candidate nodes outside the replicate module
// that overlaps the candidate most. A replicate with no overlapping module
// yields |candidate|.
func Mismatch(candidate NodeSet, replicate Partition) int {
	best := candidate.Len()
	for _, module := range replicate {
		if d := candidate.DifferenceLen(module); d < best {
			best = d
		}
	}
	return best
}

// EvaluateScore computes the (size, penalty) score of candidate against the
// ensemble. penWeighting is the per-mismatch weight, usually
// PenWeight * |universe|.
func EvaluateScore(candidate NodeSet, ensemble Ensemble, penWeighting float64, cfg Config) (Score, error) {
	if len(ensemble) == 0 {
		return Score{}, newError("Score", -1, ErrConfiguration, "bootstrap ensemble has no replicates")
	}

	mismatches := make([]int, len(ensemble))
	for r, replicate := range ensemble {
		mismatches[r] = Mismatch(candidate, replicate)
	}
	k := TrimCount(len(ensemble), cfg.SignificanceLevel, cfg.trim())
	return Score{Size: candidate.Len(), Penalty: penWeighting * float64(trimmedSum(mismatches, k))}, nil
}

func trimmedSum(mismatches []int, k int) int {
	sort.Ints(mismatches)
	sum := 0
	for _, m := range mismatches[:k] {
		sum += m
	}
	return sum
}

// problem is the bitset-indexed form of a universe and ensemble used by the
// annealer. Candidate states are bitsets over the sorted universe.
type problem struct {
	universe     []Node
	replicates   [][]*bitset.BitSet
	mismatches   []int
	trim         int
	penWeighting float64
	evaluations  int
}

func newProblem(universe NodeSet, ensemble Ensemble, cfg Config) *problem {
	nodes := universe.Sorted()
	index := make(map[Node]uint, len(nodes))
	for i, n := range nodes {
		index[n] = uint(i)
	}

	replicates := make([][]*bitset.BitSet, len(ensemble))
	for r, replicate := range ensemble {
		for _, module := range replicate {
			var bits *bitset.BitSet
			for n := range module {
				i, ok := index[n]
				if !ok {
					continue
				}
				if bits == nil {
					bits = bitset.New(uint(len(nodes)))
				}
				bits.Set(i)
			}
			if bits != nil {
				replicates[r] = append(replicates[r], bits)
			}
		}
	}

	return &problem{
		universe:     nodes,
		replicates:   replicates,
		mismatches:   make([]int, len(ensemble)),
		trim:         TrimCount(len(ensemble), cfg.SignificanceLevel, cfg.trim()),
		penWeighting: cfg.PenWeight * float64(len(nodes)),
	}
}

func (p *problem) size() int {
	return len(p.universe)
}

func (p *problem) full() *bitset.BitSet {
	state := bitset.New(uint(p.size()))
	for i := 0; i < p.size(); i++ {
		state.Set(uint(i))
	}
	return state
}

func (p *problem) score(state *bitset.BitSet) Score {
	p.evaluations++
	size := int(state.Count())
	for r, modules := range p.replicates {
		overlap := 0
		for _, module := range modules {
			if o := int(state.IntersectionCardinality(module)); o > overlap {
				overlap = o
			}
		}
		p.mismatches[r] = size - overlap
	}
	return Score{Size: size, Penalty: p.penWeighting * float64(trimmedSum(p.mismatches, p.trim))}
}

func (p *problem) nodes(state *bitset.BitSet) NodeSet {
	set := make(NodeSet, state.Count())
	for i, ok := state.NextSet(0); ok; i, ok = state.NextSet(i + 1) {
		set[p.universe[i]] = struct{}{}
	}
	return set
}
