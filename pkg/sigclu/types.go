package sigclu

import (
	"fmt"
	"sort"
	"strings"
)

// Node identifies a network node, typically a binned H3 cell id
type Node string

// NodeSet is an unordered set of nodes
type NodeSet map[Node]struct{}

// NewNodeSet builds a set from the given nodes
func NewNodeSet(nodes ...Node) NodeSet {
	s := make(NodeSet, len(nodes))
	for _, n := range nodes {
		s[n] = struct{}{}
	}
	return s
}

// Len returns the number of nodes in the set
func (s NodeSet) Len() int {
	return len(s)
}

// Contains reports whether n is a member of the set
func (s NodeSet) Contains(n Node) bool {
	_, ok := s[n]
	return ok
}

// Add inserts n in place. Sets handed to the engine are never mutated by it.
func (s NodeSet) Add(n Node) {
	s[n] = struct{}{}
}

// Clone returns an independent copy of the set
func (s NodeSet) Clone() NodeSet {
	c := make(NodeSet, len(s))
	for n := range s {
		c[n] = struct{}{}
	}
	return c
}

// Difference returns the nodes of s that are not in o
func (s NodeSet) Difference(o NodeSet) NodeSet {
	d := make(NodeSet, len(s))
	for n := range s {
		if !o.Contains(n) {
			d[n] = struct{}{}
		}
	}
	return d
}

// DifferenceLen returns |s \ o| without allocating
func (s NodeSet) DifferenceLen(o NodeSet) int {
	count := 0
	for n := range s {
		if !o.Contains(n) {
			count++
		}
	}
	return count
}

// IsSubsetOf reports whether every node of s is in o
func (s NodeSet) IsSubsetOf(o NodeSet) bool {
	return len(s) <= len(o) && s.DifferenceLen(o) == 0
}

// Equal reports whether both sets hold the same nodes
func (s NodeSet) Equal(o NodeSet) bool {
	return len(s) == len(o) && s.DifferenceLen(o) == 0
}

// Sorted returns the nodes in ascending order
func (s NodeSet) Sorted() []Node {
	nodes := make([]Node, 0, len(s))
	for n := range s {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes
}

// String renders the set as {a b c} in sorted order
func (s NodeSet) String() string {
	nodes := s.Sorted()
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = string(n)
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Partition is a collection of pairwise disjoint modules
type Partition []NodeSet

// Nodes returns the union of all modules
func (p Partition) Nodes() NodeSet {
	all := make(NodeSet)
	for _, module := range p {
		for n := range module {
			all[n] = struct{}{}
		}
	}
	return all
}

// Validate checks that modules are pairwise disjoint and, when universe is
// non-nil, that every module node belongs to universe.
func (p Partition) Validate(universe NodeSet) error {
	if module, err := p.check(universe); err != nil {
		return wrapError("Validate", module, ErrInputInconsistency, err)
	}
	return nil
}

func (p Partition) check(universe NodeSet) (int, error) {
	owner := make(map[Node]int)
	for i, module := range p {
		for n := range module {
			if prev, ok := owner[n]; ok {
				return i, fmt.Errorf("node %q belongs to modules %d and %d", n, prev, i)
			}
			owner[n] = i
			if universe != nil && !universe.Contains(n) {
				return i, fmt.Errorf("node %q is not part of the universe", n)
			}
		}
	}
	return -1, nil
}

// Ensemble is the sequence of partitions obtained from bootstrap replicates
type Ensemble []Partition

// Nodes returns every node seen in any replicate
func (e Ensemble) Nodes() NodeSet {
	all := make(NodeSet)
	for _, replicate := range e {
		for _, module := range replicate {
			for n := range module {
				all[n] = struct{}{}
			}
		}
	}
	return all
}

// Validate checks that the ensemble is non-empty and every replicate is a
// proper partition
func (e Ensemble) Validate() error {
	if len(e) == 0 {
		return newError("Validate", -1, ErrConfiguration, "bootstrap ensemble has no replicates")
	}
	for r, replicate := range e {
		if _, err := replicate.check(nil); err != nil {
			return newError("Validate", -1, ErrInputInconsistency, "replicate %d: %v", r, err)
		}
	}
	return nil
}

// Score is the (size, penalty) measure of a candidate core. The two parts are
// only combined as Size - Penalty when comparing candidates.
type Score struct {
	Size    int
	Penalty float64
}

// Value returns Size - Penalty
func (s Score) Value() float64 {
	return float64(s.Size) - s.Penalty
}

// Significant reports whether the candidate carries no penalty
func (s Score) Significant() bool {
	return s.Penalty == 0
}

// CoreSet is the ordered list of disjoint cores extracted from one module
type CoreSet []NodeSet

// Nodes returns the union of all cores
func (c CoreSet) Nodes() NodeSet {
	return Partition(c).Nodes()
}

// Sizes returns the size of every core in order
func (c CoreSet) Sizes() []int {
	sizes := make([]int, len(c))
	for i, core := range c {
		sizes[i] = core.Len()
	}
	return sizes
}

// sortCores orders cores by descending size, ties broken by smallest node
func sortCores(c CoreSet) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].Len() != c[j].Len() {
			return c[i].Len() > c[j].Len()
		}
		return minNode(c[i]) < minNode(c[j])
	})
}

func minNode(s NodeSet) Node {
	first := true
	var m Node
	for n := range s {
		if first || n < m {
			m, first = n, false
		}
	}
	return m
}
