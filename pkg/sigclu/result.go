package sigclu

import "time"

// ModuleResult holds the cores extracted from one reference module
type ModuleResult struct {
	Index     int
	Module    NodeSet
	Cores     CoreSet
	Stability []float64 // per core, aligned with Cores
	Duration  time.Duration
}

// CoreNodes returns the number of module nodes that belong to a core
func (m ModuleResult) CoreNodes() int {
	total := 0
	for _, core := range m.Cores {
		total += core.Len()
	}
	return total
}

// Result is the outcome of a Runner run
type Result struct {
	Seed       int64
	Replicates int
	Modules    []ModuleResult
	Duration   time.Duration
}

// Assignment locates a node in the result. Core is the 1-based index of the
// node's core inside its module, 0 when the node is in no core.
type Assignment struct {
	Module int
	Core   int
}

// Assignments maps every module node to its module and core
func (r *Result) Assignments() map[Node]Assignment {
	out := make(map[Node]Assignment)
	for _, m := range r.Modules {
		for n := range m.Module {
			out[n] = Assignment{Module: m.Index}
		}
		for i, core := range m.Cores {
			for n := range core {
				out[n] = Assignment{Module: m.Index, Core: i + 1}
			}
		}
	}
	return out
}

// CoreCount returns the number of cores over all modules
func (r *Result) CoreCount() int {
	total := 0
	for _, m := range r.Modules {
		total += len(m.Cores)
	}
	return total
}

// CoreNodes returns the number of nodes in any core
func (r *Result) CoreNodes() int {
	total := 0
	for _, m := range r.Modules {
		total += m.CoreNodes()
	}
	return total
}

// NodeCount returns the number of reference nodes
func (r *Result) NodeCount() int {
	total := 0
	for _, m := range r.Modules {
		total += m.Module.Len()
	}
	return total
}
