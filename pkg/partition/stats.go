package partition

import (
	"math"

	"github.com/dd0wney/cluso-netclop/pkg/sigclu"
)

// Summary describes the size of an ensemble
type Summary struct {
	Replicates  int
	MeanModules float64
	StdModules  float64
	MeanNodes   float64
	StdNodes    float64
}

// Summarize returns mean and population standard deviation of the module
// and node counts per replicate
func Summarize(ensemble sigclu.Ensemble) Summary {
	modules := make([]float64, len(ensemble))
	nodes := make([]float64, len(ensemble))
	for i, p := range ensemble {
		modules[i] = float64(len(p))
		for _, m := range p {
			nodes[i] += float64(m.Len())
		}
	}

	s := Summary{Replicates: len(ensemble)}
	s.MeanModules, s.StdModules = meanStd(modules)
	s.MeanNodes, s.StdNodes = meanStd(nodes)
	return s
}

func meanStd(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		sq += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(sq / float64(len(xs)))
}
