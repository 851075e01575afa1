package sigclu

// Stability returns the fraction of replicates in which core lies entirely
// inside a single module
func Stability(core NodeSet, ensemble Ensemble) float64 {
	if len(ensemble) == 0 || core.Len() == 0 {
		return 0
	}
	kept := 0
	for _, replicate := range ensemble {
		if Mismatch(core, replicate) == 0 {
			kept++
		}
	}
	return float64(kept) / float64(len(ensemble))
}
