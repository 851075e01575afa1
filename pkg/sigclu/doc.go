// Package sigclu extracts statistically significant cores from the modules of
// a reference partition.
//
// A core is a subset of a module whose co-membership survives bootstrap
// resampling: for every candidate subset the Score Model counts, per bootstrap
// replicate, how many candidate nodes fall outside the best-matching replicate
// module, and penalizes the smallest of those mismatches up to the quantile set
// by the significance level. A penalty-weighted simulated annealing search
// (Annealer), restarted several times (FindCore) and applied repeatedly to the
// nodes that remain (ExtractCores), yields an ordered list of disjoint cores.
//
// Every Engine owns its random stream. Runner processes modules concurrently
// and derives one stream per module from the configured seed, so a run is
// reproducible regardless of the number of workers.
package sigclu
