package main

import (
	"github.com/spf13/cobra"
)

// Global flags
var (
	configFile string
	logLevel   string
	noColor    bool
)

func newRootCmd() *cobra.Command {
	configFile, logLevel, noColor = "", "", false

	root := &cobra.Command{
		Use:   "netclop",
		Short: "Significance clustering of trajectory network modules",
		Long: `netclop finds the statistically significant cores of network modules.

Each module of a reference partition is searched for the largest node subsets
whose co-membership survives bootstrap resampling, using penalty-weighted
simulated annealing against an ensemble of replicate partitions.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable styled output")

	root.AddCommand(newRunCmd())
	root.AddCommand(newRunsCmd())
	return root
}
