// Command netclop extracts significant cores from the modules of a
// trajectory network partition.
package main

import (
	"os"

	"github.com/dd0wney/cluso-netclop/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.DefaultLogger().Debug("command failed", logging.Error(err))
		os.Exit(1)
	}
}
