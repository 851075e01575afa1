package partition

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-netclop/pkg/sigclu"
)

// Sentinel errors
var (
	// ErrMalformedRecord marks an unreadable or inconsistent partition row
	ErrMalformedRecord = fmt.Errorf("malformed partition record: %w", sigclu.ErrInputInconsistency)
	// ErrNoReplicates is returned when an ensemble directory holds no partition files
	ErrNoReplicates = fmt.Errorf("no bootstrap replicates: %w", sigclu.ErrConfiguration)
)

// IsMalformed reports whether err stems from a malformed partition file
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedRecord)
}
