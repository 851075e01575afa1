package sigclu

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrConfiguration      = errors.New("invalid configuration")
	ErrInputInconsistency = errors.New("inconsistent input")
)

// Error provides structured information about a failed engine operation.
type Error struct {
	Op     string // Operation that failed (e.g., "New", "Run")
	Module int    // Module index, -1 when not tied to a module
	Kind   error  // ErrConfiguration or ErrInputInconsistency
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Module >= 0 {
		return fmt.Sprintf("%s module %d: %v: %v", e.Op, e.Module, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Cause)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}

func newError(op string, module int, kind error, format string, args ...any) *Error {
	return &Error{Op: op, Module: module, Kind: kind, Cause: fmt.Errorf(format, args...)}
}

func wrapError(op string, module int, kind, cause error) *Error {
	var e *Error
	if errors.As(cause, &e) {
		return &Error{Op: op, Module: module, Kind: kind, Cause: e.Cause}
	}
	return &Error{Op: op, Module: module, Kind: kind, Cause: cause}
}

// IsConfiguration reports whether err stems from invalid configuration
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsInputInconsistency reports whether err stems from malformed partitions
func IsInputInconsistency(err error) bool {
	return errors.Is(err, ErrInputInconsistency)
}
