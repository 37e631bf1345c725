package routing

import (
	"errors"
	"fmt"
)

// Sentinel errors for table construction.
var (
	ErrDuplicateMembrane = errors.New("duplicate membrane name")
	ErrDuplicateAddress  = errors.New("duplicate routing address")
)

// Error carries the compartment context of a failed table build.
type Error struct {
	Op          string
	Compartment string
	ReactionSet string
	Cause       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ReactionSet != "" {
		return fmt.Sprintf("routing %s %s/%s: %v", e.Op, e.Compartment, e.ReactionSet, e.Cause)
	}
	return fmt.Sprintf("routing %s %s: %v", e.Op, e.Compartment, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}
