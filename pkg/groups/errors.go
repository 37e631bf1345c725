package groups

import (
	"errors"
	"fmt"
)

// Sentinel errors for group planning.
var (
	ErrInvalidSize = errors.New("group size must be positive")
	ErrSetTooLarge = errors.New("enzyme set exceeds group capacity")
)

// Error carries the sizing context of a failed grouping.
type Error struct {
	Op    string
	Size  int
	Count int
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Count > 0 {
		return fmt.Sprintf("groups %s: %d enzymes with group size %d (capacity %d): %v",
			e.Op, e.Count, e.Size, e.Size*e.Size, e.Cause)
	}
	return fmt.Sprintf("groups %s: size %d: %v", e.Op, e.Size, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}
