package assembler

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural invariant violations. These are never
// recoverable: the produced graph would be ill-formed, so generation
// must abort without emitting partial output.
var (
	ErrBulkSetCount     = errors.New("bulk compartment must have exactly one internal reaction set")
	ErrForeignAddress   = errors.New("organelle space routes to a foreign compartment")
	ErrMembraneNotFound = errors.New("membrane not found in target compartment")
	ErrRouteNotFound    = errors.New("no routing port for address")
)

// StructuralError reports which compartment and reaction set violated
// a coupling invariant.
type StructuralError struct {
	Op          string
	Compartment string
	ReactionSet string
	Cause       error
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.ReactionSet != "" {
		return fmt.Sprintf("assemble %s %s/%s: %v", e.Op, e.Compartment, e.ReactionSet, e.Cause)
	}
	return fmt.Sprintf("assemble %s %s: %v", e.Op, e.Compartment, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *StructuralError) Unwrap() error {
	return e.Cause
}
