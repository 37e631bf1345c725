package sbml

import (
	"errors"
	"fmt"
)

// Sentinel errors for model parsing.
var (
	ErrDuplicateID        = errors.New("duplicate id")
	ErrRoleNotFound       = errors.New("role compartment not found in model")
	ErrUnknownCompartment = errors.New("unknown compartment")
	ErrUnknownSpecies     = errors.New("unknown species")
	ErrEmptyReaction      = errors.New("reaction references no species")
	ErrUnroutable         = errors.New("reaction spans compartments with no connecting membrane")
)

// ParseError carries the element context of a parse failure.
type ParseError struct {
	Element string
	ID      string
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("sbml: %s %s: %v", e.Element, e.ID, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
