// Package groups splits an enzyme set into bounded-size groups. The
// emission target cannot render arbitrarily large reaction-set models,
// so each set is partitioned into groups of at most size entries; a
// set may therefore hold at most size*size enzymes before it needs
// restructuring, and exceeding that ceiling is an error rather than a
// silent overflow.
package groups

import (
	"iter"

	"github.com/dd0wney/cellgraph/pkg/ordered"
)

// DefaultSize is the default group-size ceiling.
const DefaultSize = 150

// Chunk yields consecutive sub-maps of at most size entries each,
// preserving the input order. The groups partition the input exactly:
// every entry appears in exactly one group. An empty input yields no
// groups. Chunk panics if size < 1; callers validate size up front
// through Plan.
func Chunk[K comparable, V any](m *ordered.Map[K, V], size int) iter.Seq[*ordered.Map[K, V]] {
	if size < 1 {
		panic("groups: size must be positive")
	}
	return func(yield func(*ordered.Map[K, V]) bool) {
		group := ordered.New[K, V]()
		for k, v := range m.All() {
			group.Set(k, v)
			if group.Len() == size {
				if !yield(group) {
					return
				}
				group = ordered.New[K, V]()
			}
		}
		if group.Len() > 0 {
			yield(group)
		}
	}
}

// Group is one emitted slice of a reaction set. Members maps each
// enzyme to its intra-group port, contiguous from zero in input order.
// Port is the group's own port within the reaction set.
type Group[K comparable] struct {
	Port    int
	Members *ordered.Map[K, int]
}

// Plan is the full grouping of one reaction set. SetPorts maps every
// enzyme to the port of the group that holds it.
type Plan[K comparable] struct {
	Groups   []Group[K]
	SetPorts *ordered.Map[K, int]
}

// BuildPlan partitions the enzyme mapping into groups of at most size
// entries and assigns intra-group and per-group ports. Sets larger
// than size*size exceed what a single reaction-set model can hold and
// are rejected with ErrSetTooLarge.
func BuildPlan[K comparable, V any](m *ordered.Map[K, V], size int) (*Plan[K], error) {
	if size < 1 {
		return nil, &Error{Op: "plan", Size: size, Cause: ErrInvalidSize}
	}
	if m.Len() > size*size {
		return nil, &Error{Op: "plan", Size: size, Count: m.Len(), Cause: ErrSetTooLarge}
	}

	plan := &Plan[K]{SetPorts: ordered.New[K, int]()}
	for chunk := range Chunk(m, size) {
		g := Group[K]{Port: len(plan.Groups), Members: ordered.New[K, int]()}
		port := 0
		for k := range chunk.All() {
			g.Members.Set(k, port)
			plan.SetPorts.Set(k, g.Port)
			port++
		}
		plan.Groups = append(plan.Groups, g)
	}
	return plan, nil
}
