// Package routing assigns the stable port numbers that connect a
// compartment's space model to its reaction sets. Internal reaction
// sets (the bulk, then each membrane in declared order) take the first
// ports; reaction sets exposed by other compartments take the rest in
// supplier order. Port numbers are contiguous from zero with no gaps
// or duplicates, and downstream coupling refers to them by value, so
// the assignment must be deterministic.
package routing

import (
	"iter"

	"github.com/dd0wney/cellgraph/pkg/ordered"
)

// Bulk is the reaction-set name every compartment owns for reactions
// not localized to a membrane.
const Bulk = "bulk"

// Address identifies a reaction set within the whole model.
type Address struct {
	Compartment string `json:"compartment"`
	ReactionSet string `json:"reactionSet"`
}

// String returns the flattened id used for emitted model names.
func (a Address) String() string {
	return a.Compartment + "_" + a.ReactionSet
}

// Entry is a single routing-table row.
type Entry struct {
	Address Address
	Port    int
}

// Table maps reaction-set addresses to space output ports, in
// assignment order.
type Table struct {
	entries []Entry
	index   map[Address]int
}

// External declares the reaction sets another compartment exposes to
// the one being built. Suppliers are visited in slice order.
type External struct {
	Compartment  string
	ReactionSets []string
}

// MembraneEIC maps membrane reaction-set names to the compartment-level
// input ports reachable from the parent compartment. The numbering
// space is separate from the routing table's.
type MembraneEIC struct {
	ports *ordered.Map[string, int]
}

// Build derives the membrane input mapping and the routing table for a
// compartment. Membranes get input ports in list order starting at 0.
// The routing table starts with the internal sets (bulk first, then
// the membranes) and continues with every external set in supplier
// order. Duplicate membrane names or duplicate (compartment, set)
// addresses are rejected.
func Build(cid string, membranes []string, external []External) (*MembraneEIC, *Table, error) {
	eicPorts := ordered.New[string, int]()
	for i, name := range membranes {
		if eicPorts.Has(name) {
			return nil, nil, &Error{Op: "build", Compartment: cid, ReactionSet: name, Cause: ErrDuplicateMembrane}
		}
		eicPorts.Set(name, i)
	}

	t := &Table{index: make(map[Address]int)}

	internal := append([]string{Bulk}, membranes...)
	for _, name := range internal {
		if err := t.add(Address{Compartment: cid, ReactionSet: name}); err != nil {
			return nil, nil, err
		}
	}
	for _, ext := range external {
		for _, name := range ext.ReactionSets {
			if err := t.add(Address{Compartment: ext.Compartment, ReactionSet: name}); err != nil {
				return nil, nil, err
			}
		}
	}

	return &MembraneEIC{ports: eicPorts}, t, nil
}

func (t *Table) add(a Address) error {
	if _, ok := t.index[a]; ok {
		return &Error{Op: "build", Compartment: a.Compartment, ReactionSet: a.ReactionSet, Cause: ErrDuplicateAddress}
	}
	t.index[a] = len(t.entries)
	t.entries = append(t.entries, Entry{Address: a, Port: len(t.entries)})
	return nil
}

// Port returns the port assigned to an address.
func (t *Table) Port(a Address) (int, bool) {
	i, ok := t.index[a]
	if !ok {
		return 0, false
	}
	return t.entries[i].Port, true
}

// Len returns the number of routed reaction sets.
func (t *Table) Len() int {
	return len(t.entries)
}

// PortCount returns the number of output ports the space model needs.
// Ports start at zero, so this is the highest port plus one.
func (t *Table) PortCount() int {
	return len(t.entries)
}

// Entries iterates the table rows in port order.
func (t *Table) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range t.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Port returns the input port assigned to a membrane.
func (m *MembraneEIC) Port(name string) (int, bool) {
	return m.ports.Get(name)
}

// Len returns the number of membranes.
func (m *MembraneEIC) Len() int {
	return m.ports.Len()
}

// All iterates membranes in declaration order.
func (m *MembraneEIC) All() iter.Seq2[string, int] {
	return m.ports.All()
}
