// Package model builds the per-compartment aggregate the assemblers
// consume: the routing table, the membrane input mapping, the enzyme
// sets of every internal reaction set, and the space parameters. A
// Compartment is built once from parser output and not mutated after.
package model

import (
	"github.com/dd0wney/cellgraph/pkg/ordered"
	"github.com/dd0wney/cellgraph/pkg/routing"
	"github.com/dd0wney/cellgraph/pkg/sbml"
)

// EnzymeSet is one internal reaction set of a compartment with its
// member enzymes in parse order. OutputPorts counts the output ports
// the set's model needs: port 0 faces the compartment's space, higher
// ports carry products across the compartment boundary.
type EnzymeSet struct {
	Address     routing.Address
	Enzymes     *ordered.Map[string, *sbml.Enzyme]
	OutputPorts int
}

// SpaceParameters collects the physical parameters of a compartment's
// space model, persisted by the parameter writer.
type SpaceParameters struct {
	Compartment  string
	IntervalTime string
	Volume       float64
	Metabolites  *ordered.Map[string, float64]
	Reactions    *ordered.Map[string, *sbml.Reaction]
	Enzymes      *ordered.Map[string, *sbml.Enzyme]
}

// Compartment is the assembled structural view of one biological
// compartment. Sets holds the internal reaction sets in routing order,
// bulk first.
type Compartment struct {
	ID        string
	Membranes []string
	EIC       *routing.MembraneEIC
	Table     *routing.Table
	Sets      []*EnzymeSet
	Space     SpaceParameters

	setIndex map[routing.Address]*EnzymeSet
}

// New builds the compartment aggregate: routing table and membrane
// mapping first, then one enzyme set per internal reaction set, then
// the space parameters.
func New(p *sbml.Parser, cid string, membranes []string, external []routing.External) (*Compartment, error) {
	eic, table, err := routing.Build(cid, membranes, external)
	if err != nil {
		return nil, err
	}

	c := &Compartment{
		ID:        cid,
		Membranes: membranes,
		EIC:       eic,
		Table:     table,
		setIndex:  make(map[routing.Address]*EnzymeSet),
	}

	internal := append([]string{routing.Bulk}, membranes...)
	for _, name := range internal {
		addr := routing.Address{Compartment: cid, ReactionSet: name}
		set := &EnzymeSet{
			Address:     addr,
			Enzymes:     p.EnzymeSet(cid, name),
			OutputPorts: setOutputPorts(p, addr),
		}
		c.Sets = append(c.Sets, set)
		c.setIndex[addr] = set
	}

	reactions := p.ReactionsFor(cid)
	c.Space = SpaceParameters{
		Compartment:  cid,
		IntervalTime: p.IntervalTime(cid),
		Volume:       p.Volume(cid),
		Metabolites:  p.CompartmentSpecies(cid),
		Reactions:    reactions,
		Enzymes:      relatedEnzymes(p, reactions),
	}
	return c, nil
}

// Set returns the internal enzyme set at the given address.
func (c *Compartment) Set(addr routing.Address) (*EnzymeSet, bool) {
	s, ok := c.setIndex[addr]
	return s, ok
}

// setOutputPorts derives the port count of a reaction-set model from
// the reactions it hosts. Port 0 is always present for the space-facing
// connection.
func setOutputPorts(p *sbml.Parser, addr routing.Address) int {
	maxPort := sbml.PortInternal
	for _, r := range p.AllReactions().Pairs() {
		if r.Value.Address == addr && r.Value.RoutedPort > maxPort {
			maxPort = r.Value.RoutedPort
		}
	}
	return maxPort + 1
}

// relatedEnzymes returns the enzymes handling any of the given
// reactions, in global parse order.
func relatedEnzymes(p *sbml.Parser, reactions *ordered.Map[string, *sbml.Reaction]) *ordered.Map[string, *sbml.Enzyme] {
	out := ordered.New[string, *sbml.Enzyme]()
	for eid, enz := range p.AllEnzymes().All() {
		for _, rid := range enz.Reactions {
			if reactions.Has(rid) {
				out.Set(eid, enz)
				break
			}
		}
	}
	return out
}
