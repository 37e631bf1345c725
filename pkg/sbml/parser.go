package sbml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/cellgraph/pkg/ordered"
	"github.com/dd0wney/cellgraph/pkg/routing"
)

// Parser holds the derived, order-stable view of a parsed model. All
// collections preserve document order; the generator's port numbering
// depends on it. A Parser is immutable after construction.
type Parser struct {
	modelID string
	opts    Options

	compartments *ordered.Map[string, float64]
	species      *ordered.Map[string, *ordered.Map[string, float64]]
	speciesHome  map[string]string
	reactions    *ordered.Map[string, *Reaction]
	enzymes      *ordered.Map[string, *Enzyme]
}

// ParseFile parses an SBML file from disk.
func ParseFile(path string, opts Options) (*Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sbml: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, opts)
}

// Parse reads an SBML document and derives the generator's view of it:
// compartment volumes, per-compartment species amounts, classified
// reactions and their enzymes.
func Parse(r io.Reader, opts Options) (*Parser, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("sbml: decode: %w", err)
	}

	p := &Parser{
		modelID:      doc.Model.ID,
		opts:         opts,
		compartments: ordered.New[string, float64](),
		species:      ordered.New[string, *ordered.Map[string, float64]](),
		speciesHome:  make(map[string]string),
		reactions:    ordered.New[string, *Reaction](),
		enzymes:      ordered.New[string, *Enzyme](),
	}

	for _, c := range doc.Model.Compartments {
		if p.compartments.Has(c.ID) {
			return nil, &ParseError{Element: "compartment", ID: c.ID, Cause: ErrDuplicateID}
		}
		size := c.Size
		if size == 0 {
			size = 1
		}
		p.compartments.Set(c.ID, size)
		p.species.Set(c.ID, ordered.New[string, float64]())
	}

	for _, role := range []string{opts.ExtracellularID, opts.PeriplasmID, opts.CytoplasmID} {
		if !p.compartments.Has(role) {
			return nil, &ParseError{Element: "compartment", ID: role, Cause: ErrRoleNotFound}
		}
	}

	for _, s := range doc.Model.Species {
		home, ok := p.species.Get(s.Compartment)
		if !ok {
			return nil, &ParseError{Element: "species", ID: s.ID, Cause: ErrUnknownCompartment}
		}
		if _, dup := p.speciesHome[s.ID]; dup {
			return nil, &ParseError{Element: "species", ID: s.ID, Cause: ErrDuplicateID}
		}
		amount := opts.Defaults.MetaboliteAmount
		if s.InitialAmount != nil {
			amount = *s.InitialAmount
		}
		home.Set(s.ID, amount)
		p.speciesHome[s.ID] = s.Compartment
	}

	for _, r := range doc.Model.Reactions {
		reaction, err := p.buildReaction(r)
		if err != nil {
			return nil, err
		}
		if p.reactions.Has(reaction.ID) {
			return nil, &ParseError{Element: "reaction", ID: reaction.ID, Cause: ErrDuplicateID}
		}
		p.reactions.Set(reaction.ID, reaction)

		handlers := make([]string, 0, len(r.Modifiers))
		for _, m := range r.Modifiers {
			handlers = append(handlers, m.Species)
		}
		if len(handlers) == 0 {
			// Uncatalyzed reactions still need a carrier model.
			handlers = []string{reaction.ID + "_enz"}
		}
		for _, eid := range handlers {
			enz, ok := p.enzymes.Get(eid)
			if !ok {
				enz = &Enzyme{ID: eid, Amount: opts.Defaults.EnzymeAmount}
				p.enzymes.Set(eid, enz)
			}
			enz.Reactions = append(enz.Reactions, reaction.ID)
		}
	}

	return p, nil
}

// buildReaction classifies a reaction into its owning (compartment,
// reaction set) address and computes its routed output port.
func (p *Parser) buildReaction(r reactionElement) (*Reaction, error) {
	reaction := &Reaction{
		ID:         r.ID,
		KonSTP:     p.opts.Defaults.KonSTP,
		KonPTS:     p.opts.Defaults.KonPTS,
		KoffSTP:    p.opts.Defaults.KoffSTP,
		KoffPTS:    p.opts.Defaults.KoffPTS,
		Rate:       p.opts.Defaults.Rate,
		RejectRate: p.opts.Defaults.RejectRate,
	}
	if r.Reversible != nil {
		reaction.Reversible = *r.Reversible
	}

	touched := make(map[string]bool)
	collect := func(refs []speciesRef) ([]SpeciesAmount, error) {
		out := make([]SpeciesAmount, 0, len(refs))
		for _, ref := range refs {
			home, ok := p.speciesHome[ref.Species]
			if !ok {
				return nil, &ParseError{Element: "reaction", ID: r.ID, Cause: fmt.Errorf("%w: species %s", ErrUnknownSpecies, ref.Species)}
			}
			touched[home] = true
			st := 1.0
			if ref.Stoichiometry != nil {
				st = *ref.Stoichiometry
			}
			out = append(out, SpeciesAmount{Species: ref.Species, Stoichiometry: st})
		}
		return out, nil
	}

	var err error
	if reaction.Reactants, err = collect(r.Reactants); err != nil {
		return nil, err
	}
	if reaction.Products, err = collect(r.Products); err != nil {
		return nil, err
	}
	for _, m := range r.Modifiers {
		if _, ok := p.speciesHome[m.Species]; !ok {
			return nil, &ParseError{Element: "reaction", ID: r.ID, Cause: fmt.Errorf("%w: modifier %s", ErrUnknownSpecies, m.Species)}
		}
	}

	addr, err := p.classify(r.ID, touched)
	if err != nil {
		return nil, err
	}
	reaction.Address = addr
	reaction.RoutedPort = p.routedPort(addr, reaction.Products)
	return reaction, nil
}

// classify maps the set of compartments a reaction touches to its
// owning reaction set. Single-compartment reactions belong to that
// compartment's bulk. Reactions spanning compartments belong to the
// membrane separating them: the cell envelope carries outer
// (extracellular/periplasm), inner (periplasm/cytoplasm) and trans
// (reaching both extracellular and cytoplasm); an organelle boundary
// carries its single membrane.
func (p *Parser) classify(rid string, touched map[string]bool) (routing.Address, error) {
	if len(touched) == 0 {
		return routing.Address{}, &ParseError{Element: "reaction", ID: rid, Cause: ErrEmptyReaction}
	}
	if len(touched) == 1 {
		for cid := range touched {
			return routing.Address{Compartment: cid, ReactionSet: routing.Bulk}, nil
		}
	}

	e := touched[p.opts.ExtracellularID]
	c := touched[p.opts.CytoplasmID]
	pp := touched[p.opts.PeriplasmID]

	var organelle string
	for cid := range touched {
		if cid != p.opts.ExtracellularID && cid != p.opts.CytoplasmID && cid != p.opts.PeriplasmID {
			if organelle != "" {
				return routing.Address{}, &ParseError{Element: "reaction", ID: rid, Cause: ErrUnroutable}
			}
			organelle = cid
		}
	}

	switch {
	case organelle != "" && pp:
		// Organelles only exchange with the cytoplasm and the
		// extracellular space.
		return routing.Address{}, &ParseError{Element: "reaction", ID: rid, Cause: ErrUnroutable}
	case organelle != "":
		return routing.Address{Compartment: organelle, ReactionSet: SetMembrane}, nil
	case e && c:
		return routing.Address{Compartment: p.opts.PeriplasmID, ReactionSet: SetTrans}, nil
	case e && pp:
		return routing.Address{Compartment: p.opts.PeriplasmID, ReactionSet: SetOuter}, nil
	case pp && c:
		return routing.Address{Compartment: p.opts.PeriplasmID, ReactionSet: SetInner}, nil
	}
	return routing.Address{}, &ParseError{Element: "reaction", ID: rid, Cause: ErrUnroutable}
}

// routedPort returns the highest output port the reaction's products
// need from the owning reaction-set model.
func (p *Parser) routedPort(addr routing.Address, products []SpeciesAmount) int {
	port := PortInternal
	for _, prod := range products {
		home := p.speciesHome[prod.Species]
		switch {
		case home == addr.Compartment:
			// stays on the compartment's space, port 0
		case home == p.opts.ExtracellularID:
			port = max(port, PortToOuter)
		default:
			// host bulk compartment: cytoplasm for organelle
			// membranes, either bulk side for envelope membranes
			port = max(port, PortToHost)
		}
	}
	return port
}

// ModelID returns the source model identifier.
func (p *Parser) ModelID() string {
	return p.modelID
}

// Options returns the options the model was parsed with.
func (p *Parser) Options() Options {
	return p.opts
}

// Compartments returns all compartment ids in declaration order.
func (p *Parser) Compartments() []string {
	return p.compartments.Keys()
}

// Organelles returns the compartments that are not one of the three
// distinguished roles, in declaration order.
func (p *Parser) Organelles() []string {
	var out []string
	for _, cid := range p.compartments.Keys() {
		if cid != p.opts.ExtracellularID && cid != p.opts.PeriplasmID && cid != p.opts.CytoplasmID {
			out = append(out, cid)
		}
	}
	return out
}

// Volume returns the volume of a compartment.
func (p *Parser) Volume(cid string) float64 {
	v, _ := p.compartments.Get(cid)
	return v
}

// IntervalTime returns the timing interval of a compartment's space,
// honoring a per-compartment override when one is configured.
func (p *Parser) IntervalTime(cid string) string {
	if t, ok := p.opts.IntervalTimes[cid]; ok {
		return t
	}
	return p.opts.Defaults.IntervalTime
}

// CompartmentSpecies returns the species hosted by a compartment with
// their initial amounts, in declaration order.
func (p *Parser) CompartmentSpecies(cid string) *ordered.Map[string, float64] {
	s, ok := p.species.Get(cid)
	if !ok {
		return ordered.New[string, float64]()
	}
	return s
}

// ReactionsFor returns the reactions owned by a compartment, across
// all of its reaction sets, in document order.
func (p *Parser) ReactionsFor(cid string) *ordered.Map[string, *Reaction] {
	out := ordered.New[string, *Reaction]()
	for rid, r := range p.reactions.All() {
		if r.Address.Compartment == cid {
			out.Set(rid, r)
		}
	}
	return out
}

// EnzymeSet returns the enzymes handling reactions of one (compartment,
// reaction set) address, in first-appearance order.
func (p *Parser) EnzymeSet(cid, setName string) *ordered.Map[string, *Enzyme] {
	addr := routing.Address{Compartment: cid, ReactionSet: setName}
	out := ordered.New[string, *Enzyme]()
	for eid, enz := range p.enzymes.All() {
		for _, rid := range enz.Reactions {
			r, _ := p.reactions.Get(rid)
			if r != nil && r.Address == addr {
				out.Set(eid, enz)
				break
			}
		}
	}
	return out
}

// AllReactions returns every parsed reaction in document order.
func (p *Parser) AllReactions() *ordered.Map[string, *Reaction] {
	return p.reactions
}

// AllEnzymes returns every derived enzyme in first-appearance order.
func (p *Parser) AllEnzymes() *ordered.Map[string, *Enzyme] {
	return p.enzymes
}
