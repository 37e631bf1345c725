package assembler

import (
	"github.com/dd0wney/cellgraph/pkg/model"
)

// Bulk assembles the descriptor of a compartment without membranes
// (cytoplasm or extracellular space). The descriptor couples the space
// model to the single bulk reaction-set model, exposes the space's
// foreign-compartment routing ports as reactant outputs, and exposes
// the space's product/information inputs as the compartment inputs.
func Bulk(c *model.Compartment) (*CoupledModel, error) {
	if len(c.Sets) != 1 {
		return nil, &StructuralError{Op: "bulk", Compartment: c.ID, Cause: ErrBulkSetCount}
	}
	bulk := c.Sets[0]
	bulkRef := EnzymeRef(bulk.Address.String())
	space := SpaceRef(c.ID)

	bulkPort, ok := c.Table.Port(bulk.Address)
	if !ok {
		return nil, &StructuralError{Op: "bulk", Compartment: c.ID, ReactionSet: bulk.Address.ReactionSet, Cause: ErrRouteNotFound}
	}

	m := &CoupledModel{
		Name:      c.ID,
		SubModels: []string{space.Name, bulkRef.Name},
		IC: []IC{
			{From: space, FromPort: routePort(bulkPort), To: bulkRef, ToPort: routePort(0)},
			{From: bulkRef, FromPort: productPort(0), To: space, ToPort: productPort(0)},
			{From: bulkRef, FromPort: informationPort(0), To: space, ToPort: informationPort(0)},
		},
	}

	// The space's product/information inputs become the compartment
	// inputs.
	m.Ports = append(m.Ports,
		Port{Name: productPort(0), Kind: KindProduct, Direction: In},
		Port{Name: informationPort(0), Kind: KindInformation, Direction: In},
	)
	m.EIC = append(m.EIC,
		EIC{OuterPort: productPort(0), To: space, ToPort: productPort(0)},
		EIC{OuterPort: informationPort(0), To: space, ToPort: informationPort(0)},
	)

	// Every foreign routing entry is exposed outward unchanged.
	for e := range c.Table.Entries() {
		if e.Address.Compartment == c.ID {
			continue
		}
		m.EOC = append(m.EOC, EOC{From: space, FromPort: routePort(e.Port), OuterPort: routePort(e.Port)})
		m.Ports = append(m.Ports, Port{Name: routePort(e.Port), Kind: KindReactant, Direction: Out})
	}

	return m, nil
}

// Organelle assembles the descriptor of a membrane-bearing compartment
// (the periplasm or an organelle). The space model connects outward to
// every internal reaction set through its routing port; every set
// returns products and information to the space's single input. Set
// output ports above 0 surface as compartment outputs, and each
// membrane's input port 0 is exposed through the compartment input
// assigned by the membrane mapping.
func Organelle(c *model.Compartment) (*CoupledModel, error) {
	space := SpaceRef(c.ID)

	m := &CoupledModel{
		Name:      c.ID,
		SubModels: []string{space.Name},
	}
	for _, set := range c.Sets {
		m.SubModels = append(m.SubModels, set.Address.String())
	}

	// Organelle spaces never address foreign compartments directly;
	// metabolites leave only through a membrane.
	for e := range c.Table.Entries() {
		if e.Address.Compartment != c.ID {
			return nil, &StructuralError{Op: "organelle", Compartment: c.ID, ReactionSet: e.Address.ReactionSet, Cause: ErrForeignAddress}
		}
		setRef := EnzymeRef(e.Address.String())
		m.IC = append(m.IC,
			IC{From: space, FromPort: routePort(e.Port), To: setRef, ToPort: routePort(0)},
			IC{From: setRef, FromPort: productPort(0), To: space, ToPort: productPort(0)},
			IC{From: setRef, FromPort: informationPort(0), To: space, ToPort: informationPort(0)},
		)
	}

	// Port 0 of each set faces the space, so outward ports range over
	// [1, OutputPorts). A port index is declared once even when several
	// sets share it.
	declared := make(map[int]bool)
	for _, set := range c.Sets {
		setRef := EnzymeRef(set.Address.String())
		for port := 1; port < set.OutputPorts; port++ {
			m.EOC = append(m.EOC,
				EOC{From: setRef, FromPort: productPort(port), OuterPort: productPort(port)},
				EOC{From: setRef, FromPort: informationPort(port), OuterPort: informationPort(port)},
			)
			if !declared[port] {
				declared[port] = true
				m.Ports = append(m.Ports,
					Port{Name: productPort(port), Kind: KindProduct, Direction: Out},
					Port{Name: informationPort(port), Kind: KindInformation, Direction: Out},
				)
			}
		}
	}

	// One reactant input per membrane, numbered by the membrane
	// mapping.
	for name, port := range c.EIC.All() {
		addr := c.ID + "_" + name
		m.EIC = append(m.EIC, EIC{OuterPort: routePort(port), To: EnzymeRef(addr), ToPort: routePort(0)})
		m.Ports = append(m.Ports, Port{Name: routePort(port), Kind: KindReactant, Direction: In})
	}

	return m, nil
}
