package assembler

import (
	"github.com/dd0wney/cellgraph/pkg/model"
	"github.com/dd0wney/cellgraph/pkg/routing"
)

// The cross-compartment wiring follows fixed port conventions derived
// from the cell topology. A membrane reaction set exports through port
// 1 to the bulk compartment hosting it and through port 2 across the
// whole envelope to the extracellular space. The periplasm sits between
// both bulk compartments, so its coupled model reuses the same
// numbering: output 1 faces the cytoplasm, output 2 the extracellular
// space.
const (
	portToHost  = 1
	portToOuter = 2
)

// Top composes the three distinguished compartments and the organelles
// into the closed organism model. The returned descriptor has internal
// coupling only; the organism exchanges nothing with the outside.
func Top(name string, cytoplasm, extracellular, periplasm *model.Compartment, organelles []*model.Compartment) (*CoupledModel, error) {
	m := &CoupledModel{
		Name:      name,
		SubModels: []string{cytoplasm.ID, extracellular.ID, periplasm.ID},
	}
	for _, o := range organelles {
		m.SubModels = append(m.SubModels, o.ID)
	}

	ic, err := bulkPeriplasmIC(cytoplasm, periplasm, portToHost)
	if err != nil {
		return nil, err
	}
	m.IC = append(m.IC, ic...)

	ic, err = bulkPeriplasmIC(extracellular, periplasm, portToOuter)
	if err != nil {
		return nil, err
	}
	m.IC = append(m.IC, ic...)

	for _, o := range organelles {
		ic, err = organelleIC(cytoplasm, extracellular, o)
		if err != nil {
			return nil, err
		}
		m.IC = append(m.IC, ic...)
	}

	return m, nil
}

// bulkPeriplasmIC wires one bulk compartment to the periplasm: the
// periplasm's bulk-facing output returns products and information to
// the bulk space, and every periplasm entry of the bulk routing table
// drives the matching periplasm membrane input.
func bulkPeriplasmIC(bulk, periplasm *model.Compartment, periplasmPort int) ([]IC, error) {
	bulkRef := CoupledRef(bulk.ID)
	periRef := CoupledRef(periplasm.ID)

	ic := []IC{
		{From: periRef, FromPort: productPort(periplasmPort), To: bulkRef, ToPort: productPort(0)},
		{From: periRef, FromPort: informationPort(periplasmPort), To: bulkRef, ToPort: informationPort(0)},
	}

	for e := range bulk.Table.Entries() {
		if e.Address.Compartment != periplasm.ID {
			continue
		}
		membranePort, ok := periplasm.EIC.Port(e.Address.ReactionSet)
		if !ok {
			return nil, &StructuralError{Op: "top", Compartment: periplasm.ID, ReactionSet: e.Address.ReactionSet, Cause: ErrMembraneNotFound}
		}
		ic = append(ic, IC{From: bulkRef, FromPort: routePort(e.Port), To: periRef, ToPort: routePort(membranePort)})
	}
	return ic, nil
}

// organelleIC wires one organelle: its membrane inputs are driven from
// the cytoplasm's routing ports for that organelle, its output 1
// returns to the cytoplasm, and when it exposes output 2 that returns
// to the extracellular space.
func organelleIC(cytoplasm, extracellular, organelle *model.Compartment) ([]IC, error) {
	cytoRef := CoupledRef(cytoplasm.ID)
	extraRef := CoupledRef(extracellular.ID)
	orgRef := CoupledRef(organelle.ID)

	var ic []IC
	for membrane, membranePort := range organelle.EIC.All() {
		cytoPort, ok := cytoplasm.Table.Port(routing.Address{Compartment: organelle.ID, ReactionSet: membrane})
		if !ok {
			return nil, &StructuralError{Op: "top", Compartment: organelle.ID, ReactionSet: membrane, Cause: ErrRouteNotFound}
		}
		ic = append(ic, IC{From: cytoRef, FromPort: routePort(cytoPort), To: orgRef, ToPort: routePort(membranePort)})
	}

	ic = append(ic,
		IC{From: orgRef, FromPort: productPort(portToHost), To: cytoRef, ToPort: productPort(0)},
		IC{From: orgRef, FromPort: informationPort(portToHost), To: cytoRef, ToPort: informationPort(0)},
	)

	if maxOutputPorts(organelle) > portToOuter {
		ic = append(ic,
			IC{From: orgRef, FromPort: productPort(portToOuter), To: extraRef, ToPort: productPort(0)},
			IC{From: orgRef, FromPort: informationPort(portToOuter), To: extraRef, ToPort: informationPort(0)},
		)
	}
	return ic, nil
}

// maxOutputPorts returns the widest output-port count among a
// compartment's reaction-set models.
func maxOutputPorts(c *model.Compartment) int {
	widest := 0
	for _, set := range c.Sets {
		if set.OutputPorts > widest {
			widest = set.OutputPorts
		}
	}
	return widest
}
