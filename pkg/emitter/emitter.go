// Package emitter renders the assembled model graph as simulation
// source. The generator calls it once per enzyme-set group, once per
// compartment space and once per coupled model, strictly after the
// whole graph has been built; the emitter just appends, it never
// validates or deduplicates.
package emitter

import "github.com/dd0wney/cellgraph/pkg/assembler"

// GroupSpec is one bounded slice of a reaction set.
type GroupSpec struct {
	ID      string
	Enzymes []string
}

// EnzymeSetSpec requests rendering of one reaction-set model from its
// groups.
type EnzymeSetSpec struct {
	Compartment string
	ReactionSet string
	ModelName   string
	Groups      []GroupSpec
	OutputPorts int
}

// SpaceSpec requests rendering of one compartment space atomic model.
// Compartments names the compartments the space simulates, rendered
// into the generated source.
type SpaceSpec struct {
	ModelName    string
	Compartments []string
	OutputPorts  int
	InputPorts   int

	Product     assembler.MessageKind
	Reactant    assembler.MessageKind
	Information assembler.MessageKind
}

// Emitter renders model source. Implementations are append-only
// accumulators; Finish closes the produced artifact.
type Emitter interface {
	EnzymeSet(spec EnzymeSetSpec) error
	Space(spec SpaceSpec) error
	Coupled(m *assembler.CoupledModel) error
	Finish() error
}
