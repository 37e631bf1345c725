// Package sbml parses the subset of SBML the generator consumes:
// compartments, species with initial amounts, and reactions with their
// reactant/product/modifier references. Reactions are classified into
// per-compartment reaction sets (the bulk, or a membrane) from the
// compartments their species live in, and enzymes are derived from
// reaction modifiers. Parsing a large model is slow, so the derived
// state can be persisted as a compressed snapshot and reloaded.
package sbml

import "encoding/xml"

// Membrane reaction-set names. The cell envelope carries three
// membranes between the distinguished compartments; every organelle
// carries a single one.
const (
	SetOuter    = "outer"    // extracellular <-> periplasm
	SetInner    = "inner"    // periplasm <-> cytoplasm
	SetTrans    = "trans"    // extracellular <-> cytoplasm, crossing the envelope
	SetMembrane = "membrane" // organelle <-> cytoplasm / extracellular
)

// document is the parsed XML shape. Only the elements the generator
// needs are mapped.
type document struct {
	XMLName xml.Name     `xml:"sbml"`
	Model   modelElement `xml:"model"`
}

type modelElement struct {
	ID           string               `xml:"id,attr"`
	Compartments []compartmentElement `xml:"listOfCompartments>compartment"`
	Species      []speciesElement     `xml:"listOfSpecies>species"`
	Reactions    []reactionElement    `xml:"listOfReactions>reaction"`
}

type compartmentElement struct {
	ID   string  `xml:"id,attr"`
	Size float64 `xml:"size,attr"`
}

type speciesElement struct {
	ID            string   `xml:"id,attr"`
	Compartment   string   `xml:"compartment,attr"`
	InitialAmount *float64 `xml:"initialAmount,attr"`
}

type reactionElement struct {
	ID         string        `xml:"id,attr"`
	Reversible *bool         `xml:"reversible,attr"`
	Reactants  []speciesRef  `xml:"listOfReactants>speciesReference"`
	Products   []speciesRef  `xml:"listOfProducts>speciesReference"`
	Modifiers  []modifierRef `xml:"listOfModifiers>modifierSpeciesReference"`
}

type speciesRef struct {
	Species       string   `xml:"species,attr"`
	Stoichiometry *float64 `xml:"stoichiometry,attr"`
}

type modifierRef struct {
	Species string `xml:"species,attr"`
}
