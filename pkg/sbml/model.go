package sbml

import "github.com/dd0wney/cellgraph/pkg/routing"

// Space output ports a reaction-set model can route products through.
// Port 0 returns products to the owning compartment's space; membranes
// additionally export to the host bulk compartment and, crossing the
// whole boundary, to the extracellular space.
const (
	PortInternal = 0
	PortToHost   = 1
	PortToOuter  = 2
)

// SpeciesAmount is one stoichiometric species reference of a reaction.
type SpeciesAmount struct {
	Species       string  `json:"species"`
	Stoichiometry float64 `json:"stoichiometry"`
}

// Reaction holds the parameters of a single parsed reaction after set
// classification.
type Reaction struct {
	ID         string          `json:"id"`
	Address    routing.Address `json:"address"`
	Reversible bool            `json:"reversible"`

	KonSTP  float64 `json:"konSTP"`
	KonPTS  float64 `json:"konPTS"`
	KoffSTP float64 `json:"koffSTP"`
	KoffPTS float64 `json:"koffPTS"`

	Rate       string `json:"rate"`
	RejectRate string `json:"rejectRate"`

	Reactants []SpeciesAmount `json:"reactants"`
	Products  []SpeciesAmount `json:"products"`

	// RoutedPort is the highest space output port this reaction's
	// products use (see the Port constants).
	RoutedPort int `json:"routedPort"`
}

// Enzyme is a catalyst derived from reaction modifiers, together with
// the reactions it handles in parse order.
type Enzyme struct {
	ID        string   `json:"id"`
	Amount    int      `json:"amount"`
	Reactions []string `json:"reactions"`
}

// Defaults supplies values the source model may omit.
type Defaults struct {
	KonSTP  float64 `yaml:"konSTP" json:"konSTP" validate:"gt=0"`
	KonPTS  float64 `yaml:"konPTS" json:"konPTS" validate:"gt=0"`
	KoffSTP float64 `yaml:"koffSTP" json:"koffSTP" validate:"gt=0"`
	KoffPTS float64 `yaml:"koffPTS" json:"koffPTS" validate:"gt=0"`

	Rate         string `yaml:"rate" json:"rate" validate:"required"`
	RejectRate   string `yaml:"rejectRate" json:"rejectRate" validate:"required"`
	IntervalTime string `yaml:"intervalTime" json:"intervalTime" validate:"required"`

	MetaboliteAmount float64 `yaml:"metaboliteAmount" json:"metaboliteAmount"`
	EnzymeAmount     int     `yaml:"enzymeAmount" json:"enzymeAmount" validate:"min=1"`
}

// DefaultDefaults returns the stock defaults for missing model values.
func DefaultDefaults() Defaults {
	return Defaults{
		KonSTP:           0.8,
		KonPTS:           0.8,
		KoffSTP:          0.8,
		KoffPTS:          0.8,
		Rate:             "0:0:0:1",
		RejectRate:       "0:0:0:1",
		IntervalTime:     "0:0:0:1",
		MetaboliteAmount: 600000,
		EnzymeAmount:     1000,
	}
}

// Options selects the distinguished compartment roles and the defaults
// used while parsing. IntervalTimes overrides the space timing interval
// for individual compartments; unlisted compartments use the default.
type Options struct {
	ExtracellularID string            `json:"extracellularID"`
	PeriplasmID     string            `json:"periplasmID"`
	CytoplasmID     string            `json:"cytoplasmID"`
	IntervalTimes   map[string]string `json:"intervalTimes,omitempty"`
	Defaults        Defaults          `json:"defaults"`
}
