// Package assembler turns compartment aggregates into coupled-model
// descriptors: sub-models, port declarations and the IC/EIC/EOC
// coupling relations the emitters render. Two structural patterns
// exist, bulk compartments (a space plus one bulk reaction set,
// connected outward to many peers) and membrane-bearing compartments
// (a space plus one model per internal reaction set, connected to a
// single parent on each side). The top-level assembler closes the
// organism model by wiring the compartments together.
package assembler

import "strconv"

// MessageKind tags the payload type a port carries.
type MessageKind string

// Message kinds of the simulation target.
const (
	KindReactant    MessageKind = "reactant"
	KindProduct     MessageKind = "product"
	KindInformation MessageKind = "information"
)

// Direction of a declared port.
type Direction string

// Port directions.
const (
	In  Direction = "in"
	Out Direction = "out"
)

// Port is a declared connection point of a coupled model.
type Port struct {
	Name      string
	Kind      MessageKind
	Direction Direction
}

// ModelRef names a sub-model together with the emitted class that
// declares its ports.
type ModelRef struct {
	Name  string
	Class string
}

// IC is an internal coupling edge between two sub-models.
type IC struct {
	From     ModelRef
	FromPort string
	To       ModelRef
	ToPort   string
}

// EIC wires an outer input port to a sub-model input port.
type EIC struct {
	OuterPort string
	To        ModelRef
	ToPort    string
}

// EOC wires a sub-model output port to an outer output port.
type EOC struct {
	From      ModelRef
	FromPort  string
	OuterPort string
}

// CoupledModel is the assembled descriptor of one compartment, or of
// the whole organism. It is constructed once and never mutated.
type CoupledModel struct {
	Name      string
	SubModels []string
	Ports     []Port
	EIC       []EIC
	EOC       []EOC
	IC        []IC
}

// enzymeModelClass is the emitted class shared by all reaction-set
// models.
const enzymeModelClass = "cell::models::enzyme"

// EnzymeRef returns the reference of a reaction-set model.
func EnzymeRef(name string) ModelRef {
	return ModelRef{Name: name, Class: enzymeModelClass}
}

// SpaceName returns the space model name of a compartment.
func SpaceName(cid string) string {
	return cid + "_space"
}

// SpaceRef returns the reference of a compartment's space model. The
// emitted ports struct is namespaced by the model name.
func SpaceRef(cid string) ModelRef {
	name := SpaceName(cid)
	return ModelRef{Name: name, Class: "cell::structs::" + name + "::" + name}
}

// CoupledRef returns the reference of an already-assembled coupled
// model, used by the top-level wiring.
func CoupledRef(name string) ModelRef {
	return ModelRef{Name: name, Class: name}
}

// routePort names a numbered routing port.
func routePort(n int) string {
	return strconv.Itoa(n)
}

// productPort and informationPort name the typed output ports of a
// model at the given index.
func productPort(n int) string {
	return strconv.Itoa(n) + "_product"
}

func informationPort(n int) string {
	return strconv.Itoa(n) + "_information"
}
