package emitter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cellgraph/pkg/assembler"
)

func TestCadmium_Space(t *testing.T) {
	var buf bytes.Buffer
	c, err := NewCadmium(&buf)
	require.NoError(t, err)

	require.NoError(t, c.Space(SpaceSpec{
		ModelName:    "c_space",
		Compartments: []string{"c"},
		OutputPorts:  3,
		InputPorts:   1,
		Product:      assembler.KindProduct,
		Reactant:     assembler.KindReactant,
		Information:  assembler.KindInformation,
	}))
	require.NoError(t, c.Finish())

	out := buf.String()
	assert.Contains(t, out, "namespace c_space {")
	assert.Contains(t, out, "struct out_0 : public cadmium::out_port<OUTPUT_TYPE> {};")
	assert.Contains(t, out, "struct out_2 : public cadmium::out_port<OUTPUT_TYPE> {};")
	assert.NotContains(t, out, "struct out_3")
	assert.Contains(t, out, "struct in_0_product")
	assert.Contains(t, out, "using c_space_definition = cell::models::space<")
	assert.Contains(t, out, `constexpr const char* c_space_compartments[] = { "c" };`)
	assert.Contains(t, out, "end of generated model")
}

func TestCadmium_EnzymeSet(t *testing.T) {
	var buf bytes.Buffer
	c, err := NewCadmium(&buf)
	require.NoError(t, err)

	require.NoError(t, c.EnzymeSet(EnzymeSetSpec{
		Compartment: "c",
		ReactionSet: "bulk",
		ModelName:   "c_bulk",
		Groups: []GroupSpec{
			{ID: "c_bulk_0", Enzymes: []string{"enz_a", "enz_b"}},
			{ID: "c_bulk_1", Enzymes: []string{"enz_c"}},
		},
		OutputPorts: 1,
	}))

	out := buf.String()
	assert.Contains(t, out, "reaction set c_bulk")
	assert.Contains(t, out, "using c_bulk_0_definition")
	assert.Contains(t, out, "using c_bulk_1_definition")
	assert.Contains(t, out, "using c_bulk_router")
	assert.Contains(t, out, "2 group(s), 1 output port(s)")
}

func TestCadmium_Coupled(t *testing.T) {
	var buf bytes.Buffer
	c, err := NewCadmium(&buf)
	require.NoError(t, err)

	space := assembler.SpaceRef("c")
	bulk := assembler.EnzymeRef("c_bulk")
	require.NoError(t, c.Coupled(&assembler.CoupledModel{
		Name:      "c",
		SubModels: []string{"c_space", "c_bulk"},
		Ports: []assembler.Port{
			{Name: "0_product", Kind: assembler.KindProduct, Direction: assembler.In},
		},
		EIC: []assembler.EIC{{OuterPort: "0_product", To: space, ToPort: "0_product"}},
		EOC: []assembler.EOC{{From: space, FromPort: "1", OuterPort: "1"}},
		IC:  []assembler.IC{{From: space, FromPort: "0", To: bulk, ToPort: "0"}},
	}))

	out := buf.String()
	assert.Contains(t, out, "coupled model c")
	assert.Contains(t, out, "cadmium::dynamic::modeling::coupled<TIME> c{")
	assert.Contains(t, out, `{ "c_space", "c_bulk" },`)
	assert.Contains(t, out, `cell::coupling::port{"0_product", "product", "in"},`)
	assert.Contains(t, out, `cell::coupling::eic{"0_product", "c_space", "0_product"},`)
	assert.Contains(t, out, `cell::coupling::eoc{"c_space", "1", "1"},`)
	assert.Contains(t, out, `cell::coupling::ic{"c_space", "0", "c_bulk", "0"},`)
}
