package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cellgraph/pkg/model"
	"github.com/dd0wney/cellgraph/pkg/routing"
	"github.com/dd0wney/cellgraph/pkg/sbml"
)

// topFixture builds the standard three-role topology plus one
// organelle m whose membrane model has the given output-port count.
func topFixture(t *testing.T, organelleOutputs int) (cyto, extra, peri, org *model.Compartment) {
	t.Helper()

	cyto = testCompartment(t, "c", nil, []routing.External{
		{Compartment: "p", ReactionSets: []string{sbml.SetInner, sbml.SetTrans}},
		{Compartment: "m", ReactionSets: []string{sbml.SetMembrane}},
	}, nil)

	extra = testCompartment(t, "e", nil, []routing.External{
		{Compartment: "p", ReactionSets: []string{sbml.SetOuter, sbml.SetTrans}},
	}, nil)

	peri = testCompartment(t, "p", []string{sbml.SetOuter, sbml.SetInner, sbml.SetTrans}, nil, map[string]int{
		sbml.SetOuter: 3,
		sbml.SetInner: 2,
		sbml.SetTrans: 3,
	})

	org = testCompartment(t, "m", []string{sbml.SetMembrane}, nil, map[string]int{
		sbml.SetMembrane: organelleOutputs,
	})
	return cyto, extra, peri, org
}

func TestTop_Wiring(t *testing.T) {
	cyto, extra, peri, org := topFixture(t, 2)

	got, err := Top("cell", cyto, extra, peri, []*model.Compartment{org})
	require.NoError(t, err)

	assert.Equal(t, "cell", got.Name)
	assert.Equal(t, []string{"c", "e", "p", "m"}, got.SubModels)

	// The organism model is closed.
	assert.Empty(t, got.Ports)
	assert.Empty(t, got.EIC)
	assert.Empty(t, got.EOC)

	c := CoupledRef("c")
	e := CoupledRef("e")
	p := CoupledRef("p")
	m := CoupledRef("m")

	assert.Equal(t, []IC{
		// Periplasm output 1 returns to the cytoplasm.
		{From: p, FromPort: "1_product", To: c, ToPort: "0_product"},
		{From: p, FromPort: "1_information", To: c, ToPort: "0_information"},
		// Cytoplasm routing entries targeting the periplasm drive its
		// membrane inputs (inner at port 1, trans at port 2).
		{From: c, FromPort: "1", To: p, ToPort: "1"},
		{From: c, FromPort: "2", To: p, ToPort: "2"},
		// Periplasm output 2 returns to the extracellular space.
		{From: p, FromPort: "2_product", To: e, ToPort: "0_product"},
		{From: p, FromPort: "2_information", To: e, ToPort: "0_information"},
		// Extracellular routing entries drive outer (port 0) and trans
		// (port 2).
		{From: e, FromPort: "1", To: p, ToPort: "0"},
		{From: e, FromPort: "2", To: p, ToPort: "2"},
		// The cytoplasm drives the organelle membrane; the organelle
		// returns through output 1.
		{From: c, FromPort: "3", To: m, ToPort: "0"},
		{From: m, FromPort: "1_product", To: c, ToPort: "0_product"},
		{From: m, FromPort: "1_information", To: c, ToPort: "0_information"},
	}, got.IC)
}

func TestTop_OrganelleWithOuterPort(t *testing.T) {
	cyto, extra, peri, org := topFixture(t, 3)

	got, err := Top("cell", cyto, extra, peri, []*model.Compartment{org})
	require.NoError(t, err)

	m := CoupledRef("m")
	e := CoupledRef("e")
	assert.Contains(t, got.IC, IC{From: m, FromPort: "2_product", To: e, ToPort: "0_product"})
	assert.Contains(t, got.IC, IC{From: m, FromPort: "2_information", To: e, ToPort: "0_information"})
}

func TestTop_OrganelleWithoutOuterPort(t *testing.T) {
	cyto, extra, peri, org := topFixture(t, 2)

	got, err := Top("cell", cyto, extra, peri, []*model.Compartment{org})
	require.NoError(t, err)

	for _, ic := range got.IC {
		if ic.From.Name == "m" {
			assert.NotEqual(t, "2_product", ic.FromPort)
			assert.NotEqual(t, "2_information", ic.FromPort)
		}
	}
}

func TestTop_MissingMembraneRejected(t *testing.T) {
	cyto, extra, _, org := topFixture(t, 2)

	// A periplasm without the trans membrane cannot accept the bulk
	// compartments' trans routing entries.
	peri := testCompartment(t, "p", []string{sbml.SetOuter, sbml.SetInner}, nil, nil)

	_, err := Top("cell", cyto, extra, peri, []*model.Compartment{org})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMembraneNotFound)
}

func TestTop_MissingOrganelleRouteRejected(t *testing.T) {
	_, extra, peri, org := topFixture(t, 2)

	// A cytoplasm that never routes to the organelle cannot drive its
	// membrane input.
	cyto := testCompartment(t, "c", nil, []routing.External{
		{Compartment: "p", ReactionSets: []string{sbml.SetInner, sbml.SetTrans}},
	}, nil)

	_, err := Top("cell", cyto, extra, peri, []*model.Compartment{org})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}
