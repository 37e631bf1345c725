package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cellgraph/pkg/model"
	"github.com/dd0wney/cellgraph/pkg/ordered"
	"github.com/dd0wney/cellgraph/pkg/routing"
	"github.com/dd0wney/cellgraph/pkg/sbml"
)

// testCompartment builds a compartment aggregate directly, bypassing
// the parser. outputPorts maps each internal set name to its model's
// output-port count.
func testCompartment(t *testing.T, cid string, membranes []string, external []routing.External, outputPorts map[string]int) *model.Compartment {
	t.Helper()
	eic, table, err := routing.Build(cid, membranes, external)
	require.NoError(t, err)

	c := &model.Compartment{ID: cid, Membranes: membranes, EIC: eic, Table: table}
	for _, name := range append([]string{routing.Bulk}, membranes...) {
		ports := outputPorts[name]
		if ports == 0 {
			ports = 1
		}
		c.Sets = append(c.Sets, &model.EnzymeSet{
			Address:     routing.Address{Compartment: cid, ReactionSet: name},
			Enzymes:     ordered.New[string, *sbml.Enzyme](),
			OutputPorts: ports,
		})
	}
	return c
}

func TestBulk_Cytoplasm(t *testing.T) {
	external := []routing.External{
		{Compartment: "p", ReactionSets: []string{sbml.SetInner, sbml.SetTrans}},
		{Compartment: "m", ReactionSets: []string{sbml.SetMembrane}},
	}
	c := testCompartment(t, "c", nil, external, nil)

	got, err := Bulk(c)
	require.NoError(t, err)

	assert.Equal(t, "c", got.Name)
	assert.Equal(t, []string{"c_space", "c_bulk"}, got.SubModels)

	space := SpaceRef("c")
	bulk := EnzymeRef("c_bulk")
	assert.Equal(t, []IC{
		{From: space, FromPort: "0", To: bulk, ToPort: "0"},
		{From: bulk, FromPort: "0_product", To: space, ToPort: "0_product"},
		{From: bulk, FromPort: "0_information", To: space, ToPort: "0_information"},
	}, got.IC)

	assert.Equal(t, []EIC{
		{OuterPort: "0_product", To: space, ToPort: "0_product"},
		{OuterPort: "0_information", To: space, ToPort: "0_information"},
	}, got.EIC)

	// Foreign routing entries (ports 1..3) surface unchanged.
	assert.Equal(t, []EOC{
		{From: space, FromPort: "1", OuterPort: "1"},
		{From: space, FromPort: "2", OuterPort: "2"},
		{From: space, FromPort: "3", OuterPort: "3"},
	}, got.EOC)

	assert.Equal(t, []Port{
		{Name: "0_product", Kind: KindProduct, Direction: In},
		{Name: "0_information", Kind: KindInformation, Direction: In},
		{Name: "1", Kind: KindReactant, Direction: Out},
		{Name: "2", Kind: KindReactant, Direction: Out},
		{Name: "3", Kind: KindReactant, Direction: Out},
	}, got.Ports)
}

func TestBulk_RejectsMultipleSets(t *testing.T) {
	c := testCompartment(t, "c", nil, nil, nil)
	c.Sets = append(c.Sets, &model.EnzymeSet{
		Address: routing.Address{Compartment: "c", ReactionSet: "extra"},
	})

	_, err := Bulk(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBulkSetCount)

	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "c", serr.Compartment)
}

func TestOrganelle_Periplasm(t *testing.T) {
	membranes := []string{sbml.SetOuter, sbml.SetInner, sbml.SetTrans}
	outputs := map[string]int{
		routing.Bulk:  1,
		sbml.SetOuter: 3,
		sbml.SetInner: 2,
		sbml.SetTrans: 3,
	}
	c := testCompartment(t, "p", membranes, nil, outputs)

	got, err := Organelle(c)
	require.NoError(t, err)

	assert.Equal(t, "p", got.Name)
	assert.Equal(t, []string{"p_space", "p_bulk", "p_outer", "p_inner", "p_trans"}, got.SubModels)

	// Three IC edges per routed set: space to set, products back,
	// information back.
	require.Len(t, got.IC, 12)
	space := SpaceRef("p")
	assert.Equal(t, IC{From: space, FromPort: "0", To: EnzymeRef("p_bulk"), ToPort: "0"}, got.IC[0])
	assert.Equal(t, IC{From: EnzymeRef("p_bulk"), FromPort: "0_product", To: space, ToPort: "0_product"}, got.IC[1])
	assert.Equal(t, IC{From: space, FromPort: "3", To: EnzymeRef("p_trans"), ToPort: "0"}, got.IC[9])

	// Outward ports: outer exports 1 and 2, inner only 1, trans 1 and
	// 2. Port indices are declared once.
	assert.Equal(t, []EOC{
		{From: EnzymeRef("p_outer"), FromPort: "1_product", OuterPort: "1_product"},
		{From: EnzymeRef("p_outer"), FromPort: "1_information", OuterPort: "1_information"},
		{From: EnzymeRef("p_outer"), FromPort: "2_product", OuterPort: "2_product"},
		{From: EnzymeRef("p_outer"), FromPort: "2_information", OuterPort: "2_information"},
		{From: EnzymeRef("p_inner"), FromPort: "1_product", OuterPort: "1_product"},
		{From: EnzymeRef("p_inner"), FromPort: "1_information", OuterPort: "1_information"},
		{From: EnzymeRef("p_trans"), FromPort: "1_product", OuterPort: "1_product"},
		{From: EnzymeRef("p_trans"), FromPort: "1_information", OuterPort: "1_information"},
		{From: EnzymeRef("p_trans"), FromPort: "2_product", OuterPort: "2_product"},
		{From: EnzymeRef("p_trans"), FromPort: "2_information", OuterPort: "2_information"},
	}, got.EOC)

	assert.Equal(t, []EIC{
		{OuterPort: "0", To: EnzymeRef("p_outer"), ToPort: "0"},
		{OuterPort: "1", To: EnzymeRef("p_inner"), ToPort: "0"},
		{OuterPort: "2", To: EnzymeRef("p_trans"), ToPort: "0"},
	}, got.EIC)

	assert.Equal(t, []Port{
		{Name: "1_product", Kind: KindProduct, Direction: Out},
		{Name: "1_information", Kind: KindInformation, Direction: Out},
		{Name: "2_product", Kind: KindProduct, Direction: Out},
		{Name: "2_information", Kind: KindInformation, Direction: Out},
		{Name: "0", Kind: KindReactant, Direction: In},
		{Name: "1", Kind: KindReactant, Direction: In},
		{Name: "2", Kind: KindReactant, Direction: In},
	}, got.Ports)
}

func TestOrganelle_RejectsForeignAddress(t *testing.T) {
	external := []routing.External{{Compartment: "x", ReactionSets: []string{routing.Bulk}}}
	c := testCompartment(t, "m", []string{sbml.SetMembrane}, external, nil)

	_, err := Organelle(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForeignAddress)
}

func TestOrganelle_AllCouplingsStayInside(t *testing.T) {
	c := testCompartment(t, "m", []string{sbml.SetMembrane}, nil, map[string]int{sbml.SetMembrane: 2})

	got, err := Organelle(c)
	require.NoError(t, err)

	// Every coupling endpoint belongs to the compartment itself.
	own := map[string]bool{"m_space": true, "m_bulk": true, "m_membrane": true}
	for _, ic := range got.IC {
		assert.True(t, own[ic.From.Name], "IC source %s", ic.From.Name)
		assert.True(t, own[ic.To.Name], "IC destination %s", ic.To.Name)
	}
	for _, eic := range got.EIC {
		assert.True(t, own[eic.To.Name], "EIC destination %s", eic.To.Name)
	}
	for _, eoc := range got.EOC {
		assert.True(t, own[eoc.From.Name], "EOC source %s", eoc.From.Name)
	}
}
