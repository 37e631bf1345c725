package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_PeriplasmMembranes(t *testing.T) {
	eic, table, err := Build("p", []string{"outer", "inner", "trans"}, nil)
	require.NoError(t, err)

	wantEIC := map[string]int{"outer": 0, "inner": 1, "trans": 2}
	require.Equal(t, len(wantEIC), eic.Len())
	for name, port := range wantEIC {
		got, ok := eic.Port(name)
		require.True(t, ok, "membrane %s missing", name)
		assert.Equal(t, port, got, "membrane %s", name)
	}

	wantPorts := []struct {
		set  string
		port int
	}{
		{Bulk, 0},
		{"outer", 1},
		{"inner", 2},
		{"trans", 3},
	}
	require.Equal(t, len(wantPorts), table.Len())
	for _, w := range wantPorts {
		port, ok := table.Port(Address{Compartment: "p", ReactionSet: w.set})
		require.True(t, ok, "set %s missing", w.set)
		assert.Equal(t, w.port, port, "set %s", w.set)
	}
}

func TestBuild_ExternalSetsAfterInternal(t *testing.T) {
	external := []External{
		{Compartment: "p", ReactionSets: []string{"inner", "trans"}},
		{Compartment: "m", ReactionSets: []string{"membrane"}},
	}
	_, table, err := Build("c", nil, external)
	require.NoError(t, err)

	want := []Entry{
		{Address{"c", Bulk}, 0},
		{Address{"p", "inner"}, 1},
		{Address{"p", "trans"}, 2},
		{Address{"m", "membrane"}, 3},
	}
	var got []Entry
	for e := range table.Entries() {
		got = append(got, e)
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 4, table.PortCount())
}

func TestBuild_DuplicateMembraneRejected(t *testing.T) {
	_, _, err := Build("p", []string{"outer", "outer"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateMembrane)
}

func TestBuild_DuplicateExternalRejected(t *testing.T) {
	external := []External{
		{Compartment: "p", ReactionSets: []string{"inner", "inner"}},
	}
	_, _, err := Build("c", nil, external)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateAddress)
}

func TestBuild_MembraneNamedBulkRejected(t *testing.T) {
	// The bulk set is implicit; a membrane reusing its name would
	// collide in the routing table.
	_, _, err := Build("p", []string{Bulk}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateAddress)
}

func TestAddress_String(t *testing.T) {
	a := Address{Compartment: "c", ReactionSet: Bulk}
	assert.Equal(t, "c_bulk", a.String())
}
