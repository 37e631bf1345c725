package ordered

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_InsertionOrder(t *testing.T) {
	m := New[string, int]()
	m.Set("bulk", 0)
	m.Set("outer", 1)
	m.Set("inner", 2)

	assert.Equal(t, []string{"bulk", "outer", "inner"}, m.Keys())

	// Overwriting must not move the key.
	m.Set("outer", 9)
	assert.Equal(t, []string{"bulk", "outer", "inner"}, m.Keys())

	v, ok := m.Get("outer")
	require.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestMap_Delete(t *testing.T) {
	m := New[string, string]()
	m.Set("a", "1")
	m.Set("b", "2")
	m.Set("c", "3")

	require.True(t, m.Delete("b"))
	assert.False(t, m.Has("b"))
	assert.Equal(t, []string{"a", "c"}, m.Keys())

	assert.False(t, m.Delete("b"))
	assert.Equal(t, 2, m.Len())
}

func TestMap_All_StopsEarly(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 10; i++ {
		m.Set(i, i*i)
	}

	seen := 0
	for range m.All() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestMap_PairsRoundTrip(t *testing.T) {
	m := New[string, float64]()
	m.Set("glucose", 600000)
	m.Set("atp", 1000)
	m.Set("adp", 0)

	got := FromPairs(m.Pairs())
	assert.Equal(t, m.Keys(), got.Keys())
	for k, v := range m.All() {
		gv, ok := got.Get(k)
		require.True(t, ok)
		assert.Equal(t, v, gv)
	}
}

func TestMap_Empty(t *testing.T) {
	m := New[string, int]()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Keys())
	assert.Empty(t, m.Pairs())
	for range m.All() {
		t.Fatal("empty map must not yield entries")
	}
}
