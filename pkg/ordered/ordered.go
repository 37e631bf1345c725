package ordered

import "iter"

// Map is an insertion-ordered map with unique keys. Iteration order is
// the order in which keys were first inserted; overwriting a value does
// not move its key. Port numbers, group indices and coupling positions
// downstream are all derived from this order, so it must stay stable.
//
// Map is not safe for concurrent use.
type Map[K comparable, V any] struct {
	keys []K
	vals map[K]V
}

// Pair is a single key/value entry, used for order-preserving
// serialization of a Map.
type Pair[K comparable, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// New creates an empty ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{vals: make(map[K]V)}
}

// Set inserts or overwrites the value for key. A new key is appended to
// the iteration order; an existing key keeps its position.
func (m *Map[K, V]) Set(key K, value V) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = value
}

// Get returns the value for key and whether it is present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.vals[key]
	return ok
}

// Delete removes key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	if _, ok := m.vals[key]; !ok {
		return false
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates entries in insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// Pairs returns the entries in insertion order.
func (m *Map[K, V]) Pairs() []Pair[K, V] {
	out := make([]Pair[K, V], 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Pair[K, V]{Key: k, Value: m.vals[k]})
	}
	return out
}

// FromPairs builds an ordered map from entries, preserving their order.
// Later duplicates overwrite earlier values without moving the key.
func FromPairs[K comparable, V any](pairs []Pair[K, V]) *Map[K, V] {
	m := New[K, V]()
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}
