package phf

import "fmt"

// Map is an immutable string-keyed map backed by a perfect hash Table.
type Map[V any] struct {
	table  *Table
	values []V
}

// NewMap builds a Map where keys[i] maps to values[i]. It panics when the
// slices differ in length or the table cannot be built; it is meant for
// key sets already validated at generation time.
func NewMap[V any](keys []string, values []V) *Map[V] {
	if len(keys) != len(values) {
		panic(fmt.Sprintf("phf: %d keys but %d values", len(keys), len(values)))
	}
	return &Map[V]{
		table:  MustBuild(keys),
		values: values,
	}
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	i, ok := m.table.Lookup(key)
	if !ok {
		return zero, false
	}
	return m.values[i], true
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return m.table.Len()
}

// Keys returns the keys in insertion order.
func (m *Map[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return m.table.Keys()
}
