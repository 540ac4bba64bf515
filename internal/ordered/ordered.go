// Package ordered provides a string-keyed map that remembers insertion
// order. Schema fields and collected results both need to iterate in the
// order the document author wrote, which plain Go maps cannot guarantee.
package ordered

// Map associates string keys with values while preserving the order in
// which keys were first set. The zero value is ready to use. Replacing an
// existing key keeps its original position.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// Set stores value under key, appending the key when it is new.
func (m *Map[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key and whether it exists.
func (m *Map[V]) Get(key string) (V, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Has reports whether key has been set.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of keys.
func (m *Map[V]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Visit calls fn for each key/value pair in insertion order. Returning
// false from fn stops the walk.
func (m *Map[V]) Visit(fn func(key string, value V) bool) {
	for _, key := range m.keys {
		if !fn(key, m.values[key]) {
			return
		}
	}
}
