// Package ordered provides an insertion-ordered map used by the URL query
// and the parameter collection.
package ordered

// Map is a string keyed map that remembers insertion order. Replacing the
// value of an existing key keeps its original position.
// The zero value is ready to use.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// Set upserts key.
func (m *Map[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}

	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Delete removes key, keeping the order of the remaining keys.
func (m *Map[V]) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}

	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the keys in insertion order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of keys.
func (m *Map[V]) Len() int {
	return len(m.keys)
}

// Clear removes every key.
func (m *Map[V]) Clear() {
	m.keys = nil
	m.values = nil
}

// All calls fn for every entry in insertion order until fn returns false.
func (m *Map[V]) All(fn func(key string, value V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clone returns a shallow copy. cloneValue, when non-nil, is applied to
// every value so slice values can be deep-copied.
func (m *Map[V]) Clone(cloneValue func(V) V) Map[V] {
	var out Map[V]
	for _, k := range m.keys {
		v := m.values[k]
		if cloneValue != nil {
			v = cloneValue(v)
		}
		out.Set(k, v)
	}
	return out
}
