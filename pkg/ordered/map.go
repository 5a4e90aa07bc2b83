// Package ordered provides an insertion-ordered map.
package ordered

// Map is a map that remembers the order in which keys were first inserted.
// The zero value is not usable; call New.
type Map[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

// New creates an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{index: make(map[K]int)}
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	i, ok := m.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.index[k]
	return ok
}

// Set stores v under k. A new key goes to the end; an existing key keeps
// its position.
func (m *Map[K, V]) Set(k K, v V) {
	if i, ok := m.index[k]; ok {
		m.vals[i] = v
		return
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
}

// GetOrInit returns a pointer to the value under k, inserting newV() first
// if k is absent. The pointer is valid until the next insertion.
func (m *Map[K, V]) GetOrInit(k K, newV func() V) *V {
	i, ok := m.index[k]
	if !ok {
		i = len(m.keys)
		m.index[k] = i
		m.keys = append(m.keys, k)
		m.vals = append(m.vals, newV())
	}
	return &m.vals[i]
}

// Len returns the number of keys.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each calls fn for every entry in insertion order.
func (m *Map[K, V]) Each(fn func(k K, v V)) {
	for i, k := range m.keys {
		fn(k, m.vals[i])
	}
}

// Set is an insertion-ordered set.
type Set[K comparable] struct {
	m *Map[K, struct{}]
}

// NewSet creates an empty Set.
func NewSet[K comparable]() *Set[K] {
	return &Set[K]{m: New[K, struct{}]()}
}

// Add inserts k and reports whether it was new.
func (s *Set[K]) Add(k K) bool {
	if s.m.Has(k) {
		return false
	}
	s.m.Set(k, struct{}{})
	return true
}

// Has reports whether k is present.
func (s *Set[K]) Has(k K) bool {
	return s.m.Has(k)
}

// Len returns the number of members.
func (s *Set[K]) Len() int {
	return s.m.Len()
}

// Values returns the members in insertion order.
func (s *Set[K]) Values() []K {
	return s.m.Keys()
}
