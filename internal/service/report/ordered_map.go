package report

// orderedMap is a string-keyed map that remembers insertion order.
// Summary rows and product rollups must come out in the order their keys
// were first seen, which a plain map cannot guarantee.
type orderedMap[V any] struct {
	keys []string
	vals map[string]V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{vals: make(map[string]V)}
}

func (m *orderedMap[V]) get(key string) (V, bool) {
	v, ok := m.vals[key]
	return v, ok
}

func (m *orderedMap[V]) set(key string, v V) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

func (m *orderedMap[V]) len() int {
	return len(m.keys)
}

// each visits entries in insertion order.
func (m *orderedMap[V]) each(fn func(key string, v V)) {
	for _, key := range m.keys {
		fn(key, m.vals[key])
	}
}
