package ordmap

import (
	"errors"
	"iter"
)

var (
	// ErrKeyExists is returned when a key already exists in the map.
	ErrKeyExists = errors.New("key already exists")
)

// Map is a map that iterates its keys in first insertion order.
type Map[K comparable, V any] struct {
	m    map[K]int
	keys []K
	vals []V
}

// New creates a new Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]int)}
}

// Add adds a key-value pair to the map. it returns error if the key already exists.
func (m *Map[K, V]) Add(key K, value V) error {
	if _, ok := m.m[key]; ok {
		return ErrKeyExists
	}

	m.m[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, value)
	return nil
}

// Get returns the value of a key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	i, ok := m.m[key]
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

// GetOrAdd returns the value of a key, adding the result of init first if the key is missing.
// The second result reports whether the value was already present.
func (m *Map[K, V]) GetOrAdd(key K, init func() V) (V, bool) {
	if v, ok := m.Get(key); ok {
		return v, true
	}

	v := init()
	m.m[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, v)
	return v, false
}

// Iter returns an iterator that iterates over all key-value pairs.
func (m *Map[K, V]) Iter() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

// Len returns the number of key-value pairs in the map.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}
