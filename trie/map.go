package trie

import "iter"

// Pair is a key sequence with its value.
type Pair[V any] struct {
	Keys []any
	Val  V
}

// Map maps key sequences to values. The zero value is an empty Map using
// the selected backend.
type Map[V any] struct {
	tree tree[V]
}

func NewMap[V any](opts ...Option) *Map[V] {
	return &Map[V]{tree: newTree[V](opts)}
}

// MapFrom returns a Map holding pairs. Later pairs overwrite earlier ones
// with the same keys.
func MapFrom[V any](pairs []Pair[V], opts ...Option) *Map[V] {
	m := NewMap[V](opts...)
	for _, p := range pairs {
		m.Set(p.Keys, p.Val)
	}
	return m
}

// Get returns the value stored under keys.
func (m *Map[V]) Get(keys []any) (V, bool) {
	checkKeys("Get", keys)
	return m.tree.get(keys)
}

// Set associates val with keys. It returns the previous value and whether
// one was replaced.
func (m *Map[V]) Set(keys []any, val V) (V, bool) {
	checkKeys("Set", keys)
	prev, res := m.tree.set(&m.tree.root, keys, val)
	return prev, res == replaced
}

// Delete removes keys and returns the value it held.
func (m *Map[V]) Delete(keys []any) (prev V, ok bool) {
	checkKeys("Delete", keys)
	prev, res := m.tree.remove(&m.tree.root, keys)
	return prev, res == removed
}

func (m *Map[V]) Has(keys []any) bool {
	checkKeys("Has", keys)
	return m.tree.has(keys)
}

// Size returns the number of entries whose keys start with prefix. A nil
// or empty prefix counts everything.
func (m *Map[V]) Size(prefix []any) int {
	return m.tree.size(prefix)
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return m.tree.root.count
}

// Clear removes the entries under prefix and returns how many were removed.
func (m *Map[V]) Clear(prefix []any) int {
	return m.tree.clear(&m.tree.root, prefix)
}

// ForEach calls visit for every entry under prefix until visit returns
// false, and reports whether it went through all of them. Each call gets a
// fresh copy of the full key sequence.
//
// visit must not modify m.
func (m *Map[V]) ForEach(prefix []any, visit func(val V, keys []any) bool) bool {
	checkVisitor("ForEach", visit == nil)
	return m.tree.each(prefix, true, visit)
}

// All returns an iterator over the entries under prefix.
func (m *Map[V]) All(prefix []any) iter.Seq2[[]any, V] {
	return func(yield func([]any, V) bool) {
		m.tree.each(prefix, true, func(val V, keys []any) bool {
			return yield(keys, val)
		})
	}
}

func (m *Map[V]) Keys(prefix []any) [][]any {
	keys := make([][]any, 0, m.Size(prefix))
	m.tree.each(prefix, true, func(_ V, k []any) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func (m *Map[V]) Values(prefix []any) []V {
	vals := make([]V, 0, m.Size(prefix))
	m.tree.each(prefix, false, func(val V, _ []any) bool {
		vals = append(vals, val)
		return true
	})
	return vals
}

func (m *Map[V]) Pairs(prefix []any) []Pair[V] {
	pairs := make([]Pair[V], 0, m.Size(prefix))
	m.tree.each(prefix, true, func(val V, k []any) bool {
		pairs = append(pairs, Pair[V]{k, val})
		return true
	})
	return pairs
}

// Merge copies the entries of other under prefix into m, overwriting
// values of common keys. Returns m.
func (m *Map[V]) Merge(other *Map[V], prefix []any) *Map[V] {
	if other != nil && other != m {
		other.tree.each(prefix, true, func(val V, k []any) bool {
			m.tree.set(&m.tree.root, k, val)
			return true
		})
	}
	return m
}
