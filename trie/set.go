package trie

import "iter"

// Set holds key sequences. The zero value is an empty Set using the
// selected backend.
type Set struct {
	tree tree[struct{}]
}

func NewSet(opts ...Option) *Set {
	return &Set{tree: newTree[struct{}](opts)}
}

// SetFrom returns a Set holding every key sequence of keys.
func SetFrom(keys [][]any, opts ...Option) *Set {
	s := NewSet(opts...)
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts keys. It reports whether they were not present yet.
func (s *Set) Add(keys []any) bool {
	checkKeys("Add", keys)
	_, res := s.tree.set(&s.tree.root, keys, struct{}{})
	return res == inserted
}

// Delete removes keys. It reports whether they were present.
func (s *Set) Delete(keys []any) bool {
	checkKeys("Delete", keys)
	_, res := s.tree.remove(&s.tree.root, keys)
	return res == removed
}

func (s *Set) Has(keys []any) bool {
	checkKeys("Has", keys)
	return s.tree.has(keys)
}

// Size returns the number of key sequences starting with prefix. A nil or
// empty prefix counts everything.
func (s *Set) Size(prefix []any) int {
	return s.tree.size(prefix)
}

func (s *Set) Len() int {
	return s.tree.root.count
}

// Clear removes the key sequences under prefix and returns how many were
// removed.
func (s *Set) Clear(prefix []any) int {
	return s.tree.clear(&s.tree.root, prefix)
}

// ForEach calls visit for every key sequence under prefix until visit
// returns false, and reports whether it went through all of them. Each
// call gets a fresh copy.
//
// visit must not modify s.
func (s *Set) ForEach(prefix []any, visit func(keys []any) bool) bool {
	checkVisitor("ForEach", visit == nil)
	return s.tree.each(prefix, true, func(_ struct{}, keys []any) bool {
		return visit(keys)
	})
}

// All returns an iterator over the key sequences under prefix.
func (s *Set) All(prefix []any) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		s.tree.each(prefix, true, func(_ struct{}, keys []any) bool {
			return yield(keys)
		})
	}
}

func (s *Set) Keys(prefix []any) [][]any {
	keys := make([][]any, 0, s.Size(prefix))
	s.tree.each(prefix, true, func(_ struct{}, k []any) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values is Keys: a set stores its keys as its values.
func (s *Set) Values(prefix []any) [][]any {
	return s.Keys(prefix)
}

// Pairs returns every key sequence under prefix paired with itself.
func (s *Set) Pairs(prefix []any) [][2][]any {
	pairs := make([][2][]any, 0, s.Size(prefix))
	s.tree.each(prefix, true, func(_ struct{}, k []any) bool {
		pairs = append(pairs, [2][]any{k, k})
		return true
	})
	return pairs
}

// Merge adds the key sequences of other under prefix to s. Returns s.
func (s *Set) Merge(other *Set, prefix []any) *Set {
	if other != nil && other != s {
		other.tree.each(prefix, true, func(_ struct{}, k []any) bool {
			s.tree.set(&s.tree.root, k, struct{}{})
			return true
		})
	}
	return s
}
