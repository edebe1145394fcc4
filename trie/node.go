package trie

import (
	"slices"

	"github.com/aglyzov/multikey/keyed"
)

// result tells the ancestors of a node how its count changed.
type result int

const (
	notFound result = iota
	inserted
	replaced
	removed
)

// node is one path segment. children is nil while the node has none.
type node[V any] struct {
	children keyed.Table[*node[V]]
	// count is the number of terminal nodes in the subtree, this one included
	count    int
	val      V
	terminal bool
	// label is the key that leads here from the parent
	label any
}

type tree[V any] struct {
	root    node[V]
	backend keyed.Backend
}

func (n *node[V]) child(key any) *node[V] {
	if n.children == nil {
		return nil
	}
	c, _ := n.children.Get(key)
	return c
}

// prune drops the edge to an emptied child.
func (n *node[V]) prune(key any) {
	n.children.Delete(key)
	if n.children.Len() == 0 {
		n.children = nil
	}
}

// find returns the node at the end of the path or nil.
func (t *tree[V]) find(keys []any) *node[V] {
	n := &t.root
	for _, key := range keys {
		if n = n.child(key); n == nil {
			return nil
		}
	}
	return n
}

func (t *tree[V]) get(keys []any) (val V, ok bool) {
	if n := t.find(keys); n != nil && n.terminal {
		return n.val, true
	}
	return
}

func (t *tree[V]) has(keys []any) bool {
	n := t.find(keys)
	return n != nil && n.terminal
}

func (t *tree[V]) size(prefix []any) int {
	if n := t.find(prefix); n != nil {
		return n.count
	}
	return 0
}

func (t *tree[V]) set(n *node[V], keys []any, val V) (prev V, res result) {
	if len(keys) == 0 {
		if n.terminal {
			prev, n.val = n.val, val
			return prev, replaced
		}
		n.val, n.terminal = val, true
		n.count++
		return prev, inserted
	}

	key := keys[0]
	c := n.child(key)
	if c == nil {
		if n.children == nil {
			n.children = keyed.NewWith[*node[V]](t.backend)
		}
		c = &node[V]{label: key}
		n.children.Set(key, c)
	}
	if prev, res = t.set(c, keys[1:], val); res == inserted {
		n.count++
	}
	return
}

func (t *tree[V]) remove(n *node[V], keys []any) (prev V, res result) {
	if len(keys) == 0 {
		if !n.terminal {
			return prev, notFound
		}
		var zero V
		prev, n.val, n.terminal = n.val, zero, false
		n.count--
		return prev, removed
	}

	key := keys[0]
	c := n.child(key)
	if c == nil {
		return prev, notFound
	}
	if prev, res = t.remove(c, keys[1:]); res != removed {
		return
	}
	if c.count == 0 {
		n.prune(key)
	}
	n.count--
	return
}

// clear detaches everything under the prefix and returns the number of
// entries removed.
func (t *tree[V]) clear(n *node[V], prefix []any) int {
	if len(prefix) == 0 {
		cnt := n.count
		if cnt == 0 {
			return 0
		}
		var zero V
		n.val, n.terminal = zero, false
		n.children, n.count = nil, 0
		return cnt
	}

	key := prefix[0]
	c := n.child(key)
	if c == nil {
		return 0
	}
	cnt := t.clear(c, prefix[1:])
	if cnt == 0 {
		return 0
	}
	if c.count == 0 {
		n.prune(key)
	}
	n.count -= cnt
	return cnt
}

// walker visits terminal nodes depth-first, a node before its children.
// With track set every visit gets its own copy of the path.
type walker[V any] struct {
	path  []any
	track bool
	visit func(val V, keys []any) bool
}

func (w *walker[V]) walk(n *node[V], prefix []any) bool {
	if len(prefix) > 0 {
		c := n.child(prefix[0])
		if c == nil {
			return true
		}
		w.push(c)
		ok := w.walk(c, prefix[1:])
		w.pop()
		return ok
	}

	if n.terminal {
		var keys []any
		if w.track {
			keys = slices.Clone(w.path)
		}
		if !w.visit(n.val, keys) {
			return false
		}
	}
	if n.children == nil {
		return true
	}
	return n.children.ForEach(func(_ any, c *node[V]) bool {
		w.push(c)
		ok := w.walk(c, nil)
		w.pop()
		return ok
	})
}

func (w *walker[V]) push(c *node[V]) {
	if w.track {
		w.path = append(w.path, c.label)
	}
}

func (w *walker[V]) pop() {
	if w.track {
		w.path = w.path[:len(w.path)-1]
	}
}

// each runs visit over the entries under prefix. The prefix is copied
// first so visit may modify the caller's slice.
func (t *tree[V]) each(prefix []any, track bool, visit func(V, []any) bool) bool {
	w := walker[V]{track: track, visit: visit}
	return w.walk(&t.root, slices.Clone(prefix))
}
