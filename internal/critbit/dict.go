// Package critbit implements a crit-bit tree keyed by strings.
//
// Keys are compared as sequences of virtual 9-bit bytes: every real byte has
// bit 8 set and the position past the end of a key reads as 0. This lets
// keys contain NUL bytes and be prefixes of one another.
package critbit

type item[V any] struct {
	Key string
	Val V
}

// ref holds either an item or a node pointer
type ref[V any] struct {
	item[V]
	node *node[V]
}

type node[V any] struct {
	child [2]ref[V]
	// off is the offset of the differing byte
	off int
	// bit contains the single crit bit in the differing virtual byte
	bit uint16
}

// Dict is a string-keyed dictionary. The zero value is empty and
// ready to use.
type Dict[V any] struct {
	size int
	root ref[V]
}

func vbyte(key string, off int) uint16 {
	if off < len(key) {
		return 0x100 | uint16(key[off])
	}
	return 0
}

// dir calculates the direction for the given key
func (n *node[V]) dir(key string) byte {
	if vbyte(key, n.off)&n.bit != 0 {
		return 1
	}
	return 0
}

// Len returns the number of keys in the tree.
func (t *Dict[V]) Len() int {
	return t.size
}

func (t *Dict[V]) Empty() bool {
	return t.size == 0
}

// Reset drops all the keys.
func (t *Dict[V]) Reset() {
	*t = Dict[V]{}
}

// Get returns a value associated with the key
func (t *Dict[V]) Get(key string) (val V, ok bool) {
	if t.Empty() {
		return
	}
	// walk for best member
	p := t.root
	for p.node != nil {
		p = p.node.child[p.node.dir(key)]
	}
	if p.Key != key {
		return
	}
	return p.Val, true
}

// Set associates a value with a key. Returns the previous value and
// whether it was replaced.
func (t *Dict[V]) Set(key string, val V) (prev V, replaced bool) {
	if t.Empty() {
		t.root = ref[V]{item: item[V]{key, val}}
		t.size++
		return
	}
	// walk for best member
	p := &t.root
	for p.node != nil {
		p = &p.node.child[p.node.dir(key)]
	}
	// find the differing virtual byte
	var (
		off  int
		bit  uint16
		pch  uint16
		size = len(key)
	)
	if len(p.Key) > size {
		size = len(p.Key)
	}
	for off = 0; off < size; off++ {
		pch = vbyte(p.Key, off)
		if bit = pch ^ vbyte(key, off); bit != 0 {
			break
		}
	}
	if bit == 0 {
		// key exists - just replace its value
		prev, p.Val = p.Val, val
		return prev, true
	}
	// keep the highest differing bit only
	bit |= bit >> 1
	bit |= bit >> 2
	bit |= bit >> 4
	bit |= bit >> 8
	bit &^= bit >> 1

	var ndir byte
	if pch&bit != 0 {
		ndir = 1
	}
	nn := &node[V]{off: off, bit: bit}
	nn.child[1-ndir].item = item[V]{key, val}

	// walk for best insertion node
	wp := &t.root
	for wp.node != nil {
		n := wp.node
		if n.off > off || n.off == off && n.bit < bit {
			break
		}
		wp = &n.child[n.dir(key)]
	}
	nn.child[ndir] = *wp
	wp.node = nn
	wp.item = item[V]{}
	t.size++

	return
}

// Del removes the key from the tree and returns its value (if any)
func (t *Dict[V]) Del(key string) (val V, ok bool) {
	if t.Empty() {
		return
	}
	// walk for best member
	var (
		dir byte
		wp  *ref[V]
	)
	p := &t.root
	for p.node != nil {
		wp = p
		dir = p.node.dir(key)
		p = &p.node.child[dir]
	}
	if p.Key != key {
		return
	}
	val, ok = p.Val, true
	t.size--
	if wp == nil {
		t.root = ref[V]{}
		return
	}
	*wp = wp.node.child[1-dir]
	return
}
