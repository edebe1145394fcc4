// Package trie implements multi-key associative tries: Map maps a sequence
// of arbitrary keys to a value and Set records key sequences.
//
// Every node owns a keyed.Table of children indexed by the next key of the
// sequence, and counts the entries stored in its subtree. Keys compare with
// SameValueZero: NaN equals NaN, -0 equals 0, pointers, channels, maps and
// slices compare by identity, other values by == with floats nested in
// structs and arrays following the same NaN and -0 rules.
//
// A slice's identity is its data pointer and length. Slices sharing both,
// such as s[:2] and s[:2:3], are the same key. So are the zero-capacity
// slices of one type (make([]T, 0) twice): the runtime gives zero-size
// allocations a single address.
//
// Example trie:
// ------------
//
//	            ,-- ["usr"] (1) ------------ ["bin"] (1)*
//	            |
//	[root] (4) -+-- ["home"] (3) --+-- ["ann"] (2)* -- ["tmp"] (1)*
//	                               |
//	                               `-- ["bob"] (1)*
//
// Numbers are node counts, a star marks a terminal node. The trie above
// holds the key sequences
//
//   - ["usr", "bin"]
//   - ["home", "ann"]
//   - ["home", "ann", "tmp"]
//   - ["home", "bob"]
//
// so Size(["home"]) is 3 without walking the subtree, and Clear(["home"])
// removes three entries and prunes the "home" edge.
//
// Key sequences passed to Get, Set, Add, Delete and Has must be non-empty
// and hold keys accepted by keyed.Check; otherwise these methods panic with
// an *ArgumentError before touching the trie. Prefix arguments accept nil
// for the whole trie.
//
// Tries are not safe for concurrent use, and a visitor passed to ForEach or
// an All loop body must not modify the trie it walks.
package trie
