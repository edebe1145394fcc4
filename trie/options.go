package trie

import (
	"fmt"

	"github.com/aglyzov/multikey/keyed"
)

type options struct {
	backend keyed.Backend
}

type Option func(*options)

// WithBackend makes every child table of the trie use b. The default,
// keyed.Auto, follows keyed.Selected. It panics with an *ArgumentError for
// a value that is not a keyed.Backend constant.
func WithBackend(b keyed.Backend) Option {
	if !b.Valid() {
		panic(&ArgumentError{Op: "WithBackend", Param: "backend", Err: fmt.Errorf("%v is unknown", b)})
	}
	return func(o *options) {
		o.backend = b
	}
}

func newTree[V any](opts []Option) tree[V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return tree[V]{backend: o.backend}
}
