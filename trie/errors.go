package trie

import (
	"errors"
	"fmt"

	"github.com/aglyzov/multikey/keyed"
)

// ErrInvalidArgument is matched by every panic value raised for a bad key
// sequence or visitor.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	errNil   = errors.New("must be non-nil")
	errEmpty = errors.New("must be non-empty")
)

// ArgumentError is the panic value of an invalid call. Both
// ErrInvalidArgument and the underlying cause match it with errors.Is.
type ArgumentError struct {
	Op    string
	Param string
	Err   error
}

func (e *ArgumentError) Error() string {
	return "trie: " + e.Op + ": " + e.Param + " " + e.Err.Error()
}

func (e *ArgumentError) Unwrap() []error {
	return []error{ErrInvalidArgument, e.Err}
}

// checkKeys panics unless keys is a usable key sequence.
func checkKeys(op string, keys []any) {
	switch {
	case keys == nil:
		panic(&ArgumentError{Op: op, Param: "keys", Err: errNil})
	case len(keys) == 0:
		panic(&ArgumentError{Op: op, Param: "keys", Err: errEmpty})
	}
	for i, key := range keys {
		if err := keyed.Check(key); err != nil {
			panic(&ArgumentError{Op: op, Param: fmt.Sprintf("keys[%d]", i), Err: err})
		}
	}
}

func checkVisitor(op string, isNil bool) {
	if isNil {
		panic(&ArgumentError{Op: op, Param: "visitor", Err: errNil})
	}
}
