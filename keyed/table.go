// Package keyed provides a key→value table with SameValueZero key equality
// over arbitrary Go values.
//
// Two backends implement Table. Native wraps a Go map and normalizes the
// keys Go maps get wrong (NaN, maps, slices, structs holding NaN). Tagged tags every key through
// an identity.Tagger and indexes the tokens with a crit-bit tree; it keeps
// insertion order. New picks the backend chosen by a one-time capability
// probe, see Selected.
package keyed

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aglyzov/multikey/internal/log"
)

// Table is a key→value store with SameValueZero key equality.
//
// Set panics if the key is rejected by Check; the other methods treat such
// a key as absent. Tables are not safe for concurrent use.
type Table[V any] interface {
	Get(key any) (V, bool)
	Set(key any, val V)
	Delete(key any) bool
	Has(key any) bool
	Len() int
	Clear()
	// ForEach calls fn for every entry until fn returns false. It reports
	// whether all the entries were visited. The order is backend specific.
	ForEach(fn func(key any, val V) bool) bool
}

type Backend int

const (
	// Auto resolves to the backend returned by Selected.
	Auto Backend = iota
	Native
	Tagged
)

func (b Backend) String() string {
	switch b {
	case Auto:
		return "auto"
	case Native:
		return "native"
	case Tagged:
		return "tagged"
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// Valid reports whether b is one of Auto, Native and Tagged.
func (b Backend) Valid() bool {
	return b >= Auto && b <= Tagged
}

// ParseBackend parses the String form of a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "native":
		return Native, nil
	case "tagged":
		return Tagged, nil
	}
	return Auto, fmt.Errorf("unknown backend %q", s)
}

// New returns an empty table of the selected backend.
func New[V any]() Table[V] {
	return NewWith[V](Auto)
}

// NewWith returns an empty table of the given backend.
func NewWith[V any](b Backend) Table[V] {
	switch b {
	case Native:
		return newNative[V]()
	case Tagged:
		return newTagged[V](nil)
	case Auto:
		return NewWith[V](Selected())
	}
	panic("keyed: unknown backend " + b.String())
}

// SetLogger installs the zap logger used by the module. It is silent by
// default.
func SetLogger(l *zap.Logger) {
	log.SetLogger(l)
}

type Pair[V any] struct {
	Key any
	Val V
}

// Keys returns the keys of t in ForEach order.
func Keys[V any](t Table[V]) []any {
	keys := make([]any, 0, t.Len())
	t.ForEach(func(key any, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Values returns the values of t in ForEach order.
func Values[V any](t Table[V]) []V {
	vals := make([]V, 0, t.Len())
	t.ForEach(func(_ any, val V) bool {
		vals = append(vals, val)
		return true
	})
	return vals
}

// Pairs returns the entries of t in ForEach order.
func Pairs[V any](t Table[V]) []Pair[V] {
	pairs := make([]Pair[V], 0, t.Len())
	t.ForEach(func(key any, val V) bool {
		pairs = append(pairs, Pair[V]{key, val})
		return true
	})
	return pairs
}
