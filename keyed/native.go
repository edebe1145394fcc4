package keyed

import (
	"fmt"
	"math"
	"reflect"
	"sync"

	"github.com/aglyzov/multikey/identity"
)

// nanKey replaces a NaN of the given float type.
type nanKey struct {
	typ reflect.Type
}

// complexKey replaces a complex number with NaN parts. NaN parts are
// zeroed and flagged.
type complexKey struct {
	typ          reflect.Type
	re, im       float64
	reNaN, imNaN bool
}

// tokenKey replaces a struct or array that may hold a NaN, which Go's ==
// never finds again.
type tokenKey struct {
	tok identity.Token
}

// refKey replaces maps and slices, which Go cannot compare.
type refKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// Normalize maps key to a value that a Go map compares with SameValueZero
// semantics. It fails for keys with no usable equality (functions and
// composites holding non-comparable parts).
//
// Structs and arrays that may hold a float are replaced by their
// identity.Default token. Normalized map and slice keys do not keep the
// original alive; callers storing them must hold the original key too.
func Normalize(key any) (any, error) {
	switch key.(type) {
	case nil, string, int, int64, bool:
		return key, nil
	}

	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if math.IsNaN(rv.Float()) {
			return nanKey{rv.Type()}, nil
		}
		// +0 and -0 already compare and hash alike
		return key, nil
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		re, im := real(c), imag(c)
		if !math.IsNaN(re) && !math.IsNaN(im) {
			return key, nil
		}
		k := complexKey{typ: rv.Type(), re: re, im: im}
		if math.IsNaN(re) {
			k.re, k.reNaN = 0, true
		}
		if math.IsNaN(im) {
			k.im, k.imNaN = 0, true
		}
		return k, nil
	case reflect.Map:
		return refKey{typ: rv.Type(), ptr: rv.Pointer()}, nil
	case reflect.Slice:
		return refKey{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}, nil
	case reflect.Func:
		return nil, fmt.Errorf("%w: %T", identity.ErrUntaggable, key)
	}
	if !rv.Comparable() {
		return nil, fmt.Errorf("%w: %T", identity.ErrUntaggable, key)
	}
	if k := rv.Kind(); (k == reflect.Struct || k == reflect.Array) && mayHoldNaN(rv.Type()) {
		tok, err := identity.Default.Tag(key)
		if err != nil {
			return nil, err
		}
		return tokenKey{tok}, nil
	}
	return key, nil
}

var nanTypes sync.Map // reflect.Type -> bool

// mayHoldNaN reports whether a value of typ can carry a float inline,
// directly or behind an interface.
func mayHoldNaN(typ reflect.Type) bool {
	if v, ok := nanTypes.Load(typ); ok {
		return v.(bool)
	}
	var res bool
	switch typ.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128, reflect.Interface:
		res = true
	case reflect.Array:
		res = typ.Len() > 0 && mayHoldNaN(typ.Elem())
	case reflect.Struct:
		for i := range typ.NumField() {
			if mayHoldNaN(typ.Field(i).Type) {
				res = true
				break
			}
		}
	}
	nanTypes.Store(typ, res)
	return res
}

// Check reports whether key can be stored in a Table.
func Check(key any) error {
	_, err := Normalize(key)
	return err
}

type slot[V any] struct {
	key any
	val V
}

type native[V any] struct {
	slots map[any]*slot[V]
}

func newNative[V any]() *native[V] {
	return &native[V]{slots: make(map[any]*slot[V])}
}

func (t *native[V]) lookup(key any) *slot[V] {
	k, err := Normalize(key)
	if err != nil {
		return nil
	}
	return t.slots[k]
}

func (t *native[V]) Get(key any) (val V, ok bool) {
	if s := t.lookup(key); s != nil {
		return s.val, true
	}
	return
}

func (t *native[V]) Set(key any, val V) {
	k, err := Normalize(key)
	if err != nil {
		panic("keyed: " + err.Error())
	}
	if s, ok := t.slots[k]; ok {
		s.val = val
		return
	}
	t.slots[k] = &slot[V]{key: key, val: val}
}

func (t *native[V]) Delete(key any) bool {
	k, err := Normalize(key)
	if err != nil {
		return false
	}
	if _, ok := t.slots[k]; !ok {
		return false
	}
	delete(t.slots, k)
	return true
}

func (t *native[V]) Has(key any) bool {
	return t.lookup(key) != nil
}

func (t *native[V]) Len() int {
	return len(t.slots)
}

func (t *native[V]) Clear() {
	clear(t.slots)
}

func (t *native[V]) ForEach(fn func(key any, val V) bool) bool {
	for _, s := range t.slots {
		if !fn(s.key, s.val) {
			return false
		}
	}
	return true
}
