// Package identity assigns stable string tokens to arbitrary Go values so
// they can index structures that only compare bytes.
//
// Values are tagged from their type and contents: bools, numbers, strings,
// and comparable structs and arrays of them, so equal values always share a
// token. Floats follow SameValueZero at any depth: -0 is tagged as 0 and
// every NaN of a type shares one token. Pointers, channels, maps and slices
// nested in a struct or array are rendered by address.
//
// A top-level pointer, channel, map or slice is tagged by identity instead:
// the first time it is seen it receives a token built from the Tagger's
// namespace and counter, and the association is remembered until Forget is
// called.
//
// Functions and composites holding non-comparable parts have no identity in
// Go and cannot be tagged.
package identity

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// ErrUntaggable is returned for values that have neither a value nor an
// identity usable as a key.
var ErrUntaggable = errors.New("value cannot be used as a key")

// Token identifies a value. Two values share a token iff they are equal
// under SameValueZero.
type Token string

// NilToken is the token of the untyped nil. Real tokens always contain a
// colon or a bracket, so it never collides with one.
const NilToken Token = "nil"

// Default is the process-wide tagger.
var Default = New()

// refKey stands in for maps and slices, which Go cannot compare.
type refKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

type entry struct {
	tok Token
	// keep pins the tagged value so its address cannot be reused while
	// the token is registered.
	keep any
}

// Tagger remembers the tokens of reference values. It is safe for
// concurrent use.
//
// Reference tokens of different Taggers never collide: each one numbers its
// references from 1 within its own random namespace.
type Tagger struct {
	mu    sync.Mutex
	ns    string
	next  uint64
	refs  map[any]entry
	types map[reflect.Type]uint64
}

// New returns an empty Tagger with its own token namespace.
func New() *Tagger {
	id := uuid.New()
	return &Tagger{
		ns:    id.String()[:8],
		refs:  make(map[any]entry),
		types: make(map[reflect.Type]uint64),
	}
}

// Namespace returns the prefix shared by the reference tokens of t.
func (t *Tagger) Namespace() string {
	return t.ns
}

// Tag returns the token of v, registering v if it is a reference value seen
// for the first time.
func (t *Tagger) Tag(v any) (Token, error) {
	tok, _, err := t.tag(v, true)
	return tok, err
}

// Lookup returns the token of v without registering anything. It reports
// false for reference values that were never tagged and for untaggable
// values.
func (t *Tagger) Lookup(v any) (Token, bool) {
	tok, ok, err := t.tag(v, false)
	return tok, ok && err == nil
}

// Forget drops the association of a reference value. A later Tag of the
// same value yields a fresh token.
func (t *Tagger) Forget(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if !isRef(rv.Kind()) {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := refIdentity(v, rv)
	if _, ok := t.refs[key]; !ok {
		return false
	}
	delete(t.refs, key)
	return true
}

// Len returns the number of registered reference values.
func (t *Tagger) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.refs)
}

func (t *Tagger) tag(v any, create bool) (Token, bool, error) {
	if v == nil {
		return NilToken, true, nil
	}
	rv := reflect.ValueOf(v)

	switch kind := rv.Kind(); {
	case kind == reflect.Func:
		return "", false, fmt.Errorf("%w: %T", ErrUntaggable, v)
	case isRef(kind):
		return t.tagRef(v, rv, create)
	case !rv.Comparable():
		return "", false, fmt.Errorf("%w: %T", ErrUntaggable, v)
	}

	b, ok := t.render(nil, rv, create)
	if !ok {
		return "", false, nil
	}
	return Token(b), true, nil
}

func (t *Tagger) tagRef(v any, rv reflect.Value, create bool) (Token, bool, error) {
	key := refIdentity(v, rv)

	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.refs[key]; ok {
		return e.tok, true, nil
	}
	if !create {
		return "", false, nil
	}
	t.next++
	tok := Token(rv.Kind().String() + ":" + t.ns + ":" + strconv.FormatUint(t.next, 10))
	t.refs[key] = entry{tok: tok, keep: v}
	return tok, true, nil
}

// render appends the canonical form of a comparable value to b. It reports
// false when create is unset and a defined type of rv has no ordinal yet.
func (t *Tagger) render(b []byte, rv reflect.Value, create bool) ([]byte, bool) {
	if !rv.IsValid() {
		return append(b, NilToken...), true
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return append(b, NilToken...), true
		}
		return t.render(b, rv.Elem(), create)
	}

	prefix, ok := t.typePrefix(rv.Type(), create)
	if !ok {
		return nil, false
	}
	b = append(b, prefix...)

	switch kind := rv.Kind(); {
	case kind == reflect.String:
		return strconv.AppendQuote(append(b, ':'), rv.String()), true
	case isScalar(kind):
		return append(append(b, ':'), formatScalar(rv)...), true
	case kind == reflect.Struct:
		b = append(b, '{')
		for i := range rv.NumField() {
			if i > 0 {
				b = append(b, ',')
			}
			if b, ok = t.render(b, rv.Field(i), create); !ok {
				return nil, false
			}
		}
		return append(b, '}'), true
	case kind == reflect.Array:
		b = append(b, '[')
		for i := range rv.Len() {
			if i > 0 {
				b = append(b, ',')
			}
			if b, ok = t.render(b, rv.Index(i), create); !ok {
				return nil, false
			}
		}
		return append(b, ']'), true
	}
	// pointer-like parts compare by address
	b = append(b, '@')
	return strconv.AppendUint(b, uint64(rv.Pointer()), 16), true
}

// typePrefix names builtin types directly and every other type by an
// ordinal, since PkgPath+Name is ambiguous for function-local types and
// empty for unnamed composites.
func (t *Tagger) typePrefix(typ reflect.Type, create bool) (string, bool) {
	if typ.PkgPath() == "" && typ.Name() != "" {
		return typ.Name(), true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.types[typ]
	if !ok {
		if !create {
			return "", false
		}
		n = uint64(len(t.types) + 1)
		t.types[typ] = n
	}
	return "t" + strconv.FormatUint(n, 10), true
}

// refIdentity returns the registry key of a reference value.
func refIdentity(v any, rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Map:
		return refKey{typ: rv.Type(), ptr: rv.Pointer()}
	case reflect.Slice:
		return refKey{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}
	}
	return v
}

func isRef(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer, reflect.Map, reflect.Slice:
		return true
	}
	return false
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

func formatScalar(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	case reflect.Complex64:
		c := rv.Complex()
		return "(" + formatFloat(real(c), 32) + "," + formatFloat(imag(c), 32) + ")"
	case reflect.Complex128:
		c := rv.Complex()
		return "(" + formatFloat(real(c), 64) + "," + formatFloat(imag(c), 64) + ")"
	}
	panic("identity: not a scalar kind: " + rv.Kind().String())
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f == 0:
		return "0"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}
