package identity

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type myInt int

func TestTag_Scalars(t *testing.T) {
	t.Parallel()

	tg := New()

	for _, tcase := range []*struct {
		A, B  any
		Equal bool
	}{
		{1, 1, true},
		{1, 2, false},
		{1, "1", false},
		{1, int64(1), false},
		{1, myInt(1), false},
		{myInt(7), myInt(7), true},
		{"abc", "abc", true},
		{"", "", true},
		{true, true, true},
		{true, false, false},
		{0.0, math.Copysign(0, -1), true},
		{math.NaN(), math.NaN(), true},
		{math.NaN(), math.Float64frombits(0x7ff8000000000001), true},
		{float32(math.NaN()), math.NaN(), false},
		{complex(math.NaN(), 1), complex(math.NaN(), 1), true},
		{complex(math.NaN(), 1), complex(1, math.NaN()), false},
		{uint8(3), byte(3), true},
	} {
		name := fmt.Sprintf("%T(%v)~%T(%v)", tcase.A, tcase.A, tcase.B, tcase.B)

		t.Run(name, func(t *testing.T) {
			a, err := tg.Tag(tcase.A)
			require.NoError(t, err)
			b, err := tg.Tag(tcase.B)
			require.NoError(t, err)

			assert.Equal(t, tcase.Equal, a == b, "%q vs %q", a, b)
		})
	}

	assert.Zero(t, tg.Len(), "scalars must not be registered")
}

func TestTag_Nil(t *testing.T) {
	t.Parallel()

	tg := New()

	tok, err := tg.Tag(nil)
	require.NoError(t, err)
	assert.Equal(t, NilToken, tok)

	typed, err := tg.Tag((*int)(nil))
	require.NoError(t, err)
	assert.NotEqual(t, NilToken, typed)

	str, err := tg.Tag("nil")
	require.NoError(t, err)
	assert.NotEqual(t, NilToken, str)
}

func TestTag_References(t *testing.T) {
	t.Parallel()

	tg := New()

	type point struct{ X, Y int }

	var (
		p1, p2 = &point{1, 2}, &point{1, 2}
		m1, m2 = map[string]int{}, map[string]int{}
		s1     = []int{1, 2, 3}
		s2     = []int{1, 2, 3}
		ch     = make(chan int)
	)

	for _, tcase := range []*struct {
		Name  string
		A, B  any
		Equal bool
	}{
		{"same pointer", p1, p1, true},
		{"distinct pointers", p1, p2, false},
		{"same map", m1, m1, true},
		{"distinct maps", m1, m2, false},
		{"same slice", s1, s1, true},
		{"distinct slices", s1, s2, false},
		{"resliced", s1, s1[:2], false},
		{"same channel", ch, ch, true},
		{"equal structs", point{1, 2}, point{1, 2}, true},
		{"different structs", point{1, 2}, point{2, 1}, false},
		{"arrays", [2]int{1, 2}, [2]int{1, 2}, true},
	} {
		t.Run(tcase.Name, func(t *testing.T) {
			a, err := tg.Tag(tcase.A)
			require.NoError(t, err)
			b, err := tg.Tag(tcase.B)
			require.NoError(t, err)

			assert.Equal(t, tcase.Equal, a == b, "%q vs %q", a, b)
		})
	}
}

func TestTag_Idempotent(t *testing.T) {
	t.Parallel()

	var (
		tg = New()
		p  = new(int)
	)

	first, err := tg.Tag(p)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		tok, err := tg.Tag(p)
		require.NoError(t, err)
		assert.Equal(t, first, tok)
	}
	assert.Equal(t, 1, tg.Len())
}

func TestLookup_DoesNotCreate(t *testing.T) {
	t.Parallel()

	var (
		tg = New()
		p  = new(int)
	)

	_, ok := tg.Lookup(p)
	assert.False(t, ok)
	assert.Zero(t, tg.Len())

	tok, err := tg.Tag(p)
	require.NoError(t, err)

	found, ok := tg.Lookup(p)
	assert.True(t, ok)
	assert.Equal(t, tok, found)

	// scalars never need registration
	_, ok = tg.Lookup(42)
	assert.True(t, ok)

	// defined scalar types do, for their type ordinal
	_, ok = tg.Lookup(myInt(42))
	assert.False(t, ok)
}

func TestForget(t *testing.T) {
	t.Parallel()

	var (
		tg = New()
		p  = new(int)
	)

	tok, err := tg.Tag(p)
	require.NoError(t, err)

	assert.True(t, tg.Forget(p))
	assert.False(t, tg.Forget(p))
	assert.False(t, tg.Forget(1))
	assert.Zero(t, tg.Len())

	_, ok := tg.Lookup(p)
	assert.False(t, ok)

	again, err := tg.Tag(p)
	require.NoError(t, err)
	assert.NotEqual(t, tok, again)
}

func TestTag_Untaggable(t *testing.T) {
	t.Parallel()

	tg := New()

	for _, v := range []any{
		func() {},
		struct{ S []int }{},
		[1]map[int]int{},
	} {
		_, err := tg.Tag(v)
		assert.ErrorIs(t, err, ErrUntaggable, "%T", v)

		_, ok := tg.Lookup(v)
		assert.False(t, ok, "%T", v)
	}
}

func TestTag_Namespaces(t *testing.T) {
	t.Parallel()

	var (
		a, b = New(), New()
		p    = new(int)
	)

	ta, err := a.Tag(p)
	require.NoError(t, err)
	tb, err := b.Tag(p)
	require.NoError(t, err)

	// both taggers number their first reference 1
	assert.Equal(t, Token("ptr:"+a.Namespace()+":1"), ta)
	assert.Equal(t, Token("ptr:"+b.Namespace()+":1"), tb)
	assert.NotEqual(t, a.Namespace(), b.Namespace())
	assert.NotEqual(t, ta, tb)
}

func TestTag_Composites(t *testing.T) {
	t.Parallel()

	type (
		pt struct {
			X float64
			Y int
		}
		boxed struct {
			V any
		}
		named struct {
			S string
			P *int
		}
	)

	var (
		tg     = New()
		nan    = math.NaN()
		negz   = math.Copysign(0, -1)
		p1, p2 = new(int), new(int)
	)

	for _, tcase := range []*struct {
		Name  string
		A, B  any
		Equal bool
	}{
		{"NaN field", pt{nan, 1}, pt{math.Float64frombits(0x7ff8000000000001), 1}, true},
		{"NaN field, other int", pt{nan, 1}, pt{nan, 2}, false},
		{"negative zero field", pt{negz, 1}, pt{0, 1}, true},
		{"NaN elements", [2]float64{nan, 1}, [2]float64{nan, 1}, true},
		{"NaN behind interface", boxed{nan}, boxed{nan}, true},
		{"interface dynamic types", boxed{1}, boxed{int64(1)}, false},
		{"interface nil", boxed{}, boxed{nil}, true},
		{"nested", [1]boxed{{pt{nan, 3}}}, [1]boxed{{pt{nan, 3}}}, true},
		{"string boundaries", [2]string{"a,b", ""}, [2]string{"a", "b,"}, false},
		{"same pointer field", named{"a", p1}, named{"a", p1}, true},
		{"distinct pointer fields", named{"a", p1}, named{"a", p2}, false},
		{"struct vs array", pt{1, 2}, [2]float64{1, 2}, false},
	} {
		t.Run(tcase.Name, func(t *testing.T) {
			a, err := tg.Tag(tcase.A)
			require.NoError(t, err)
			b, err := tg.Tag(tcase.B)
			require.NoError(t, err)

			assert.Equal(t, tcase.Equal, a == b, "%q vs %q", a, b)

			found, ok := tg.Lookup(tcase.A)
			assert.True(t, ok)
			assert.Equal(t, a, found)
		})
	}
}

func TestTag_CompositesAreNotRegistered(t *testing.T) {
	t.Parallel()

	type pt struct{ X, Y int }

	tg := New()

	for i := 0; i < 1000; i++ {
		_, err := tg.Tag(pt{i, i})
		require.NoError(t, err)
		_, err = tg.Tag([2]int{i, -i})
		require.NoError(t, err)
	}
	assert.Zero(t, tg.Len())
	assert.False(t, tg.Forget(pt{1, 1}))
}

func TestTag_Concurrent(t *testing.T) {
	t.Parallel()

	var (
		tg   = New()
		ptrs = make([]*int, 64)
		toks = make([][]Token, 8)
		wg   sync.WaitGroup
	)

	for i := range ptrs {
		ptrs[i] = new(int)
	}
	for g := range toks {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for _, p := range ptrs {
				tok, _ := tg.Tag(p)
				toks[g] = append(toks[g], tok)
			}
		}(g)
	}
	wg.Wait()

	seen := map[Token]bool{}
	for i := range ptrs {
		for g := 1; g < len(toks); g++ {
			assert.Equal(t, toks[0][i], toks[g][i])
		}
		assert.False(t, seen[toks[0][i]], "duplicate token %q", toks[0][i])
		seen[toks[0][i]] = true
	}
}
