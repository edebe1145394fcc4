package keyed

import (
	"container/list"

	"github.com/aglyzov/multikey/identity"
	"github.com/aglyzov/multikey/internal/critbit"
)

// tagged indexes entries by identity token. The crit-bit index only ever
// compares token bytes; the list keeps insertion order.
type tagged[V any] struct {
	tagger *identity.Tagger
	index  critbit.Dict[*list.Element]
	order  list.List
}

// NewTagged returns an empty Tagged table that tags its keys with tg, or
// with identity.Default when tg is nil.
func NewTagged[V any](tg *identity.Tagger) Table[V] {
	return newTagged[V](tg)
}

func newTagged[V any](tg *identity.Tagger) *tagged[V] {
	if tg == nil {
		tg = identity.Default
	}
	return &tagged[V]{tagger: tg}
}

func (t *tagged[V]) lookup(key any) (string, *list.Element) {
	tok, ok := t.tagger.Lookup(key)
	if !ok {
		return "", nil
	}
	e, _ := t.index.Get(string(tok))
	return string(tok), e
}

func (t *tagged[V]) Get(key any) (val V, ok bool) {
	if _, e := t.lookup(key); e != nil {
		return e.Value.(*slot[V]).val, true
	}
	return
}

func (t *tagged[V]) Set(key any, val V) {
	tok, err := t.tagger.Tag(key)
	if err != nil {
		panic("keyed: " + err.Error())
	}
	if e, ok := t.index.Get(string(tok)); ok {
		e.Value.(*slot[V]).val = val
		return
	}
	t.index.Set(string(tok), t.order.PushBack(&slot[V]{key: key, val: val}))
}

func (t *tagged[V]) Delete(key any) bool {
	tok, e := t.lookup(key)
	if e == nil {
		return false
	}
	t.index.Del(tok)
	t.order.Remove(e)
	return true
}

func (t *tagged[V]) Has(key any) bool {
	_, e := t.lookup(key)
	return e != nil
}

func (t *tagged[V]) Len() int {
	return t.index.Len()
}

func (t *tagged[V]) Clear() {
	t.index.Reset()
	t.order.Init()
}

func (t *tagged[V]) ForEach(fn func(key any, val V) bool) bool {
	for e := t.order.Front(); e != nil; {
		next := e.Next()
		s := e.Value.(*slot[V])
		if !fn(s.key, s.val) {
			return false
		}
		e = next
	}
	return true
}
