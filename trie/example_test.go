package trie_test

import (
	"fmt"

	"github.com/aglyzov/multikey/keyed"
	"github.com/aglyzov/multikey/trie"
)

func ExampleMap() {
	m := trie.NewMap[string](trie.WithBackend(keyed.Tagged))

	m.Set([]any{"home", "ann"}, "ann's home")
	m.Set([]any{"home", "ann", "tmp"}, "scratch")
	m.Set([]any{"home", "bob"}, "bob's home")
	m.Set([]any{"usr", "bin"}, "binaries")

	fmt.Println(m.Size([]any{"home"}))

	for keys, val := range m.All([]any{"home"}) {
		fmt.Println(keys, val)
	}

	fmt.Println(m.Clear([]any{"home"}), m.Len())

	// Output:
	// 3
	// [home ann] ann's home
	// [home ann tmp] scratch
	// [home bob] bob's home
	// 3 1
}

func ExampleSet() {
	s := trie.NewSet(trie.WithBackend(keyed.Tagged))

	obj := &struct{ name string }{"obj"}

	fmt.Println(s.Add([]any{1, "a"}))
	fmt.Println(s.Add([]any{1.0, "a"}))
	fmt.Println(s.Add([]any{1, "a"}))
	fmt.Println(s.Add([]any{obj}))
	fmt.Println(s.Has([]any{&struct{ name string }{"obj"}}))
	fmt.Println(s.Len())

	// Output:
	// true
	// true
	// false
	// true
	// false
	// 3
}
