package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/akamensky/argparse"
	"go.uber.org/zap"

	"github.com/aglyzov/multikey/keyed"
	"github.com/aglyzov/multikey/trie"
)

func split(p, sep string) []any {
	parts := strings.Split(p, sep)
	keys := make([]any, len(parts))
	for i, s := range parts {
		keys[i] = s
	}
	return keys
}

func main() {
	parser := argparse.NewParser("example", "loads key paths into a trie and queries a prefix")

	paths := parser.StringList("k", "keys", &argparse.Options{Required: true, Help: "key path to insert, repeatable"})
	prefix := parser.String("p", "prefix", &argparse.Options{Required: false, Help: "prefix to query, whole trie if empty"})
	sep := parser.String("s", "sep", &argparse.Options{Required: false, Help: "path separator", Default: "/"})
	backend := parser.Selector("b", "backend", []string{"auto", "native", "tagged"}, &argparse.Options{Required: false, Help: "child table backend", Default: "auto"})
	verbose := parser.Flag("v", "verbose", &argparse.Options{Help: "log backend selection"})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(2)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer logger.Sync() //nolint:errcheck
		keyed.SetLogger(logger)
	}

	b, err := keyed.ParseBackend(*backend)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(2)
	}
	if b == keyed.Auto {
		b = keyed.Selected()
	}

	var (
		set = trie.NewSet(trie.WithBackend(b))
		m   = trie.NewMap[int](trie.WithBackend(b))
	)
	for i, p := range *paths {
		if p == "" {
			continue
		}
		keys := split(p, *sep)
		if !set.Add(keys) {
			fmt.Printf("duplicate: %s\n", p)
		}
		m.Set(keys, i)
	}

	var pre []any
	if *prefix != "" {
		pre = split(*prefix, *sep)
	}

	fmt.Printf("backend: %s\n", b)
	fmt.Printf("size:    %d of %d\n", set.Size(pre), set.Len())

	fmt.Println("------")

	for keys, val := range m.All(pre) {
		fmt.Printf("%v -> %d\n", keys, val)
	}

	fmt.Println("------")

	fmt.Printf("cleared: %d\n", m.Clear(pre))
	fmt.Printf("left:    %v\n", m.Keys(nil))
}
