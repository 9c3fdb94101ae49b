// Package engine provides the corpus loaders and query facades that feed
// text, sentence and melody corpora into the tree engines. Every engine
// funnels exclusively through the trie.Autocompleter contract.
package engine

import (
	"fmt"

	"github.com/seqserve/seqserve/pkg/trie"
)

// Tree kinds accepted by the engine constructors.
const (
	TreeSimple     = "simple"
	TreeCompressed = "compressed"
)

// Suggester is the string-prefix surface the CLI and IPC server drive.
// LetterEngine and SentenceEngine both satisfy it.
type Suggester interface {
	Autocomplete(prefix string, limit int) ([]trie.Match[string], error)
	Remove(prefix string)
	Len() int
}

// newTree builds the requested Autocompleter variant.
func newTree[S comparable, V comparable](kind string) (trie.Autocompleter[S, V], error) {
	switch kind {
	case TreeSimple:
		return trie.NewSimpleTrie[S, V](), nil
	case TreeCompressed:
		return trie.NewCompressedTrie[S, V](), nil
	default:
		return nil, fmt.Errorf("unknown tree kind %q", kind)
	}
}
