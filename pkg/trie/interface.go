// Package trie is the core, providing weighted prefix lookup over arbitrary
// symbol sequences: rune-by-rune words, word-by-word sentences, or numeric
// interval runs all use the same two engines.
package trie

// Match is a single retrieval result: a stored value and its accumulated weight.
type Match[V comparable] struct {
	Value  V
	Weight float64
}

// Autocompleter is the contract shared by SimpleTrie and CompressedTrie, so
// callers stay polymorphic over the pair.
type Autocompleter[S comparable, V comparable] interface {
	// Len reports how many values the tree stores.
	Len() int

	// Insert stores value under the given prefix sequence with the given
	// weight. Re-inserting a known value adds weight to its existing entry;
	// the prefix must then match the one used originally, otherwise the call
	// fails with ErrConflictingPrefix. A non-positive weight fails with
	// ErrInvalidWeight. A failed Insert leaves the tree unchanged.
	Insert(value V, weight float64, prefix []S) error

	// Autocomplete returns values whose full prefix sequence begins with
	// prefix. With limit 0 it returns every match, sorted by non-increasing
	// weight. A positive limit instead truncates a pre-order walk that visits
	// subtrees in aggregate-weight order; this is deliberately greedy and can
	// skip a heavier value hiding in a lighter subtree. A negative limit
	// fails with ErrInvalidLimit.
	Autocomplete(prefix []S, limit int) ([]Match[V], error)

	// Remove deletes every value whose full prefix sequence begins with
	// prefix. An empty prefix clears the tree. Removing an absent prefix is
	// a no-op, not an error.
	Remove(prefix []S)
}
