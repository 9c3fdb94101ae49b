package trie

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func matchSet(matches []Match[string]) map[string]float64 {
	set := make(map[string]float64, len(matches))
	for _, m := range matches {
		set[m.Value] = m.Weight
	}
	return set
}

func seedCompressed(t *testing.T) *CompressedTrie[rune, string] {
	t.Helper()
	tr := NewCompressedTrie[rune, string]()
	require.NoError(t, tr.Insert("cat", 2.0, []rune("cat")))
	require.NoError(t, tr.Insert("car", 3.0, []rune("car")))
	require.NoError(t, tr.Insert("dog", 4.0, []rune("dog")))
	return tr
}

func TestCompressedStructure(t *testing.T) {
	tr := seedCompressed(t)

	require.Equal(t, 3, tr.Len())
	require.InDelta(t, 9.0, tr.root.weight, 1e-9)

	// fragments hold the maximal shared runs
	require.Len(t, tr.root.children, 2)
	left, right := tr.root.children[0], tr.root.children[1]
	require.Equal(t, []rune("ca"), left.fragment)
	require.InDelta(t, 5.0, left.weight, 1e-9)
	require.Equal(t, []rune("dog"), right.fragment)
	require.InDelta(t, 4.0, right.weight, 1e-9)

	checkCompressed(t, tr)
}

func TestCompressedSplitOnDivergence(t *testing.T) {
	tr := NewCompressedTrie[rune, string]()
	require.NoError(t, tr.Insert("cat", 2.0, []rune("cat")))

	// a single value collapses its entire prefix into one fragment
	require.Len(t, tr.root.children, 1)
	require.Equal(t, []rune("cat"), tr.root.children[0].fragment)

	require.NoError(t, tr.Insert("car", 3.0, []rune("car")))
	split := tr.root.children[0]
	require.Equal(t, []rune("ca"), split.fragment)
	require.Len(t, split.children, 2)
	require.Equal(t, []rune("r"), split.children[0].fragment)
	require.Equal(t, []rune("t"), split.children[1].fragment)
	checkCompressed(t, tr)
}

// a value whose prefix ends exactly where an existing fragment splits
func TestCompressedSplitWithEmptySuffix(t *testing.T) {
	tr := NewCompressedTrie[rune, string]()
	require.NoError(t, tr.Insert("cat", 2.0, []rune("cat")))
	require.NoError(t, tr.Insert("ca", 5.0, []rune("ca")))

	split := tr.root.children[0]
	require.Equal(t, []rune("ca"), split.fragment)
	require.InDelta(t, 7.0, split.weight, 1e-9)
	require.Len(t, split.children, 2)

	matches, err := tr.Autocomplete([]rune("ca"), 0)
	require.NoError(t, err)
	require.Equal(t, []Match[string]{
		{Value: "ca", Weight: 5.0},
		{Value: "cat", Weight: 2.0},
	}, matches)
	checkCompressed(t, tr)
}

func TestCompressedAutocomplete(t *testing.T) {
	tr := NewCompressedTrie[rune, string]()
	require.NoError(t, tr.Insert("dog", 4.0, []rune("dog")))
	require.NoError(t, tr.Insert("cat", 2.0, []rune("cat")))
	require.NoError(t, tr.Insert("car", 3.0, []rune("car")))

	all, err := tr.Autocomplete(nil, 0)
	require.NoError(t, err)
	require.Equal(t, []Match[string]{
		{Value: "dog", Weight: 4.0},
		{Value: "car", Weight: 3.0},
		{Value: "cat", Weight: 2.0},
	}, all)

	one, err := tr.Autocomplete(nil, 1)
	require.NoError(t, err)
	require.Equal(t, []Match[string]{{Value: "car", Weight: 3.0}}, one)

	// a prefix ending inside a fragment still matches the node
	inside, err := tr.Autocomplete([]rune("c"), 0)
	require.NoError(t, err)
	require.Len(t, inside, 2)
	deep, err := tr.Autocomplete([]rune("do"), 0)
	require.NoError(t, err)
	require.Len(t, deep, 1)
	require.Equal(t, "dog", deep[0].Value)

	none, err := tr.Autocomplete([]rune("cu"), 0)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestCompressedRemove(t *testing.T) {
	tr := seedCompressed(t)
	tr.Remove([]rune("ca"))

	require.Equal(t, 1, tr.Len())
	require.InDelta(t, 4.0, tr.root.weight, 1e-9)
	require.Len(t, tr.root.children, 1)
	require.Equal(t, []rune("dog"), tr.root.children[0].fragment)
	checkCompressed(t, tr)
}

// removing one branch of a split must fold the survivor back into its parent
func TestCompressedMergeOnRemove(t *testing.T) {
	tr := NewCompressedTrie[rune, string]()
	require.NoError(t, tr.Insert("cat", 2.0, []rune("cat")))
	require.NoError(t, tr.Insert("car", 3.0, []rune("car")))
	require.NoError(t, tr.Insert("dog", 4.0, []rune("dog")))

	tr.Remove([]rune("cat"))

	require.Equal(t, 2, tr.Len())
	var car *node[rune, string]
	for _, c := range tr.root.children {
		if string(c.fragment) == "car" {
			car = c
		}
	}
	require.NotNil(t, car, "surviving branch should merge back to fragment 'car'")
	require.InDelta(t, 3.0, car.weight, 1e-9)
	checkCompressed(t, tr)
}

func TestCompressedRemoveInsideFragment(t *testing.T) {
	tr := seedCompressed(t)
	// 'd' ends inside the 'dog' fragment; the whole subtree goes
	tr.Remove([]rune("d"))

	require.Equal(t, 2, tr.Len())
	require.InDelta(t, 5.0, tr.root.weight, 1e-9)
	checkCompressed(t, tr)
}

func TestCompressedRemoveIdempotent(t *testing.T) {
	tr := seedCompressed(t)
	before := tr.String()

	tr.Remove([]rune("cow"))
	tr.Remove([]rune("cards"))

	require.Equal(t, before, tr.String())
	require.Equal(t, 3, tr.Len())
	checkCompressed(t, tr)
}

func TestCompressedWeightAccumulation(t *testing.T) {
	tr := NewCompressedTrie[rune, string]()
	require.NoError(t, tr.Insert("a star is born", 15.0, []rune("a star is born")))
	require.NoError(t, tr.Insert("a star is born", 6.5, []rune("a star is born")))

	matches, err := tr.Autocomplete([]rune("a star"), 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.InDelta(t, 21.5, matches[0].Weight, 1e-9)
	checkCompressed(t, tr)
}

func TestCompressedInsertErrors(t *testing.T) {
	tr := seedCompressed(t)
	before := tr.String()

	require.ErrorIs(t, tr.Insert("bird", 0, []rune("bird")), ErrInvalidWeight)
	require.ErrorIs(t, tr.Insert("cat", 1.0, []rune("kat")), ErrConflictingPrefix)
	_, err := tr.Autocomplete(nil, -2)
	require.ErrorIs(t, err, ErrInvalidLimit)

	require.Equal(t, before, tr.String())
}

// interval symbols, the melody engine's shape
func TestCompressedIntervalSymbols(t *testing.T) {
	tr := NewCompressedTrie[int, string]()
	require.NoError(t, tr.Insert("rising run", 1.0, []int{2, 2, 1}))
	require.NoError(t, tr.Insert("rising leap", 2.0, []int{2, 2, 5}))

	matches, err := tr.Autocomplete([]int{2, 2}, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, "rising leap", matches[0].Value)
	checkCompressed(t, tr)
}

// both engines must agree on every query against a randomized corpus
func TestEnginesAgreeOnRandomCorpus(t *testing.T) {
	faker := gofakeit.New(42)
	simple := NewSimpleTrie[rune, string]()
	compressed := NewCompressedTrie[rune, string]()

	words := make(map[string]bool)
	for i := 0; i < 400; i++ {
		w := faker.Word()
		wt := float64(faker.IntRange(1, 90))
		require.NoError(t, simple.Insert(w, wt, []rune(w)))
		require.NoError(t, compressed.Insert(w, wt, []rune(w)))
		words[w] = true
	}
	require.Equal(t, simple.Len(), compressed.Len())

	prefixes := []string{"", "a", "b", "th", "pre", "zzz"}
	for w := range words {
		prefixes = append(prefixes, w[:1], w)
		if len(prefixes) > 40 {
			break
		}
	}
	for _, p := range prefixes {
		got, err := compressed.Autocomplete([]rune(p), 0)
		require.NoError(t, err)
		want, err := simple.Autocomplete([]rune(p), 0)
		require.NoError(t, err)
		// equal-weight values may tie-break differently per engine, so
		// compare the (value, weight) sets and each ordering separately
		require.Equal(t, matchSet(want), matchSet(got), "prefix %q", p)
		for i := 1; i < len(got); i++ {
			require.GreaterOrEqual(t, got[i-1].Weight, got[i].Weight)
		}
	}

	// removal keeps them in lockstep too
	simple.Remove([]rune("a"))
	compressed.Remove([]rune("a"))
	require.Equal(t, simple.Len(), compressed.Len())
	checkSimple(t, simple)
	checkCompressed(t, compressed)
}
