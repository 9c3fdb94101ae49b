package trie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// the small corpus every structural test below starts from
func seedSimple(t *testing.T) *SimpleTrie[rune, string] {
	t.Helper()
	tr := NewSimpleTrie[rune, string]()
	require.NoError(t, tr.Insert("cat", 2.0, []rune("cat")))
	require.NoError(t, tr.Insert("car", 3.0, []rune("car")))
	require.NoError(t, tr.Insert("dog", 4.0, []rune("dog")))
	return tr
}

func TestSimpleStructure(t *testing.T) {
	tr := seedSimple(t)

	require.Equal(t, 3, tr.Len())
	require.InDelta(t, 9.0, tr.root.weight, 1e-9)

	require.Len(t, tr.root.children, 2)
	left, right := tr.root.children[0], tr.root.children[1]
	require.Equal(t, []rune("c"), left.fragment)
	require.InDelta(t, 5.0, left.weight, 1e-9)
	require.Equal(t, []rune("d"), right.fragment)
	require.InDelta(t, 4.0, right.weight, 1e-9)

	checkSimple(t, tr)
}

func TestSimpleAutocomplete(t *testing.T) {
	tr := NewSimpleTrie[rune, string]()
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

	// The limited walk is greedy: the ['c'] subtree weighs 5.0 and is
	// visited first, so 'car' beats the globally heavier 'dog'.
	one, err := tr.Autocomplete(nil, 1)
	require.NoError(t, err)
	require.Equal(t, []Match[string]{{Value: "car", Weight: 3.0}}, one)

	sub, err := tr.Autocomplete([]rune("ca"), 0)
	require.NoError(t, err)
	require.Len(t, sub, 2)
	require.Equal(t, "car", sub[0].Value)

	none, err := tr.Autocomplete([]rune("dx"), 0)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestSimpleRemove(t *testing.T) {
	tr := seedSimple(t)
	tr.Remove([]rune("ca"))

	require.Equal(t, 1, tr.Len())
	require.InDelta(t, 4.0, tr.root.weight, 1e-9)
	require.Len(t, tr.root.children, 1)
	require.Equal(t, []rune("d"), tr.root.children[0].fragment)
	checkSimple(t, tr)
}

func TestSimpleRemoveAll(t *testing.T) {
	tr := seedSimple(t)
	tr.Remove(nil)

	require.Equal(t, 0, tr.Len())
	require.Zero(t, tr.root.weight)
	require.Empty(t, tr.root.children)

	matches, err := tr.Autocomplete(nil, 0)
	require.NoError(t, err)
	require.Empty(t, matches)
	checkSimple(t, tr)
}

func TestSimpleRemoveIdempotent(t *testing.T) {
	tr := seedSimple(t)
	before := tr.String()

	tr.Remove([]rune("zebra"))
	tr.Remove([]rune("cart"))

	require.Equal(t, before, tr.String())
	require.Equal(t, 3, tr.Len())
	checkSimple(t, tr)
}

func TestSimpleWeightAccumulation(t *testing.T) {
	tr := NewSimpleTrie[rune, string]()
	require.NoError(t, tr.Insert("a star is born", 15.0, []rune("a star is born")))
	require.NoError(t, tr.Insert("a star is born", 6.5, []rune("a star is born")))

	require.Equal(t, 1, tr.Len())
	matches, err := tr.Autocomplete([]rune("a star"), 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.InDelta(t, 21.5, matches[0].Weight, 1e-9)
	checkSimple(t, tr)
}

func TestSimpleInsertErrors(t *testing.T) {
	tr := seedSimple(t)
	before := tr.String()

	err := tr.Insert("bird", 0, []rune("bird"))
	require.ErrorIs(t, err, ErrInvalidWeight)
	err = tr.Insert("bird", -1.5, []rune("bird"))
	require.ErrorIs(t, err, ErrInvalidWeight)

	err = tr.Insert("cat", 1.0, []rune("kat"))
	require.ErrorIs(t, err, ErrConflictingPrefix)

	// failed calls must not mutate
	require.Equal(t, before, tr.String())
	require.Equal(t, 3, tr.Len())
}

func TestSimpleInvalidLimit(t *testing.T) {
	tr := seedSimple(t)
	_, err := tr.Autocomplete(nil, -1)
	require.ErrorIs(t, err, ErrInvalidLimit)
}

func TestSimpleOrderIndependence(t *testing.T) {
	inserts := []struct {
		value  string
		weight float64
	}{
		{"cat", 2.0}, {"car", 3.0}, {"dog", 4.0},
	}
	orders := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	for _, order := range orders {
		tr := NewSimpleTrie[rune, string]()
		for _, i := range order {
			in := inserts[i]
			require.NoError(t, tr.Insert(in.value, in.weight, []rune(in.value)))
		}
		require.Equal(t, 3, tr.Len())
		require.InDelta(t, 9.0, tr.root.weight, 1e-9)
		all, err := tr.Autocomplete(nil, 0)
		require.NoError(t, err)
		require.Equal(t, []Match[string]{
			{Value: "dog", Weight: 4.0},
			{Value: "car", Weight: 3.0},
			{Value: "cat", Weight: 2.0},
		}, all)
		checkSimple(t, tr)
	}
}

// words as symbols instead of runes, the sentence engine's shape
func TestSimpleWordSymbols(t *testing.T) {
	tr := NewSimpleTrie[string, string]()
	require.NoError(t, tr.Insert("what a wonderful world", 1.0, []string{"what", "a", "wonderful", "world"}))
	require.NoError(t, tr.Insert("what time is it", 2.0, []string{"what", "time", "is", "it"}))

	matches, err := tr.Autocomplete([]string{"what"}, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, "what time is it", matches[0].Value)
	checkSimple(t, tr)
}
