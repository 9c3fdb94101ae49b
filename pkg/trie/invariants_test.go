package trie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checkNodeInvariants verifies everything that must hold at rest: weights sum
// bottom-up, children stay weight-sorted, no empty subtree survives, and the
// compressed engine never keeps a lone internal child outside the root.
func checkNodeInvariants[S comparable, V comparable](t *testing.T, n *node[S, V], isRoot, compressed bool) {
	t.Helper()
	if n.leaf {
		require.Empty(t, n.children, "leaf with children")
		require.Greater(t, n.weight, 0.0, "leaf without weight")
		return
	}
	if !isRoot {
		if compressed {
			require.NotEmpty(t, n.fragment, "internal node without fragment")
		} else {
			require.Len(t, n.fragment, 1, "uncompressed fragment length")
		}
	} else {
		require.Empty(t, n.fragment, "root fragment must be empty")
	}
	if len(n.children) == 0 {
		require.True(t, isRoot, "childless non-root internal node")
		require.Zero(t, n.weight, "empty tree must weigh 0")
		return
	}
	require.InDelta(t, n.childWeightSum(), n.weight, 1e-9, "weight is not the child sum")
	for i := 1; i < len(n.children); i++ {
		require.LessOrEqual(t, n.children[i].weight, n.children[i-1].weight, "children out of weight order")
	}
	if compressed && !isRoot && len(n.children) == 1 {
		require.True(t, n.children[0].leaf, "single internal child should have been merged")
	}
	seen := make(map[S]bool)
	for _, c := range n.children {
		if !c.leaf {
			require.False(t, seen[c.fragment[0]], "children share a leading symbol")
			seen[c.fragment[0]] = true
		}
		checkNodeInvariants(t, c, false, compressed)
	}
}

func checkSimple[S comparable, V comparable](t *testing.T, tr *SimpleTrie[S, V]) {
	t.Helper()
	checkNodeInvariants(t, tr.root, true, false)
}

func checkCompressed[S comparable, V comparable](t *testing.T, tr *CompressedTrie[S, V]) {
	t.Helper()
	checkNodeInvariants(t, tr.root, true, true)
}
