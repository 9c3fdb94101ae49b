package trie

import (
	"fmt"
	"strings"
)

// SimpleTrie is the uncompressed engine: every tree level consumes exactly
// one symbol of the prefix sequence.
type SimpleTrie[S comparable, V comparable] struct {
	root  *node[S, V]
	paths map[V][]S
}

// NewSimpleTrie returns an empty uncompressed prefix tree.
func NewSimpleTrie[S comparable, V comparable]() *SimpleTrie[S, V] {
	return &SimpleTrie[S, V]{
		root:  &node[S, V]{},
		paths: make(map[V][]S),
	}
}

// Len reports how many values the tree stores.
func (t *SimpleTrie[S, V]) Len() int {
	return len(t.paths)
}

// Insert stores value under prefix, or adds weight to its existing leaf.
func (t *SimpleTrie[S, V]) Insert(value V, weight float64, prefix []S) error {
	if weight <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidWeight, weight)
	}
	if prev, ok := t.paths[value]; ok && !seqEqual(prev, prefix) {
		return fmt.Errorf("%w: %v", ErrConflictingPrefix, value)
	}

	cur := t.root
	stack := []*node[S, V]{cur}
	for _, sym := range prefix {
		child := cur.childFor(sym)
		if child == nil {
			child = &node[S, V]{fragment: []S{sym}}
			cur.children = append(cur.children, child)
		}
		cur = child
		stack = append(stack, cur)
	}

	lf := cur.leafFor(value)
	if lf == nil {
		lf = newLeaf[S, V](value)
		cur.children = append(cur.children, lf)
	}
	lf.weight += weight

	// Settle the whole insertion path: every ancestor gains the new weight
	// and its children are re-sorted.
	for i := len(stack) - 1; i >= 0; i-- {
		stack[i].weight += weight
		stack[i].resort()
	}
	t.paths[value] = cloneSeq(prefix)
	return nil
}

// Autocomplete returns up to limit values stored under prefix.
func (t *SimpleTrie[S, V]) Autocomplete(prefix []S, limit int) ([]Match[V], error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	n := t.root
	for _, sym := range prefix {
		if n = n.childFor(sym); n == nil {
			return nil, nil
		}
	}
	matches := n.collect(limit)
	if limit == 0 {
		sortMatches(matches)
	}
	return matches, nil
}

// Remove deletes every value stored under prefix.
func (t *SimpleTrie[S, V]) Remove(prefix []S) {
	if len(prefix) == 0 {
		t.root = &node[S, V]{}
		t.paths = make(map[V][]S)
		return
	}
	cur := t.root
	stack := []*node[S, V]{cur}
	for _, sym := range prefix {
		if cur = cur.childFor(sym); cur == nil {
			return
		}
		stack = append(stack, cur)
	}
	for _, m := range cur.collect(0) {
		delete(t.paths, m.Value)
	}

	// Detach the matched subtree, then walk back up restoring weights and
	// ordering, dropping any ancestor that no longer leads to a leaf.
	stack[len(stack)-2].deleteChild(cur)
	for i := len(stack) - 2; i >= 0; i-- {
		n := stack[i]
		if len(n.children) == 0 && i > 0 {
			stack[i-1].deleteChild(n)
		}
		n.weight = n.childWeightSum()
		n.resort()
	}
}

// String renders the tree one node per line for debugging.
func (t *SimpleTrie[S, V]) String() string {
	var sb strings.Builder
	t.root.dump(&sb, 0)
	return sb.String()
}
