package trie

import (
	"fmt"
	"strings"
)

// CompressedTrie is the path-compressed engine. It shares SimpleTrie's node
// model and external contract but stores each maximal shared symbol run as a
// single fragment: inserts split a fragment where a new sequence diverges,
// removals fold a lone surviving internal child back into its parent. No
// non-root internal node ever keeps exactly one internal child.
type CompressedTrie[S comparable, V comparable] struct {
	root  *node[S, V]
	paths map[V][]S
}

// NewCompressedTrie returns an empty compressed prefix tree.
func NewCompressedTrie[S comparable, V comparable]() *CompressedTrie[S, V] {
	return &CompressedTrie[S, V]{
		root:  &node[S, V]{},
		paths: make(map[V][]S),
	}
}

// Len reports how many values the tree stores.
func (t *CompressedTrie[S, V]) Len() int {
	return len(t.paths)
}

// Insert stores value under prefix, or adds weight to its existing leaf.
func (t *CompressedTrie[S, V]) Insert(value V, weight float64, prefix []S) error {
	if weight <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidWeight, weight)
	}
	if prev, ok := t.paths[value]; ok && !seqEqual(prev, prefix) {
		return fmt.Errorf("%w: %v", ErrConflictingPrefix, value)
	}

	cur := t.root
	stack := []*node[S, V]{cur}
	rem := prefix
	for len(rem) > 0 {
		child := cur.childFor(rem[0])
		if child == nil {
			// Nothing shares a leading symbol: the whole remainder collapses
			// into one fragment.
			child = &node[S, V]{fragment: cloneSeq(rem)}
			cur.children = append(cur.children, child)
			stack = append(stack, child)
			cur = child
			break
		}
		run := commonRun(rem, child.fragment)
		if run == len(child.fragment) {
			cur = child
			stack = append(stack, cur)
			rem = rem[run:]
			continue
		}

		// The sequence diverges inside child's fragment. Split the fragment
		// at the shared run: a new node owns the run, the old child keeps the
		// non-shared tail beneath it.
		lower := child
		upper := &node[S, V]{
			fragment: cloneSeq(lower.fragment[:run]),
			weight:   lower.weight,
			children: []*node[S, V]{lower},
		}
		lower.fragment = cloneSeq(lower.fragment[run:])
		cur.replaceChild(lower, upper)
		stack = append(stack, upper)
		cur = upper
		rem = rem[run:]
		if len(rem) > 0 {
			branch := &node[S, V]{fragment: cloneSeq(rem)}
			upper.children = append(upper.children, branch)
			stack = append(stack, branch)
			cur = branch
		}
		break
	}

	lf := cur.leafFor(value)
	if lf == nil {
		lf = newLeaf[S, V](value)
		cur.children = append(cur.children, lf)
	}
	lf.weight += weight

	for i := len(stack) - 1; i >= 0; i-- {
		stack[i].weight += weight
		stack[i].resort()
	}
	t.paths[value] = cloneSeq(prefix)
	return nil
}

// findNode locates the unique node whose cumulative path covers prefix,
// together with the node chain from the root to it. A prefix ending strictly
// inside a node's fragment still matches that node, since every descendant
// extends the prefix.
func (t *CompressedTrie[S, V]) findNode(prefix []S) (*node[S, V], []*node[S, V]) {
	cur := t.root
	stack := []*node[S, V]{cur}
	rem := prefix
	for len(rem) > 0 {
		child := cur.childFor(rem[0])
		if child == nil {
			return nil, nil
		}
		run := commonRun(rem, child.fragment)
		if run == len(rem) {
			return child, append(stack, child)
		}
		if run < len(child.fragment) {
			return nil, nil
		}
		cur = child
		stack = append(stack, cur)
		rem = rem[run:]
	}
	return cur, stack
}

// Autocomplete returns up to limit values stored under prefix.
func (t *CompressedTrie[S, V]) Autocomplete(prefix []S, limit int) ([]Match[V], error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	n, _ := t.findNode(prefix)
	if n == nil {
		return nil, nil
	}
	matches := n.collect(limit)
	if limit == 0 {
		sortMatches(matches)
	}
	return matches, nil
}

// Remove deletes every value stored under prefix.
func (t *CompressedTrie[S, V]) Remove(prefix []S) {
	if len(prefix) == 0 {
		t.root = &node[S, V]{}
		t.paths = make(map[V][]S)
		return
	}
	target, stack := t.findNode(prefix)
	if target == nil {
		return
	}
	for _, m := range target.collect(0) {
		delete(t.paths, m.Value)
	}

	stack[len(stack)-2].deleteChild(target)
	for i := len(stack) - 2; i >= 0; i-- {
		n := stack[i]
		if len(n.children) == 0 && i > 0 {
			stack[i-1].deleteChild(n)
		}
		n.weight = n.childWeightSum()
		// Pruning can leave a lone internal child; fold it back into its
		// parent so fragments stay maximal.
		if i > 0 && len(n.children) == 1 && n.children[0].internal() {
			only := n.children[0]
			n.fragment = append(cloneSeq(n.fragment), only.fragment...)
			n.children = only.children
		}
		n.resort()
	}
}

// String renders the tree one node per line for debugging.
func (t *CompressedTrie[S, V]) String() string {
	var sb strings.Builder
	t.root.dump(&sb, 0)
	return sb.String()
}
