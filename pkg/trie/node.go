package trie

import (
	"fmt"
	"sort"
	"strings"
)

// node is the one structural variant both engines are built from. Its state
// is one of:
//   - empty: weight 0, no children, no value (only ever a cleared root)
//   - leaf: a stored value and its accumulated weight, no children
//   - internal: a path fragment, a weight-sorted child list, and a weight
//     equal to the sum of its children's weights
//
// The fragment is the symbol run an internal node contributes to the path
// relative to its parent. The root's fragment is empty; in SimpleTrie every
// other fragment has length 1, in CompressedTrie length >= 1.
type node[S comparable, V comparable] struct {
	fragment []S
	weight   float64
	children []*node[S, V]
	value    V
	leaf     bool
}

func newLeaf[S comparable, V comparable](value V) *node[S, V] {
	return &node[S, V]{value: value, leaf: true}
}

// internal reports whether n currently holds subtrees.
func (n *node[S, V]) internal() bool {
	return !n.leaf && len(n.children) > 0
}

// childFor returns the internal child whose fragment starts with sym.
// Children never share a leading symbol, so at most one exists.
func (n *node[S, V]) childFor(sym S) *node[S, V] {
	for _, c := range n.children {
		if !c.leaf && c.fragment[0] == sym {
			return c
		}
	}
	return nil
}

// leafFor returns the leaf child holding value, if any.
func (n *node[S, V]) leafFor(value V) *node[S, V] {
	for _, c := range n.children {
		if c.leaf && c.value == value {
			return c
		}
	}
	return nil
}

func (n *node[S, V]) deleteChild(child *node[S, V]) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *node[S, V]) replaceChild(old, repl *node[S, V]) {
	for i, c := range n.children {
		if c == old {
			n.children[i] = repl
			return
		}
	}
}

// resort restores non-increasing weight order. Stable, so equal-weight
// siblings keep their relative order.
func (n *node[S, V]) resort() {
	sort.SliceStable(n.children, func(i, j int) bool {
		return n.children[i].weight > n.children[j].weight
	})
}

func (n *node[S, V]) childWeightSum() float64 {
	var sum float64
	for _, c := range n.children {
		sum += c.weight
	}
	return sum
}

// collect gathers up to limit leaves below n in a pre-order walk that honors
// the stored child order, so heavier subtrees are drained first. limit 0
// collects every leaf. The walk uses an explicit stack; prefix sequences can
// be long relative to the call stack.
func (n *node[S, V]) collect(limit int) []Match[V] {
	var out []Match[V]
	stack := []*node[S, V]{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.leaf {
			out = append(out, Match[V]{Value: cur.value, Weight: cur.weight})
			if limit > 0 && len(out) == limit {
				break
			}
			continue
		}
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
	return out
}

// dump renders the subtree one node per line, indented by depth.
func (n *node[S, V]) dump(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.leaf {
		fmt.Fprintf(sb, "%s%v (%v)\n", indent, n.value, n.weight)
		return
	}
	fmt.Fprintf(sb, "%s%v (%v)\n", indent, n.fragment, n.weight)
	for _, c := range n.children {
		c.dump(sb, depth+1)
	}
}

// commonRun returns the length of the longest shared leading run of a and b.
func commonRun[S comparable](a, b []S) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}

func cloneSeq[S comparable](s []S) []S {
	return append([]S(nil), s...)
}

func seqEqual[S comparable](a, b []S) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortMatches[V comparable](matches []Match[V]) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Weight > matches[j].Weight
	})
}
