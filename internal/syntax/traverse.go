package syntax

import (
	"context"
	"errors"
	"sort"
)

// ErrSkip tells Visit not to descend into the current node's children.
// Rules return it to recover locally from a subtree they cannot interpret.
var ErrSkip = errors.New("skip children")

// Inspect walks the tree preorder. fn returning false stops the descent
// into the current node's children.
func Inspect(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.children {
		Inspect(c, fn)
	}
}

// VisitFunc inspects one node of the kind it was registered for.
type VisitFunc func(*Node) error

// Visit walks the tree preorder dispatching on node kind. The traversal is
// read-only; rules accumulate their own findings. ctx is checked between
// node visits so a caller can cancel a long analysis cooperatively.
func Visit(ctx context.Context, root *Node, table map[Kind]VisitFunc) error {
	var walk func(n *Node) error
	walk = func(n *Node) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if fn, ok := table[n.kind]; ok {
			if err := fn(n); err != nil {
				if errors.Is(err, ErrSkip) {
					return nil
				}
				return err
			}
		}
		for _, c := range n.children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root)
}

// Proposal is a candidate replacement for a node, plus the byte offset of
// the violation the correction should be recorded at.
type Proposal struct {
	Node *Node
	At   int
}

// RewriteFunc inspects a node whose children have already been rewritten
// and either proposes a replacement or declines.
type RewriteFunc func(*Node) (Proposal, bool)

// Rewrite applies the dispatch table post-order: children are rewritten
// before their parent, so nested pattern instances resolve innermost-first
// and an enclosing rewrite happens exactly once. skip, when non-nil, is the
// suppression predicate; a proposal whose offset is suppressed leaves the
// node untouched. Subtrees without any rewrite are returned by reference.
//
// The returned offsets are sorted ascending; because replacements are
// structural rather than textual, the result does not depend on the order
// siblings were visited in.
func Rewrite(root *Node, table map[Kind]RewriteFunc, skip func(offset int) bool) (*Node, []int) {
	var offsets []int
	var walk func(n *Node) *Node
	walk = func(n *Node) *Node {
		cur := n
		if !n.IsLeaf() {
			changed := false
			children := make([]*Node, len(n.children))
			for i, c := range n.children {
				children[i] = walk(c)
				if children[i] != c {
					changed = true
				}
			}
			if changed {
				cur = n.WithChildren(children)
			}
		}
		fn, ok := table[cur.kind]
		if !ok {
			return cur
		}
		p, fixed := fn(cur)
		if !fixed {
			return cur
		}
		if skip != nil && skip(p.At) {
			return cur
		}
		offsets = append(offsets, p.At)
		return p.Node
	}
	newRoot := walk(root)
	sort.Ints(offsets)
	return newRoot, offsets
}
