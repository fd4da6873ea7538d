package syntax

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitCancellation(t *testing.T) {
	t.Parallel()
	tree, err := Parse("test.swift", []byte(`class C { var x = 1 }`))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = Visit(ctx, tree.Root(), map[Kind]VisitFunc{
		KindVarDecl: func(n *Node) error {
			t.Fatal("visitor must not run after cancellation")
			return nil
		},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVisitSkipChildren(t *testing.T) {
	t.Parallel()
	tree, err := Parse("test.swift", []byte(`class C { var x = 1 }`))
	require.NoError(t, err)

	visited := 0
	err = Visit(context.Background(), tree.Root(), map[Kind]VisitFunc{
		KindTypeDecl: func(n *Node) error { return ErrSkip },
		KindVarDecl: func(n *Node) error {
			visited++
			return nil
		},
	})
	require.NoError(t, err)
	assert.Zero(t, visited, "ErrSkip should prune the declaration inside the type body")
}

func TestRewriteSharesUntouchedSubtrees(t *testing.T) {
	t.Parallel()
	src := "class C {\n\t@IBOutlet weak var label: UILabel?\n\tvar other: Int = 1\n}\n"
	tree, err := Parse("test.swift", []byte(src))
	require.NoError(t, err)

	table := map[Kind]RewriteFunc{
		KindVarDecl: func(n *Node) (Proposal, bool) {
			for i := 0; i < n.NumChildren(); i++ {
				c := n.Child(i)
				if c.Kind() == KindModifier && c.Text() == "weak" {
					return Proposal{Node: n.RemoveChild(i), At: c.Offset()}, true
				}
			}
			return Proposal{}, false
		},
	}

	newRoot, offsets := Rewrite(tree.Root(), table, nil)
	require.Len(t, offsets, 1)
	assert.NotSame(t, tree.Root(), newRoot)

	oldDecls := collectKind(tree.Root(), KindVarDecl)
	newDecls := collectKind(newRoot, KindVarDecl)
	require.Len(t, oldDecls, 2)
	require.Len(t, newDecls, 2)

	// the untouched declaration is shared, the rewritten one is not
	assert.Same(t, oldDecls[1], newDecls[1])
	assert.NotSame(t, oldDecls[0], newDecls[0])
}

func TestRewriteNoChangeReturnsSameRoot(t *testing.T) {
	t.Parallel()
	tree, err := Parse("test.swift", []byte(`class C { var x = 1 }`))
	require.NoError(t, err)

	table := map[Kind]RewriteFunc{
		KindVarDecl: func(n *Node) (Proposal, bool) { return Proposal{}, false },
	}
	newRoot, offsets := Rewrite(tree.Root(), table, nil)
	assert.Same(t, tree.Root(), newRoot)
	assert.Empty(t, offsets)
}

func TestRewriteSkipPredicate(t *testing.T) {
	t.Parallel()
	src := `class C { @IBOutlet weak var label: UILabel? }`
	tree, err := Parse("test.swift", []byte(src))
	require.NoError(t, err)

	table := map[Kind]RewriteFunc{
		KindVarDecl: func(n *Node) (Proposal, bool) {
			mod, _, ok := n.FindChild(KindModifier)
			if !ok {
				return Proposal{}, false
			}
			for i := 0; i < n.NumChildren(); i++ {
				if n.Child(i) == mod {
					return Proposal{Node: n.RemoveChild(i), At: mod.Offset()}, true
				}
			}
			return Proposal{}, false
		},
	}

	newRoot, offsets := Rewrite(tree.Root(), table, func(offset int) bool { return true })
	assert.Same(t, tree.Root(), newRoot)
	assert.Empty(t, offsets)
}

func collectKind(root *Node, kind Kind) []*Node {
	var nodes []*Node
	Inspect(root, func(n *Node) bool {
		if n.Kind() == kind {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}
