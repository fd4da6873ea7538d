// Package syntax provides the syntax-tree side of the analysis engine: a
// tolerant lexer and parser for Swift-style source, an immutable n-ary node
// tree with structural sharing, traversal primitives driven by per-kind
// dispatch tables, and a byte-exact printer.
package syntax

import "strings"

// Kind tags a node with its syntactic role. Rules dispatch on kinds rather
// than on concrete node types.
type Kind int

const (
	// KindToken is a generic leaf the parser has no structure for.
	KindToken Kind = iota
	KindSource
	KindTypeDecl
	KindBody
	KindVarDecl
	KindAttribute
	KindModifier
	KindSwitch
	KindCase
	KindPattern
	KindArgList
	KindWildcard
)

var kindNames = map[Kind]string{
	KindToken:     "token",
	KindSource:    "source",
	KindTypeDecl:  "type-decl",
	KindBody:      "body",
	KindVarDecl:   "var-decl",
	KindAttribute: "attribute",
	KindModifier:  "modifier",
	KindSwitch:    "switch",
	KindCase:      "case",
	KindPattern:   "pattern",
	KindArgList:   "arg-list",
	KindWildcard:  "wildcard",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is one node of an immutable syntax tree. Leaves carry the token text
// plus the trivia (whitespace and comments) that immediately precedes it, so
// printing the leaves in order reproduces the source byte for byte.
//
// Nodes are never mutated after construction. Every "edit" returns a new
// node; siblings and unaffected subtrees are shared by reference.
type Node struct {
	kind     Kind
	text     string
	trivia   string
	offset   int
	children []*Node
}

// NewLeaf builds a leaf node. offset is the byte offset of text within the
// source; trivia is the raw bytes between the previous token and this one.
func NewLeaf(kind Kind, trivia, text string, offset int) *Node {
	return &Node{kind: kind, trivia: trivia, text: text, offset: offset}
}

// NewNode builds an interior node over the given children.
func NewNode(kind Kind, children ...*Node) *Node {
	return &Node{kind: kind, children: children}
}

func (n *Node) Kind() Kind     { return n.kind }
func (n *Node) Text() string   { return n.text }
func (n *Node) Trivia() string { return n.trivia }
func (n *Node) IsLeaf() bool   { return len(n.children) == 0 }

func (n *Node) NumChildren() int  { return len(n.children) }
func (n *Node) Child(i int) *Node { return n.children[i] }

// Children returns a copy of the child slice so callers cannot alias the
// node's internals.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Offset is the byte offset of the first token under the node.
func (n *Node) Offset() int {
	if n.IsLeaf() {
		return n.offset
	}
	return n.children[0].Offset()
}

// End is the byte offset just past the last token under the node.
func (n *Node) End() int {
	if n.IsLeaf() {
		return n.offset + len(n.text)
	}
	return n.children[len(n.children)-1].End()
}

// WithChildren returns a node of the same kind over the given children.
func (n *Node) WithChildren(children []*Node) *Node {
	return &Node{kind: n.kind, children: children}
}

// ReplaceChild returns a copy of n with child i swapped for c. All other
// children are shared with the original.
func (n *Node) ReplaceChild(i int, c *Node) *Node {
	children := n.Children()
	children[i] = c
	return n.WithChildren(children)
}

// RemoveChild returns a copy of n without child i.
func (n *Node) RemoveChild(i int) *Node {
	children := make([]*Node, 0, len(n.children)-1)
	children = append(children, n.children[:i]...)
	children = append(children, n.children[i+1:]...)
	return n.WithChildren(children)
}

// ChildrenOfKind returns the direct children carrying the given kind.
func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// FindChild returns the first direct child of the given kind.
func (n *Node) FindChild(kind Kind) (*Node, int, bool) {
	for i, c := range n.children {
		if c.kind == kind {
			return c, i, true
		}
	}
	return nil, -1, false
}

// Equal reports structural equality: same shape, kinds, token text and
// trivia. Offsets are ignored so trees from different generations compare.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind != b.kind || a.text != b.text || a.trivia != b.trivia {
		return false
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

// Print reproduces the source text under the node by concatenating leaf
// trivia and token text in order.
func (n *Node) Print() string {
	var sb strings.Builder
	n.print(&sb)
	return sb.String()
}

func (n *Node) print(sb *strings.Builder) {
	if n.IsLeaf() {
		sb.WriteString(n.trivia)
		sb.WriteString(n.text)
		return
	}
	for _, c := range n.children {
		c.print(sb)
	}
}
