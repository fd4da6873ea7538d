package syntax

// Tree bundles an immutable syntax tree with the source it was parsed from
// and the location converter for that source. Derived trees produced by the
// correction engine share the source and converter of their origin; their
// node offsets remain valid against that origin only.
type Tree struct {
	root     *Node
	src      []byte
	conv     *Converter
	filename string
}

func (t *Tree) Root() *Node           { return t.root }
func (t *Tree) Source() []byte        { return t.src }
func (t *Tree) Converter() *Converter { return t.conv }
func (t *Tree) Filename() string      { return t.filename }

// Print reproduces the source text of the (possibly rewritten) tree.
func (t *Tree) Print() []byte {
	return []byte(t.root.Print())
}

// WithRoot returns a tree over a rewritten root, sharing the original
// source and converter.
func (t *Tree) WithRoot(root *Node) *Tree {
	if root == t.root {
		return t
	}
	return &Tree{root: root, src: t.src, conv: t.conv, filename: t.filename}
}
