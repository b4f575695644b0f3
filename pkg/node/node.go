// Package node provides the position-exact syntax tree shared by checks,
// the axis layer and the suppression engine.
package node

// Kind identifies the grammar category of a node.
type Kind string

// Kinds produced by the tree builder itself rather than by a grammar.
const (
	KindFile         Kind = "file"
	KindCommentRoot  Kind = "comment_root"
	KindLineComment  Kind = "line_comment"
	KindBlockComment Kind = "block_comment"
)

// Well-known property keys.
const (
	PropName        = "name"
	PropGrammarKind = "grammar_kind"
)

// IsComment reports whether kind belongs to the comment tree.
func (k Kind) IsComment() bool {
	return k == KindLineComment || k == KindBlockComment || k == KindCommentRoot
}

// Positions is the span of a node. Lines are 1-based, columns 0-based
// character counts. The end position is inclusive: it points at the last
// character of the node. Offsets are byte offsets, end exclusive.
type Positions struct {
	StartLine   int `json:"start_line"`
	StartCol    int `json:"start_col"`
	EndLine     int `json:"end_line"`
	EndCol      int `json:"end_col"`
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`
}

// Covers reports whether (line, col) falls within the span, bounds inclusive.
func (p Positions) Covers(line, col int) bool {
	return !comesBefore(line, col, p.StartLine, p.StartCol) &&
		!comesBefore(p.EndLine, p.EndCol, line, col)
}

// Encloses reports whether other lies entirely within p.
func (p Positions) Encloses(other Positions) bool {
	return p.Covers(other.StartLine, other.StartCol) && p.Covers(other.EndLine, other.EndCol)
}

func comesBefore(lineA, colA, lineB, colB int) bool {
	return lineA < lineB || (lineA == lineB && colA < colB)
}

// Node is one element of the syntax tree.
//
// The parent link is a non-owning back-reference; ownership flows from the
// root through Children. Trees are immutable once handed to checks.
type Node struct {
	Kind     Kind              `json:"kind"`
	Text     string            `json:"text,omitempty"`
	Pos      Positions         `json:"pos"`
	Props    map[string]string `json:"props,omitempty"`
	Children []*Node           `json:"children,omitempty"`

	parent *Node
	index  int
	order  int
}

// AddChild appends child and links it back to n.
func (n *Node) AddChild(child *Node) {
	child.parent = n
	child.index = len(n.Children)
	n.Children = append(n.Children, child)
}

// Parent returns the enclosing node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IndexInParent returns the position of n among its parent's children.
func (n *Node) IndexInParent() int {
	return n.index
}

// Order returns the pre-order index of n within its tree, assigned by [Finalize].
func (n *Node) Order() int {
	return n.order
}

// Name returns the "name" property, if any.
func (n *Node) Name() string {
	return n.Props[PropName]
}

// Prop returns a property value.
func (n *Node) Prop(key string) (string, bool) {
	value, ok := n.Props[key]

	return value, ok
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Root walks parent links to the top of the tree.
func (n *Node) Root() *Node {
	current := n
	for current.parent != nil {
		current = current.parent
	}

	return current
}

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int {
	depth := 0
	for current := n.parent; current != nil; current = current.parent {
		depth++
	}

	return depth
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}

	return n.Children[0]
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}

	return n.Children[len(n.Children)-1]
}

// NextSibling returns the following sibling or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil || n.index+1 >= len(n.parent.Children) {
		return nil
	}

	return n.parent.Children[n.index+1]
}

// PrevSibling returns the preceding sibling or nil.
func (n *Node) PrevSibling() *Node {
	if n.parent == nil || n.index == 0 {
		return nil
	}

	return n.parent.Children[n.index-1]
}

// ChildOfKind returns the first child with the given kind.
func (n *Node) ChildOfKind(kind Kind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}

	return nil
}

// Covers reports whether (line, col) falls within the span of n.
func (n *Node) Covers(line, col int) bool {
	return n.Pos.Covers(line, col)
}

// IsAncestorOf reports whether n is a proper ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	for current := other.parent; current != nil; current = current.parent {
		if current == n {
			return true
		}
	}

	return false
}
