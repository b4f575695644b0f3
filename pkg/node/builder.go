package node

// Builder provides a fluent interface for building Node instances.
type Builder struct {
	node *Node
}

// NewBuilder starts a new node.
func NewBuilder() *Builder {
	return &Builder{node: &Node{}}
}

// WithKind sets the node kind.
func (b *Builder) WithKind(kind Kind) *Builder {
	b.node.Kind = kind

	return b
}

// WithText sets the node text.
func (b *Builder) WithText(text string) *Builder {
	b.node.Text = text

	return b
}

// WithPositions sets the node span.
func (b *Builder) WithPositions(pos Positions) *Builder {
	b.node.Pos = pos

	return b
}

// WithSpan sets the line/column part of the node span.
func (b *Builder) WithSpan(startLine, startCol, endLine, endCol int) *Builder {
	b.node.Pos.StartLine = startLine
	b.node.Pos.StartCol = startCol
	b.node.Pos.EndLine = endLine
	b.node.Pos.EndCol = endCol

	return b
}

// WithProp sets a single property.
func (b *Builder) WithProp(key, value string) *Builder {
	if b.node.Props == nil {
		b.node.Props = make(map[string]string)
	}

	b.node.Props[key] = value

	return b
}

// WithChildren appends children, linking each back to the node.
func (b *Builder) WithChildren(children ...*Node) *Builder {
	for _, child := range children {
		b.node.AddChild(child)
	}

	return b
}

// Build returns the node.
func (b *Builder) Build() *Node {
	return b.node
}

// Finalize links every node of the tree to its parent and assigns pre-order
// document indexes. It must be called once a tree is complete and before it
// is shared.
func Finalize(root *Node) {
	if root == nil {
		return
	}

	root.parent = nil
	root.index = 0
	order := 0

	stack := make([]*Node, 0, visitStackInitCap)
	stack = append(stack, root)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		current.order = order
		order++

		for idx := len(current.Children) - 1; idx >= 0; idx-- {
			child := current.Children[idx]
			child.parent = current
			child.index = idx
			stack = append(stack, child)
		}
	}
}
