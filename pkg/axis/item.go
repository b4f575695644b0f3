package axis

import (
	"slices"

	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// AttrText is the attribute holding a node's lexeme.
const AttrText = "text"

// KindTextBlock is the kind name of items adapted from text blocks.
const KindTextBlock = "text_block"

// Attribute is a key/value pair exposed by an item.
type Attribute struct {
	Name  string
	Value string
}

// Item is the navigation contract shared by tree nodes and text blocks.
type Item interface {
	KindName() string
	Attribute(name string) (string, bool)
	Attributes() []Attribute
	Parent() Item
	Children() Iterator
	Navigate(a Axis) Iterator
	Positions() node.Positions
	// Order is the pre-order position of the item in its tree.
	Order() int
	// Identity is comparable and unique per underlying node or block.
	Identity() any
	// Node returns the underlying tree node, or nil for text blocks.
	Node() *node.Node
}

// Element adapts a tree node.
type Element struct {
	n *node.Node
}

// NewElement wraps n. It returns nil for a nil node.
func NewElement(n *node.Node) *Element {
	if n == nil {
		return nil
	}

	return &Element{n: n}
}

// wrap returns an Item or an untyped nil, never a typed nil pointer.
func wrap(n *node.Node) Item {
	if n == nil {
		return nil
	}

	return &Element{n: n}
}

// KindName returns the node kind.
func (e *Element) KindName() string {
	return string(e.n.Kind)
}

// Attribute returns the node text for "text" and node properties otherwise.
func (e *Element) Attribute(name string) (string, bool) {
	if name == AttrText {
		if e.n.Text == "" {
			return "", false
		}

		return e.n.Text, true
	}

	return e.n.Prop(name)
}

// Attributes lists the text attribute followed by properties sorted by name.
func (e *Element) Attributes() []Attribute {
	attrs := make([]Attribute, 0, len(e.n.Props)+1)

	if e.n.Text != "" {
		attrs = append(attrs, Attribute{Name: AttrText, Value: e.n.Text})
	}

	keys := make([]string, 0, len(e.n.Props))
	for key := range e.n.Props {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, key := range keys {
		attrs = append(attrs, Attribute{Name: key, Value: e.n.Props[key]})
	}

	return attrs
}

// Parent returns the enclosing element.
func (e *Element) Parent() Item {
	return wrap(e.n.Parent())
}

// Children returns a fresh iterator over the node's children.
func (e *Element) Children() Iterator {
	return ChildrenOf(e.n)
}

// Navigate returns a fresh iterator over the given axis.
func (e *Element) Navigate(a Axis) Iterator {
	return Navigate(e.n, a)
}

// Positions returns the node span.
func (e *Element) Positions() node.Positions {
	return e.n.Pos
}

// Order returns the pre-order index of the node.
func (e *Element) Order() int {
	return e.n.Order()
}

// Identity returns the underlying node pointer.
func (e *Element) Identity() any {
	return e.n
}

// Node returns the underlying node.
func (e *Element) Node() *node.Node {
	return e.n
}

// BlockElement adapts a text block. It has no children; its parent is the
// innermost tree node enclosing the block, so ancestor axes still work.
type BlockElement struct {
	block *node.TextBlock
	owner *node.Node
}

// NewBlockElement wraps block, attaching it under owner (which may be nil).
func NewBlockElement(block *node.TextBlock, owner *node.Node) *BlockElement {
	return &BlockElement{block: block, owner: owner}
}

// KindName returns [KindTextBlock].
func (b *BlockElement) KindName() string {
	return KindTextBlock
}

// Attribute exposes the block text.
func (b *BlockElement) Attribute(name string) (string, bool) {
	if name == AttrText {
		return b.block.Text(), true
	}

	return "", false
}

// Attributes lists the text attribute.
func (b *BlockElement) Attributes() []Attribute {
	return []Attribute{{Name: AttrText, Value: b.block.Text()}}
}

// Parent returns the owning element, if any.
func (b *BlockElement) Parent() Item {
	return wrap(b.owner)
}

// Children returns an empty iterator.
func (b *BlockElement) Children() Iterator {
	return Empty()
}

// Navigate supports the axes that make sense for a leaf without siblings.
func (b *BlockElement) Navigate(a Axis) Iterator {
	switch a {
	case Self, DescendantOrSelf:
		return Single(b)
	case AncestorOrSelf:
		return Concat(Single(b), ancestorsOf(b.owner))
	case Parent:
		return Single(wrap(b.owner))
	case Ancestor:
		return ancestorsOf(b.owner)
	case Child, Descendant, FollowingSibling, PrecedingSibling, Following, Preceding:
		return Empty()
	}

	return Empty()
}

// Positions returns the block span.
func (b *BlockElement) Positions() node.Positions {
	return node.Positions{
		StartLine: b.block.StartLine,
		StartCol:  b.block.StartCol,
		EndLine:   b.block.EndLine,
		EndCol:    b.block.EndCol,
	}
}

// Order returns the order of the owning node.
func (b *BlockElement) Order() int {
	if b.owner == nil {
		return 0
	}

	return b.owner.Order()
}

// Identity returns the underlying block pointer.
func (b *BlockElement) Identity() any {
	return b.block
}

// Node returns nil.
func (b *BlockElement) Node() *node.Node {
	return nil
}

// Block returns the adapted text block.
func (b *BlockElement) Block() *node.TextBlock {
	return b.block
}
