package axis

import (
	"iter"

	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// Iterator is a lazy, finite item sequence. Once Next reports false it keeps
// reporting false; a new sequence requires a new iterator.
type Iterator interface {
	Next() (Item, bool)
}

// Navigate returns a fresh iterator over axis a starting at n.
func Navigate(n *node.Node, a Axis) Iterator {
	if n == nil {
		return Empty()
	}

	switch a {
	case Child:
		return ChildrenOf(n)
	case Descendant:
		return descendantsOf(n, false)
	case DescendantOrSelf:
		return descendantsOf(n, true)
	case Parent:
		return Single(wrap(n.Parent()))
	case Self:
		return Single(wrap(n))
	case Ancestor:
		return ancestorsOf(n.Parent())
	case AncestorOrSelf:
		return ancestorsOf(n)
	case FollowingSibling:
		return &siblingIterator{current: n, step: (*node.Node).NextSibling}
	case PrecedingSibling:
		return &siblingIterator{current: n, step: (*node.Node).PrevSibling}
	case Following:
		return &followingIterator{anchor: n}
	case Preceding:
		return &precedingIterator{anchor: n}
	}

	return Empty()
}

// Collect drains it into a slice.
func Collect(it Iterator) []Item {
	var items []Item

	for item, ok := it.Next(); ok; item, ok = it.Next() {
		items = append(items, item)
	}

	return items
}

// Seq adapts it to a range-over-func sequence.
func Seq(it Iterator) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for item, ok := it.Next(); ok; item, ok = it.Next() {
			if !yield(item) {
				return
			}
		}
	}
}

type emptyIterator struct{}

func (emptyIterator) Next() (Item, bool) { return nil, false }

// Empty returns an iterator with no items.
func Empty() Iterator {
	return emptyIterator{}
}

type singleIterator struct {
	item Item
}

func (s *singleIterator) Next() (Item, bool) {
	if s.item == nil {
		return nil, false
	}

	item := s.item
	s.item = nil

	return item, true
}

// Single returns an iterator over one item; a nil item yields nothing.
func Single(item Item) Iterator {
	return &singleIterator{item: item}
}

type concatIterator struct {
	parts []Iterator
}

func (c *concatIterator) Next() (Item, bool) {
	for len(c.parts) > 0 {
		if item, ok := c.parts[0].Next(); ok {
			return item, true
		}

		c.parts = c.parts[1:]
	}

	return nil, false
}

// Concat chains iterators.
func Concat(parts ...Iterator) Iterator {
	return &concatIterator{parts: parts}
}

type childIterator struct {
	parent *node.Node
	idx    int
}

func (c *childIterator) Next() (Item, bool) {
	if c.parent == nil || c.idx >= len(c.parent.Children) {
		c.parent = nil

		return nil, false
	}

	child := c.parent.Children[c.idx]
	c.idx++

	return wrap(child), true
}

// ChildrenOf iterates the children of n in source order.
func ChildrenOf(n *node.Node) Iterator {
	return &childIterator{parent: n}
}

type ancestorIterator struct {
	current *node.Node
}

func (a *ancestorIterator) Next() (Item, bool) {
	if a.current == nil {
		return nil, false
	}

	item := a.current
	a.current = item.Parent()

	return wrap(item), true
}

// ancestorsOf walks parent links starting at start itself.
func ancestorsOf(start *node.Node) Iterator {
	return &ancestorIterator{current: start}
}

type siblingIterator struct {
	current *node.Node
	step    func(*node.Node) *node.Node
}

func (s *siblingIterator) Next() (Item, bool) {
	if s.current == nil {
		return nil, false
	}

	s.current = s.step(s.current)
	if s.current == nil {
		return nil, false
	}

	return wrap(s.current), true
}

// subtreeIterator yields a subtree in pre-order.
type subtreeIterator struct {
	stack []*node.Node
}

func newSubtree(root *node.Node, includeRoot bool) *subtreeIterator {
	it := &subtreeIterator{}

	if includeRoot {
		it.stack = append(it.stack, root)
	} else {
		it.pushChildren(root)
	}

	return it
}

func (s *subtreeIterator) pushChildren(n *node.Node) {
	for idx := len(n.Children) - 1; idx >= 0; idx-- {
		s.stack = append(s.stack, n.Children[idx])
	}
}

func (s *subtreeIterator) Next() (Item, bool) {
	if len(s.stack) == 0 {
		return nil, false
	}

	current := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.pushChildren(current)

	return wrap(current), true
}

func descendantsOf(n *node.Node, includeSelf bool) Iterator {
	return newSubtree(n, includeSelf)
}

type reverseFrame struct {
	node *node.Node
	next int
}

// reverseSubtreeIterator yields a subtree in reverse document order: the
// last descendant first and the subtree root last.
type reverseSubtreeIterator struct {
	stack []reverseFrame
}

func newReverseSubtree(root *node.Node) *reverseSubtreeIterator {
	it := &reverseSubtreeIterator{}
	it.push(root)

	return it
}

func (r *reverseSubtreeIterator) push(n *node.Node) {
	r.stack = append(r.stack, reverseFrame{node: n, next: len(n.Children) - 1})
}

func (r *reverseSubtreeIterator) Next() (Item, bool) {
	for len(r.stack) > 0 {
		top := &r.stack[len(r.stack)-1]

		if top.next >= 0 {
			child := top.node.Children[top.next]
			top.next--
			r.push(child)

			continue
		}

		current := top.node
		r.stack = r.stack[:len(r.stack)-1]

		return wrap(current), true
	}

	return nil, false
}

// followingIterator yields every node after the anchor in document order
// that is not one of its descendants. It climbs one ancestor at a time and,
// at each level, drains the later siblings with their whole subtrees.
type followingIterator struct {
	anchor  *node.Node
	subtree Iterator
}

func (f *followingIterator) Next() (Item, bool) {
	for {
		if f.subtree != nil {
			if item, ok := f.subtree.Next(); ok {
				return item, true
			}

			f.subtree = nil
		}

		if f.anchor == nil {
			return nil, false
		}

		if sibling := f.anchor.NextSibling(); sibling != nil {
			f.anchor = sibling
			f.subtree = newSubtree(sibling, true)

			continue
		}

		f.anchor = f.anchor.Parent()
	}
}

// precedingIterator mirrors followingIterator in reverse document order and
// skips the anchor's ancestors.
type precedingIterator struct {
	anchor  *node.Node
	subtree Iterator
}

func (p *precedingIterator) Next() (Item, bool) {
	for {
		if p.subtree != nil {
			if item, ok := p.subtree.Next(); ok {
				return item, true
			}

			p.subtree = nil
		}

		if p.anchor == nil {
			return nil, false
		}

		if sibling := p.anchor.PrevSibling(); sibling != nil {
			p.anchor = sibling
			p.subtree = newReverseSubtree(sibling)

			continue
		}

		p.anchor = p.anchor.Parent()
	}
}
