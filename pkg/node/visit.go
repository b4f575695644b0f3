package node

const visitStackInitCap = 64

// visitFrame tracks the next child to descend into; -1 means enter has not
// been fired for the node yet.
type visitFrame struct {
	node     *Node
	childIdx int
}

// Walk performs an iterative depth-first traversal. enter fires before a
// node's children and leave after all of them. Either callback may be nil.
func Walk(root *Node, enter, leave func(*Node)) {
	if root == nil {
		return
	}

	stack := make([]visitFrame, 0, visitStackInitCap)
	stack = append(stack, visitFrame{node: root, childIdx: -1})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.childIdx == -1 {
			if enter != nil {
				enter(top.node)
			}

			top.childIdx = 0
		}

		if top.childIdx < len(top.node.Children) {
			child := top.node.Children[top.childIdx]
			top.childIdx++

			stack = append(stack, visitFrame{node: child, childIdx: -1})

			continue
		}

		if leave != nil {
			leave(top.node)
		}

		stack = stack[:len(stack)-1]
	}
}

// VisitPreOrder visits all nodes in pre-order (root, then children left-to-right).
func (n *Node) VisitPreOrder(fn func(*Node)) {
	Walk(n, fn, nil)
}

// VisitPostOrder visits all nodes in post-order (children left-to-right, then root).
func (n *Node) VisitPostOrder(fn func(*Node)) {
	Walk(n, nil, fn)
}

// Find returns all nodes in the tree (including n) for which predicate is
// true, in pre-order.
func (n *Node) Find(predicate func(*Node) bool) []*Node {
	var found []*Node

	n.VisitPreOrder(func(candidate *Node) {
		if predicate(candidate) {
			found = append(found, candidate)
		}
	})

	return found
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 0

	n.VisitPreOrder(func(*Node) { total++ })

	return total
}

// CoveringPath returns the nodes whose span covers (line, col), innermost first.
// It descends from n through the first covering child at each level.
func (n *Node) CoveringPath(line, col int) []*Node {
	if n == nil || !n.Covers(line, col) {
		return nil
	}

	path := []*Node{n}
	current := n

	for {
		next := (*Node)(nil)

		for _, child := range current.Children {
			if child.Covers(line, col) {
				next = child

				break
			}
		}

		if next == nil {
			break
		}

		path = append(path, next)
		current = next
	}

	for left, right := 0, len(path)-1; left < right; left, right = left+1, right-1 {
		path[left], path[right] = path[right], path[left]
	}

	return path
}
