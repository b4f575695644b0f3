// Package query implements the structural query language used for
// suppressions and query-driven checks: location paths over the axis model
// with node tests, attribute predicates, boolean connectives, a few string
// functions, positional predicates and unions.
package query

import (
	"strings"

	"github.com/Sumatoshi-tech/stylewalk/pkg/axis"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// Query is a compiled structural query. It is immutable and safe for
// concurrent use.
type Query struct {
	source   string
	root     expr
	absolute bool
}

// Compile parses src. The query must select nodes.
func Compile(src string) (*Query, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyQuery
	}

	root, err := parse(src)
	if err != nil {
		return nil, err
	}

	if !selectsNodes(root) {
		return nil, ErrNotNodeSet
	}

	return &Query{source: src, root: root, absolute: isAbsolute(root)}, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(src string) *Query {
	q, err := Compile(src)
	if err != nil {
		panic(err)
	}

	return q
}

func isAbsolute(e expr) bool {
	switch typed := e.(type) {
	case *pathExpr:
		return typed.absolute
	case *unionExpr:
		for _, part := range typed.parts {
			if !isAbsolute(part) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// String returns the query source.
func (q *Query) String() string {
	return q.source
}

// Absolute reports whether every branch of the query starts at the root.
func (q *Query) Absolute() bool {
	return q.absolute
}

// Evaluate runs the query with ctx as the context item and returns the
// selected items in document order.
func (q *Query) Evaluate(ctx axis.Item) []axis.Item {
	if ctx == nil {
		return nil
	}

	result := evaluate(q.root, evalContext{item: ctx, position: 1, size: 1})

	items := make([]axis.Item, 0, len(result.nodes))
	for _, item := range result.nodes {
		if _, isDoc := item.(*document); !isDoc {
			items = append(items, item)
		}
	}

	return items
}

// Matches reports whether the query selects anything from ctx.
func (q *Query) Matches(ctx axis.Item) bool {
	return len(q.Evaluate(ctx)) > 0
}

// Select evaluates the query from n and returns the selected tree nodes.
func (q *Query) Select(n *node.Node) []*node.Node {
	items := q.Evaluate(axis.NewElement(n))

	nodes := make([]*node.Node, 0, len(items))
	for _, item := range items {
		if selected := item.Node(); selected != nil {
			nodes = append(nodes, selected)
		}
	}

	return nodes
}

// document is the virtual parent of a tree root; absolute paths start here.
type document struct {
	root axis.Item
}

func newDocument(root axis.Item) *document {
	return &document{root: root}
}

func (d *document) KindName() string                { return "" }
func (d *document) Attribute(string) (string, bool) { return "", false }
func (d *document) Attributes() []axis.Attribute    { return nil }
func (d *document) Parent() axis.Item               { return nil }
func (d *document) Children() axis.Iterator         { return axis.Single(d.root) }
func (d *document) Positions() node.Positions       { return d.root.Positions() }
func (d *document) Order() int                      { return -1 }
func (d *document) Identity() any                   { return d }
func (d *document) Node() *node.Node                { return nil }

func (d *document) Navigate(a axis.Axis) axis.Iterator {
	switch a {
	case axis.Child:
		return axis.Single(d.root)
	case axis.Descendant:
		return d.root.Navigate(axis.DescendantOrSelf)
	case axis.DescendantOrSelf:
		return axis.Concat(axis.Single(d), d.root.Navigate(axis.DescendantOrSelf))
	case axis.Self:
		return axis.Single(d)
	case axis.Parent, axis.Ancestor, axis.AncestorOrSelf, axis.FollowingSibling,
		axis.PrecedingSibling, axis.Following, axis.Preceding:
		return axis.Empty()
	}

	return axis.Empty()
}
