package query

import (
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
	"github.com/Sumatoshi-tech/stylewalk/pkg/source"
)

// Generator produces absolute queries that pin down the nodes starting at a
// given location, for use as suppression entries.
type Generator struct {
	root     *node.Node
	comments *node.Node
	lines    *source.LineIndex
	tabWidth int
}

// GeneratorOption configures a [Generator].
type GeneratorOption func(*Generator)

// WithTabExpansion makes the generator compare columns after expanding tabs
// in lines to multiples of tabWidth.
func WithTabExpansion(lines *source.LineIndex, tabWidth int) GeneratorOption {
	return func(g *Generator) {
		g.lines = lines
		g.tabWidth = tabWidth
	}
}

// WithCommentTree also generates queries for comment nodes starting at the
// location. They are rooted at the comment root.
func WithCommentTree(comments *node.Node) GeneratorOption {
	return func(g *Generator) {
		g.comments = comments
	}
}

// NewGenerator creates a generator over the tree rooted at root.
func NewGenerator(root *node.Node, opts ...GeneratorOption) *Generator {
	g := &Generator{root: root}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate returns one query per node that starts at (line, col), outermost
// first, syntax nodes before comments. An empty kind matches nodes of any
// kind.
func (g *Generator) Generate(line, col int, kind node.Kind) []string {
	var queries []string

	visit := func(n *node.Node) {
		if n.Kind != node.KindCommentRoot && g.matches(n, line, col, kind) {
			queries = append(queries, GenerateFor(n))
		}
	}

	g.root.VisitPreOrder(visit)

	if g.comments != nil {
		g.comments.VisitPreOrder(visit)
	}

	return queries
}

func (g *Generator) matches(n *node.Node, line, col int, kind node.Kind) bool {
	if n.Pos.StartLine != line || (kind != "" && n.Kind != kind) {
		return false
	}

	start := n.Pos.StartCol
	if g.lines != nil {
		start = source.ExpandedColumn(g.lines.Line(line), start, g.tabWidth)
	}

	return start == col
}

// GenerateFor returns an absolute query selecting n. When the path alone is
// ambiguous among same-kind siblings, a child-text or positional predicate
// is appended.
func GenerateFor(n *node.Node) string {
	var sb strings.Builder

	sb.WriteString(pathBetween(nil, n))

	if !isAccurateEnough(n) {
		sb.WriteByte('[')

		if child := findTextDescendant(n); child != nil {
			sb.WriteByte('.')
			sb.WriteString(pathBetween(n, child))
		} else {
			sb.WriteString(strconv.Itoa(positionAmongSiblings(n)))
		}

		sb.WriteByte(']')
	}

	return sb.String()
}

// pathBetween builds the steps from just below top down to target. A nil top
// produces an absolute path.
func pathBetween(top, target *node.Node) string {
	var segments []string

	for current := target; current != nil && current != top; current = current.Parent() {
		var sb strings.Builder

		sb.WriteByte('/')
		sb.WriteString(string(current.Kind))

		if hasText(current) {
			sb.WriteString("[@text='")
			sb.WriteString(Encode(current.Text))
			sb.WriteString("']")
		} else if child := findTextChild(current); child != nil && child != target {
			sb.WriteString("[.")
			sb.WriteString(pathBetween(current, child))
			sb.WriteByte(']')
		}

		segments = append(segments, sb.String())
	}

	var sb strings.Builder
	for idx := len(segments) - 1; idx >= 0; idx-- {
		sb.WriteString(segments[idx])
	}

	return sb.String()
}

func hasText(n *node.Node) bool {
	return n.Text != ""
}

func findTextChild(n *node.Node) *node.Node {
	for _, child := range n.Children {
		if hasText(child) {
			return child
		}
	}

	return nil
}

func findTextDescendant(n *node.Node) *node.Node {
	if child := findTextChild(n); child != nil {
		return child
	}

	for _, child := range n.Children {
		if found := findTextDescendant(child); found != nil {
			return found
		}
	}

	return nil
}

func isAccurateEnough(n *node.Node) bool {
	return !hasSameKindSibling(n) || hasText(n) || findTextChild(n) != nil
}

func hasSameKindSibling(n *node.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}

	for _, sibling := range parent.Children {
		if sibling != n && sibling.Kind == n.Kind {
			return true
		}
	}

	return false
}

func positionAmongSiblings(n *node.Node) int {
	pos := 0

	for current := n; current != nil; current = current.PrevSibling() {
		if current.Kind == n.Kind {
			pos++
		}
	}

	return pos
}

//nolint:gochecknoglobals // Immutable replacer.
var attributeEncoder = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
	"&", "&amp;",
)

// Encode escapes a value for use inside a single-quoted attribute literal.
// The result contains no raw quotes, so it never ends the literal early.
func Encode(value string) string {
	return attributeEncoder.Replace(value)
}
