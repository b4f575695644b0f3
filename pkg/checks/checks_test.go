package checks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/checks"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
	"github.com/Sumatoshi-tech/stylewalk/pkg/source"
	"github.com/Sumatoshi-tech/stylewalk/pkg/walker"
)

func run(t *testing.T, c check.Check, options map[string]any, in walker.Input) []check.Violation {
	t.Helper()

	if options != nil {
		configurable, ok := c.(check.Configurable)
		require.True(t, ok)
		require.NoError(t, configurable.Configure(options))
	}

	w := walker.New()
	require.NoError(t, w.Register(c, nil, check.SeverityError))

	return w.Walk(in)
}

func fileInput(content string, root *node.Node, comments ...*node.Node) walker.Input {
	lines := source.NewLineIndex([]byte(content))
	contents := source.NewContents("f.go", lines, 0)

	if root == nil {
		last := max(lines.LineCount(), 1)
		root = node.NewBuilder().WithKind(node.KindFile).WithSpan(1, 0, last, 0).Build()
	}

	commentRoot := node.NewBuilder().WithKind(node.KindCommentRoot).WithSpan(1, 0, max(lines.LineCount(), 1), 0).
		WithChildren(comments...).Build()

	for _, c := range comments {
		if c.Kind == node.KindLineComment {
			contents.AddLineComment(c.Pos.StartLine, c.Pos.StartCol)
		}
	}

	node.Finalize(root)
	node.Finalize(commentRoot)

	return walker.Input{File: "f.go", Contents: contents, Root: root, Comments: commentRoot}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	registry := checks.DefaultRegistry()

	assert.Equal(t, []string{
		"TabCharacter", "FileLength", "FunctionLength", "NestingDepth", "EmptyBlock", "TodoComment", "MatchQuery",
	}, registry.IDs())

	all := registry.All()
	assert.True(t, all[len(all)-1].OptIn)
	assert.False(t, all[0].OptIn)

	require.Error(t, checks.Register(registry))
}

func TestTabCharacter(t *testing.T) {
	t.Parallel()

	found := run(t, checks.NewTabCharacter(), nil, fileInput("a\tb", nil))

	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].Line)
	assert.Equal(t, 1, found[0].Col)
	assert.Equal(t, "TabCharacter", found[0].RuleID)
	assert.Equal(t, checks.KeyTabFirst, found[0].Key)
	assert.Equal(t, "File contains tab characters (this is the first instance).", found[0].Message)
}

func TestTabCharacter_EachLine(t *testing.T) {
	t.Parallel()

	found := run(t, checks.NewTabCharacter(), map[string]any{"each_line": "true"},
		fileInput("x\n\ty\nz\nä\tw\n", nil))

	require.Len(t, found, 2)
	assert.Equal(t, [2]int{2, 0}, [2]int{found[0].Line, found[0].Col})
	assert.Equal(t, [2]int{4, 1}, [2]int{found[1].Line, found[1].Col})
}

func TestFileLength(t *testing.T) {
	t.Parallel()

	found := run(t, checks.NewFileLength(), map[string]any{"max": 2}, fileInput("a\nb\nc\n", nil))
	require.Len(t, found, 1)
	assert.Equal(t, "File length is 3 lines (max allowed is 2).", found[0].Message)

	assert.Empty(t, run(t, checks.NewFileLength(), map[string]any{"max": "3"}, fileInput("a\nb\nc\n", nil)))
}

func TestOptions_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		check   check.Configurable
		options map[string]any
	}{
		{"negative max", checks.NewFileLength(), map[string]any{"max": -1}},
		{"non numeric max", checks.NewNestingDepth(), map[string]any{"max": "deep"}},
		{"bad bool", checks.NewTabCharacter(), map[string]any{"each_line": "sometimes"}},
		{"bad regex", checks.NewTodoComment(), map[string]any{"format": "("}},
		{"missing query", checks.NewMatchQuery(), map[string]any{}},
		{"bad query", checks.NewMatchQuery(), map[string]any{"query": "//["}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.ErrorIs(t, tt.check.Configure(tt.options), checks.ErrInvalidOption)
		})
	}
}

func function(name string, startLine, endLine int, children ...*node.Node) *node.Node {
	return node.NewBuilder().WithKind("function_declaration").WithProp(node.PropName, name).
		WithSpan(startLine, 0, endLine, 0).WithChildren(children...).Build()
}

func TestFunctionLength(t *testing.T) {
	t.Parallel()

	content := "func a() {\n\n\t// c\n\tx()\n}\nfunc b() {}\n"
	root := node.NewBuilder().WithKind(node.KindFile).WithSpan(1, 0, 6, 10).
		WithChildren(function("a", 1, 5), function("b", 6, 6)).Build()

	found := run(t, checks.NewFunctionLength(), map[string]any{"max": 3}, fileInput(content, root))
	require.Len(t, found, 1)
	assert.Equal(t, "Function a has 5 lines (max allowed is 3).", found[0].Message)
	assert.Equal(t, node.Kind("function_declaration"), found[0].Kind)

	root = node.NewBuilder().WithKind(node.KindFile).WithSpan(1, 0, 6, 10).
		WithChildren(function("a", 1, 5)).Build()
	comment := node.NewBuilder().WithKind(node.KindLineComment).WithText("// c").WithSpan(3, 1, 3, 4).Build()

	found = run(t, checks.NewFunctionLength(), map[string]any{"max": 3, "count_empty": false},
		fileInput(content, root, comment))
	assert.Empty(t, found)
}

func TestNestingDepth(t *testing.T) {
	t.Parallel()

	stmt := func(kind node.Kind, line int, children ...*node.Node) *node.Node {
		return node.NewBuilder().WithKind(kind).WithSpan(line, 0, line, 1).WithChildren(children...).Build()
	}

	inner := stmt("if_statement", 3)
	root := node.NewBuilder().WithKind(node.KindFile).WithSpan(1, 0, 5, 0).WithChildren(
		stmt("for_statement", 1, stmt("if_statement", 2, inner)),
		stmt("if_statement", 4),
	).Build()

	found := run(t, checks.NewNestingDepth(), map[string]any{"max": 2}, fileInput("1\n2\n3\n4\n5\n", root))

	require.Len(t, found, 1)
	assert.Equal(t, 3, found[0].Line)
	assert.Equal(t, "Nesting depth is 3 (max allowed is 2).", found[0].Message)
}

func TestEmptyBlock(t *testing.T) {
	t.Parallel()

	content := "f() {}\ng() { // c\n}\nh() { x }\n"
	root := node.NewBuilder().WithKind(node.KindFile).WithSpan(1, 0, 4, 8).WithChildren(
		node.NewBuilder().WithKind("block").WithSpan(1, 4, 1, 5).Build(),
		node.NewBuilder().WithKind("block").WithSpan(2, 4, 3, 0).Build(),
		node.NewBuilder().WithKind("block").WithSpan(4, 4, 4, 8).
			WithChildren(node.NewBuilder().WithKind("identifier").WithText("x").WithSpan(4, 6, 4, 6).Build()).Build(),
	).Build()
	comment := node.NewBuilder().WithKind(node.KindLineComment).WithText("// c").WithSpan(2, 6, 2, 9).Build()

	found := run(t, checks.NewEmptyBlock(), nil, fileInput(content, root, comment))
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].Line)
	assert.Equal(t, "Empty block.", found[0].Message)

	found = run(t, checks.NewEmptyBlock(), map[string]any{"allow_comment": false}, fileInput(content, root, comment))
	assert.Len(t, found, 2)
}

func TestTodoComment(t *testing.T) {
	t.Parallel()

	comments := []*node.Node{
		node.NewBuilder().WithKind(node.KindLineComment).WithText("// TODO: fix").WithSpan(1, 2, 1, 13).Build(),
		node.NewBuilder().WithKind(node.KindBlockComment).WithText("/* FIXME later */").WithSpan(2, 0, 2, 16).Build(),
	}

	found := run(t, checks.NewTodoComment(), nil, fileInput("x // TODO: fix\n/* FIXME later */\n", nil, comments...))
	require.Len(t, found, 1)
	assert.Equal(t, [2]int{1, 2}, [2]int{found[0].Line, found[0].Col})
	assert.Equal(t, "Comment matches to-do format 'TODO:'.", found[0].Message)

	found = run(t, checks.NewTodoComment(), map[string]any{"format": "TODO|FIXME"},
		fileInput("x // TODO: fix\n/* FIXME later */\n", nil, comments...))
	assert.Len(t, found, 2)
}

func TestMatchQuery(t *testing.T) {
	t.Parallel()

	root := node.NewBuilder().WithKind(node.KindFile).WithSpan(1, 0, 6, 10).
		WithChildren(function("a", 1, 5), function("b", 6, 6)).Build()

	found := run(t, checks.NewMatchQuery(), map[string]any{
		"query":   "//function_declaration[@name='b']",
		"message": "Do not declare {0} here.",
	}, fileInput("1\n2\n3\n4\n5\n6\n", root))

	require.Len(t, found, 1)
	assert.Equal(t, 6, found[0].Line)
	assert.Equal(t, "Do not declare function_declaration here.", found[0].Message)

	assert.Empty(t, run(t, checks.NewMatchQuery(), nil, fileInput("1\n", nil)))
}
