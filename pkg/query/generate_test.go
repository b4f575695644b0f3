package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
	"github.com/Sumatoshi-tech/stylewalk/pkg/query"
	"github.com/Sumatoshi-tech/stylewalk/pkg/source"
)

func TestGenerate_TextPredicates(t *testing.T) {
	t.Parallel()

	f := newFixture()

	queries := query.NewGenerator(f.root).Generate(3, 13, "")
	require.Len(t, queries, 2)

	prefix := "/file/class_declaration[./identifier[@text='Foo']]/class_body" +
		"/method_declaration[./identifier[@text='b']]/block"

	assert.Equal(t, prefix+"/expression_statement[./identifier[@text='x']]", queries[0])
	assert.Equal(t, prefix+"/expression_statement/identifier[@text='x']", queries[1])

	assert.Equal(t, []*node.Node{f.call}, query.MustCompile(queries[0]).Select(f.root))
	assert.Equal(t, []*node.Node{f.callIdent}, query.MustCompile(queries[1]).Select(f.root))
}

func TestGenerate_KindFilter(t *testing.T) {
	t.Parallel()

	f := newFixture()

	queries := query.NewGenerator(f.root).Generate(3, 13, "identifier")
	require.Len(t, queries, 1)
	assert.Equal(t, []*node.Node{f.callIdent}, query.MustCompile(queries[0]).Select(f.root))

	assert.Empty(t, query.NewGenerator(f.root).Generate(9, 0, ""))
}

func TestGenerate_ChildTextDisambiguates(t *testing.T) {
	t.Parallel()

	f := newFixture()

	got := query.GenerateFor(f.blockB)
	assert.Equal(t, "/file/class_declaration[./identifier[@text='Foo']]/class_body"+
		"/method_declaration[./identifier[@text='b']]/block", got)
	assert.Equal(t, []*node.Node{f.blockB}, query.MustCompile(got).Select(f.root))
}

func TestGenerate_PositionalFallback(t *testing.T) {
	t.Parallel()

	first := node.NewBuilder().WithKind("stmt").WithSpan(1, 0, 1, 3).Build()
	second := node.NewBuilder().WithKind("stmt").WithSpan(2, 0, 2, 3).Build()
	root := node.NewBuilder().WithKind(node.KindFile).WithSpan(1, 0, 2, 3).WithChildren(first, second).Build()
	node.Finalize(root)

	got := query.GenerateFor(second)
	assert.Equal(t, "/file/stmt[2]", got)
	assert.Equal(t, []*node.Node{second}, query.MustCompile(got).Select(root))
}

func TestGenerate_TabExpansion(t *testing.T) {
	t.Parallel()

	content := []byte("\tx\n")
	ident := leaf("identifier", "x", 1, 1, 1)
	root := node.NewBuilder().WithKind(node.KindFile).WithSpan(1, 0, 1, 1).WithChildren(ident).Build()
	node.Finalize(root)

	generator := query.NewGenerator(root, query.WithTabExpansion(source.NewLineIndex(content), 4))

	assert.Equal(t, []string{"/file/identifier[@text='x']"}, generator.Generate(1, 4, ""))
	assert.Empty(t, generator.Generate(1, 1, ""))
}

func TestEncode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "&lt;&gt;&apos;&quot;&amp;abc;&amp;lt;", query.Encode(`<>'"&abc;&lt;`))
}

func TestGenerate_CommentTree(t *testing.T) {
	t.Parallel()

	f := newFixture()

	comment := leaf(node.KindLineComment, "// TODO: later", 5, 2, 15)
	comments := node.NewBuilder().WithKind(node.KindCommentRoot).WithSpan(1, 0, 5, 15).WithChildren(comment).Build()
	node.Finalize(comments)

	assert.Empty(t, query.NewGenerator(f.root).Generate(5, 2, ""))

	queries := query.NewGenerator(f.root, query.WithCommentTree(comments)).Generate(5, 2, "")
	require.Equal(t, []string{"/comment_root/line_comment[@text='// TODO: later']"}, queries)
	assert.Equal(t, []*node.Node{comment}, query.MustCompile(queries[0]).Select(comments))

	assert.Empty(t, query.NewGenerator(f.root, query.WithCommentTree(comments)).Generate(1, 0, node.KindCommentRoot))
}
