package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/stylewalk/pkg/source"
)

const sample = "package a\n" +
	"\n" +
	"/** Doc for F. */\n" +
	"\n" +
	"func F() { // trailing\n" +
	"\t/* multi\n" +
	"\t   line */\n" +
	"}\n"

func newSampleContents(t *testing.T) *source.Contents {
	t.Helper()

	contents := source.NewContents("a.go", source.NewLineIndex([]byte(sample)), 4)

	_, err := contents.AddBlockComment(3, 0, 3, 16)
	require.NoError(t, err)

	contents.AddLineComment(5, 11)

	_, err = contents.AddBlockComment(6, 1, 7, 10)
	require.NoError(t, err)

	return contents
}

func TestContents_CommentText(t *testing.T) {
	t.Parallel()

	contents := newSampleContents(t)

	assert.Equal(t, "// trailing", contents.LineComments()[5].Text())
	assert.Equal(t, 21, contents.LineComments()[5].EndCol)

	blocks := contents.BlockComments()[6]
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"/* multi", "\t   line */"}, blocks[0].Lines)
}

func TestContents_CommentsOrdered(t *testing.T) {
	t.Parallel()

	comments := newSampleContents(t).Comments()
	require.Len(t, comments, 3)
	assert.Equal(t, 3, comments[0].StartLine)
	assert.Equal(t, 5, comments[1].StartLine)
	assert.Equal(t, 6, comments[2].StartLine)
}

func TestContents_HasIntersectionWithComment(t *testing.T) {
	t.Parallel()

	contents := newSampleContents(t)

	assert.True(t, contents.HasIntersectionWithComment(5, 0, 5, 30))
	assert.True(t, contents.HasIntersectionWithComment(7, 0, 7, 0))
	assert.False(t, contents.HasIntersectionWithComment(5, 0, 5, 10))
	assert.False(t, contents.HasIntersectionWithComment(8, 0, 8, 0))
}

func TestContents_DocCommentBefore(t *testing.T) {
	t.Parallel()

	contents := newSampleContents(t)

	doc := contents.DocCommentBefore(5)
	require.NotNil(t, doc)
	assert.Equal(t, "/** Doc for F. */", doc.Text())

	assert.Nil(t, contents.DocCommentBefore(1))
	assert.Nil(t, contents.DocCommentBefore(3))
}

func TestContents_LineClassification(t *testing.T) {
	t.Parallel()

	contents := source.NewContents("a.go", source.NewLineIndex([]byte("x\n  \n  // c\ny // z\n")), 0)

	assert.False(t, contents.LineIsBlank(1))
	assert.True(t, contents.LineIsBlank(2))
	assert.True(t, contents.LineIsComment(3))
	assert.False(t, contents.LineIsComment(4))
	assert.Equal(t, source.DefaultTabWidth, contents.TabWidth())
}

func TestContents_LiteralBlocks(t *testing.T) {
	t.Parallel()

	contents := source.NewContents("a.go", source.NewLineIndex([]byte("x := `a\nb\nc`\n")), 8)

	block, err := contents.AddLiteral(1, 5, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"`a", "b", "c`"}, block.Lines)
	assert.Len(t, contents.LiteralBlocks(), 1)

	_, err = contents.AddLiteral(3, 0, 1, 0)
	require.Error(t, err)
}

func TestContents_ExpandedColumn(t *testing.T) {
	t.Parallel()

	contents := source.NewContents("a.go", source.NewLineIndex([]byte("\tx")), 4)
	assert.Equal(t, 4, contents.ExpandedColumn(1, 1))
}
