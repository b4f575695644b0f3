package axis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/stylewalk/pkg/axis"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

func TestElement_Contract(t *testing.T) {
	t.Parallel()

	tree := newSampleTree()
	tree.b.Props = map[string]string{"name": "bee", "access": "public"}

	elem := axis.NewElement(tree.b)
	assert.Equal(t, "B", elem.KindName())
	assert.Same(t, tree.b, elem.Node())
	assert.Equal(t, tree.b, elem.Identity())
	assert.Equal(t, tree.b.Order(), elem.Order())
	assert.Equal(t, tree.b.Pos, elem.Positions())

	_, ok := elem.Attribute(axis.AttrText)
	assert.False(t, ok)

	name, ok := elem.Attribute("name")
	require.True(t, ok)
	assert.Equal(t, "bee", name)

	assert.Equal(t, []axis.Attribute{
		{Name: "access", Value: "public"},
		{Name: "name", Value: "bee"},
	}, elem.Attributes())

	parent := elem.Parent()
	require.NotNil(t, parent)
	assert.Equal(t, "file", parent.KindName())
	assert.Nil(t, axis.NewElement(tree.root).Parent())
	assert.Nil(t, axis.NewElement(nil))

	// Children is restartable.
	assert.Len(t, axis.Collect(elem.Children()), 2)
	assert.Len(t, axis.Collect(elem.Children()), 2)

	leaf := axis.NewElement(tree.b1)
	text, ok := leaf.Attribute(axis.AttrText)
	require.True(t, ok)
	assert.Equal(t, "one", text)
	assert.Equal(t, []axis.Attribute{{Name: "text", Value: "one"}}, leaf.Attributes())
}

func TestBlockElement_Contract(t *testing.T) {
	t.Parallel()

	tree := newSampleTree()
	block := &node.TextBlock{Lines: []string{"`x", "y`"}, StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 3}

	elem := axis.NewBlockElement(block, tree.b)
	assert.Equal(t, axis.KindTextBlock, elem.KindName())
	assert.Nil(t, elem.Node())
	assert.Same(t, block, elem.Block())
	assert.Equal(t, block, elem.Identity())
	assert.Equal(t, 2, elem.Positions().StartLine)
	assert.Equal(t, tree.b.Order(), elem.Order())

	text, ok := elem.Attribute(axis.AttrText)
	require.True(t, ok)
	assert.Equal(t, "`x\ny`", text)

	_, ok = elem.Attribute("name")
	assert.False(t, ok)

	assert.Empty(t, axis.Collect(elem.Children()))
	assert.Equal(t, []string{"B", "file"}, kinds(axis.Collect(elem.Navigate(axis.Ancestor))))
	assert.Equal(t, []string{"text_block", "B", "file"}, kinds(axis.Collect(elem.Navigate(axis.AncestorOrSelf))))
	assert.Equal(t, []string{"B"}, kinds(axis.Collect(elem.Navigate(axis.Parent))))
	assert.Empty(t, axis.Collect(elem.Navigate(axis.Following)))

	orphan := axis.NewBlockElement(block, nil)
	assert.Nil(t, orphan.Parent())
	assert.Equal(t, 0, orphan.Order())
	assert.Empty(t, axis.Collect(orphan.Navigate(axis.Parent)))
}
