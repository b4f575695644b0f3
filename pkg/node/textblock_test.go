package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

func TestNewTextBlock_Validates(t *testing.T) {
	t.Parallel()

	_, err := node.NewTextBlock(nil, 3, 0, 2, 0)
	require.ErrorIs(t, err, node.ErrInvalidBlock)

	_, err = node.NewTextBlock(nil, 3, 5, 3, 4)
	require.ErrorIs(t, err, node.ErrInvalidBlock)

	block, err := node.NewTextBlock([]string{"/* a", "b */"}, 3, 2, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, "/* a\nb */", block.Text())
	assert.Equal(t, "TextBlock[3:2-4:3]", block.String())
}

func TestTextBlock_Intersects(t *testing.T) {
	t.Parallel()

	block := &node.TextBlock{StartLine: 3, StartCol: 2, EndLine: 5, EndCol: 4}

	tests := []struct {
		name                               string
		startLine, startCol, endLine, endCol int
		want                               bool
	}{
		{name: "before", startLine: 1, startCol: 0, endLine: 3, endCol: 1, want: false},
		{name: "touches start", startLine: 1, startCol: 0, endLine: 3, endCol: 2, want: true},
		{name: "inside", startLine: 4, startCol: 0, endLine: 4, endCol: 9, want: true},
		{name: "touches end", startLine: 5, startCol: 4, endLine: 6, endCol: 0, want: true},
		{name: "after", startLine: 5, startCol: 5, endLine: 9, endCol: 0, want: false},
		{name: "encloses", startLine: 1, startCol: 0, endLine: 9, endCol: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, block.Intersects(tt.startLine, tt.startCol, tt.endLine, tt.endCol))
		})
	}

	assert.True(t, block.Contains(4, 100))
	assert.False(t, block.Contains(5, 5))
}
