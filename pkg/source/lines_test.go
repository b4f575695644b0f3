package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/stylewalk/pkg/source"
)

func TestLineIndex_Lines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "no terminator", input: "abc", want: []string{"abc"}},
		{name: "trailing LF", input: "a\nb\n", want: []string{"a", "b"}},
		{name: "CRLF", input: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "CR", input: "a\rb", want: []string{"a", "b"}},
		{name: "mixed", input: "a\r\nb\rc\nd", want: []string{"a", "b", "c", "d"}},
		{name: "blank lines", input: "a\n\n\nb", want: []string{"a", "", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			idx := source.NewLineIndex([]byte(tt.input))
			assert.Equal(t, tt.want, idx.Lines())
			assert.Equal(t, len(tt.want), idx.LineCount())
		})
	}
}

func TestLineIndex_Position(t *testing.T) {
	t.Parallel()

	content := []byte("ab\r\ncd\ref\ng")
	idx := source.NewLineIndex(content)

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{offset: 0, wantLine: 1, wantCol: 0},
		{offset: 1, wantLine: 1, wantCol: 1},
		{offset: 4, wantLine: 2, wantCol: 0},
		{offset: 5, wantLine: 2, wantCol: 1},
		{offset: 7, wantLine: 3, wantCol: 0},
		{offset: 10, wantLine: 4, wantCol: 0},
	}

	for _, tt := range tests {
		line, col := idx.Position(tt.offset)
		assert.Equal(t, tt.wantLine, line, "offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "offset %d", tt.offset)
	}
}

func TestLineIndex_PositionCountsCharacters(t *testing.T) {
	t.Parallel()

	content := []byte("é\tx")
	idx := source.NewLineIndex(content)

	line, col := idx.Position(len("é\t"))
	assert.Equal(t, 1, line)
	assert.Equal(t, 2, col)
}

func TestLineIndex_LineOutOfRange(t *testing.T) {
	t.Parallel()

	idx := source.NewLineIndex([]byte("a"))

	assert.Empty(t, idx.Line(0))
	assert.Empty(t, idx.Line(5))
	assert.Equal(t, 1, idx.LineStart(2))
}

func TestExpandedColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		col      int
		tabWidth int
		want     int
	}{
		{name: "no tabs", line: "abcd", col: 3, tabWidth: 8, want: 3},
		{name: "leading tab", line: "\tx", col: 1, tabWidth: 8, want: 8},
		{name: "tab after text", line: "ab\tx", col: 3, tabWidth: 4, want: 4},
		{name: "two tabs", line: "\t\tx", col: 2, tabWidth: 4, want: 8},
		{name: "default width", line: "\tx", col: 1, tabWidth: 0, want: 8},
		{name: "col past end", line: "ab", col: 10, tabWidth: 8, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, source.ExpandedColumn(tt.line, tt.col, tt.tabWidth))
		})
	}
}
