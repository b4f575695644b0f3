package source

import (
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// Contents indexes the parts of a file that live outside the syntax tree:
// comments and multi-line literals, each stored as a [node.TextBlock] and
// addressable by line so checks can correlate them with tree nodes.
type Contents struct {
	name     string
	lines    *LineIndex
	tabWidth int

	lineComments  map[int]*node.TextBlock
	blockComments map[int][]*node.TextBlock
	literals      []*node.TextBlock
}

// NewContents creates an empty index over lines.
func NewContents(name string, lines *LineIndex, tabWidth int) *Contents {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	return &Contents{
		name:          name,
		lines:         lines,
		tabWidth:      tabWidth,
		lineComments:  make(map[int]*node.TextBlock),
		blockComments: make(map[int][]*node.TextBlock),
	}
}

// Name returns the file name the contents belong to.
func (c *Contents) Name() string {
	return c.name
}

// Lines returns the line table.
func (c *Contents) Lines() *LineIndex {
	return c.lines
}

// TabWidth returns the tab width used for expanded columns.
func (c *Contents) TabWidth() int {
	return c.tabWidth
}

// ExpandedColumn returns the tab-expanded column of (line, col).
func (c *Contents) ExpandedColumn(line, col int) int {
	return ExpandedColumn(c.lines.Line(line), col, c.tabWidth)
}

// AddLineComment records a comment that runs from (line, col) to the end of the line.
func (c *Contents) AddLineComment(line, col int) *node.TextBlock {
	text := runeSlice(c.lines.Line(line), col, -1)
	endCol := col + len([]rune(text)) - 1

	if endCol < col {
		endCol = col
	}

	block := &node.TextBlock{
		Lines:     []string{text},
		StartLine: line,
		StartCol:  col,
		EndLine:   line,
		EndCol:    endCol,
	}
	c.lineComments[line] = block

	return block
}

// AddBlockComment records a comment spanning (startLine, startCol) to
// (endLine, endCol), end inclusive.
func (c *Contents) AddBlockComment(startLine, startCol, endLine, endCol int) (*node.TextBlock, error) {
	block, err := node.NewTextBlock(c.extract(startLine, startCol, endLine, endCol), startLine, startCol, endLine, endCol)
	if err != nil {
		return nil, err
	}

	c.blockComments[startLine] = append(c.blockComments[startLine], block)

	return block, nil
}

// AddLiteral records a multi-line literal block.
func (c *Contents) AddLiteral(startLine, startCol, endLine, endCol int) (*node.TextBlock, error) {
	block, err := node.NewTextBlock(c.extract(startLine, startCol, endLine, endCol), startLine, startCol, endLine, endCol)
	if err != nil {
		return nil, err
	}

	c.literals = append(c.literals, block)

	return block, nil
}

// LineComments returns single-line comments keyed by line.
func (c *Contents) LineComments() map[int]*node.TextBlock {
	return c.lineComments
}

// BlockComments returns block comments keyed by start line.
func (c *Contents) BlockComments() map[int][]*node.TextBlock {
	return c.blockComments
}

// LiteralBlocks returns the multi-line literal blocks in source order.
func (c *Contents) LiteralBlocks() []*node.TextBlock {
	return c.literals
}

// Comments returns every comment block ordered by start position.
func (c *Contents) Comments() []*node.TextBlock {
	all := make([]*node.TextBlock, 0, len(c.lineComments)+len(c.blockComments))

	for _, block := range c.lineComments {
		all = append(all, block)
	}

	for _, blocks := range c.blockComments {
		all = append(all, blocks...)
	}

	slices.SortFunc(all, func(a, b *node.TextBlock) int {
		if a.StartLine != b.StartLine {
			return a.StartLine - b.StartLine
		}

		return a.StartCol - b.StartCol
	})

	return all
}

// HasIntersectionWithComment reports whether any comment shares a position
// with the given inclusive span.
func (c *Contents) HasIntersectionWithComment(startLine, startCol, endLine, endCol int) bool {
	for _, blocks := range c.blockComments {
		for _, block := range blocks {
			if block.Intersects(startLine, startCol, endLine, endCol) {
				return true
			}
		}
	}

	for line := startLine; line <= endLine; line++ {
		if block, ok := c.lineComments[line]; ok && block.Intersects(startLine, startCol, endLine, endCol) {
			return true
		}
	}

	return false
}

// DocCommentBefore returns the documentation comment that ends directly
// above line, skipping blank lines. A "/**" block comment or the last line of
// a run of line comments qualifies. It returns nil when there is none.
func (c *Contents) DocCommentBefore(line int) *node.TextBlock {
	candidate := line - 1
	for candidate > 0 && c.LineIsBlank(candidate) {
		candidate--
	}

	if candidate <= 0 {
		return nil
	}

	for _, blocks := range c.blockComments {
		for _, block := range blocks {
			if block.EndLine == candidate && strings.HasPrefix(block.Text(), "/**") {
				return block
			}
		}
	}

	return c.lineComments[candidate]
}

// LineIsBlank reports whether the line holds only whitespace.
func (c *Contents) LineIsBlank(line int) bool {
	return strings.TrimSpace(c.lines.Line(line)) == ""
}

// LineIsComment reports whether the line holds only a "//" comment.
func (c *Contents) LineIsComment(line int) bool {
	return strings.HasPrefix(strings.TrimLeft(c.lines.Line(line), " \t\f\v"), "//")
}

func (c *Contents) extract(startLine, startCol, endLine, endCol int) []string {
	if startLine == endLine {
		return []string{runeSlice(c.lines.Line(startLine), startCol, endCol+1)}
	}

	out := make([]string, 0, endLine-startLine+1)
	out = append(out, runeSlice(c.lines.Line(startLine), startCol, -1))

	for line := startLine + 1; line < endLine; line++ {
		out = append(out, c.lines.Line(line))
	}

	return append(out, runeSlice(c.lines.Line(endLine), 0, endCol+1))
}

// runeSlice cuts s by character index; to < 0 means the end of s.
func runeSlice(s string, from, to int) string {
	runes := []rune(s)

	if to < 0 || to > len(runes) {
		to = len(runes)
	}

	if from > to {
		from = to
	}

	return string(runes[from:to])
}
