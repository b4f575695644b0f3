package node

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBlock is returned when a text block ends before it starts.
var ErrInvalidBlock = errors.New("text block ends before it starts")

// TextBlock is a span of source text that the grammar does not represent as
// an ordinary node, such as a comment or a multi-line literal. Lines holds
// one entry per physical line with terminators stripped.
type TextBlock struct {
	Lines     []string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// NewTextBlock validates the span and returns the block.
func NewTextBlock(lines []string, startLine, startCol, endLine, endCol int) (*TextBlock, error) {
	if endLine < startLine || (endLine == startLine && endCol < startCol) {
		return nil, fmt.Errorf("%w: %d:%d-%d:%d", ErrInvalidBlock, startLine, startCol, endLine, endCol)
	}

	return &TextBlock{
		Lines:     lines,
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   endLine,
		EndCol:    endCol,
	}, nil
}

// Text joins the block lines with "\n".
func (b *TextBlock) Text() string {
	return strings.Join(b.Lines, "\n")
}

// Intersects reports whether the block shares at least one position with the
// span (startLine, startCol)-(endLine, endCol). Both spans are inclusive.
func (b *TextBlock) Intersects(startLine, startCol, endLine, endCol int) bool {
	return !comesBefore(b.EndLine, b.EndCol, startLine, startCol) &&
		!comesBefore(endLine, endCol, b.StartLine, b.StartCol)
}

// Contains reports whether (line, col) lies within the block.
func (b *TextBlock) Contains(line, col int) bool {
	return b.Intersects(line, col, line, col)
}

func (b *TextBlock) String() string {
	return fmt.Sprintf("TextBlock[%d:%d-%d:%d]", b.StartLine, b.StartCol, b.EndLine, b.EndCol)
}
