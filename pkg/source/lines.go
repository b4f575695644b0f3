package source

import (
	"sort"
	"unicode/utf8"
)

// DefaultTabWidth is the distance between tab stops used for expanded columns.
const DefaultTabWidth = 8

// LineIndex is the line table of a file. It records where every physical
// line starts and where its content ends (before the terminator), and maps
// byte offsets to (line, column) using the same rules as [Tracker].
type LineIndex struct {
	content []byte
	starts  []int
	ends    []int
}

// NewLineIndex scans content once with a [Tracker] and builds the table.
func NewLineIndex(content []byte) *LineIndex {
	idx := &LineIndex{
		content: content,
		starts:  []int{0},
	}

	tracker := NewTracker()
	prev := rune(0)

	for offset := 0; offset < len(content); {
		current, size := utf8.DecodeRune(content[offset:])

		lookahead := EOF
		if offset+size < len(content) {
			lookahead, _ = utf8.DecodeRune(content[offset+size:])
		}

		before, _ := tracker.Position()
		after, _ := tracker.Consume(current, lookahead)

		switch {
		case after != before:
			idx.ends = append(idx.ends, offset)
			idx.starts = append(idx.starts, offset+size)
		case current == '\n' && prev == '\r':
			// Second half of a CRLF pair: the line starts after it.
			idx.starts[len(idx.starts)-1] = offset + size
		}

		prev = current
		offset += size
	}

	idx.ends = append(idx.ends, len(content))

	return idx
}

// Content returns the raw bytes the index was built from.
func (idx *LineIndex) Content() []byte {
	return idx.content
}

// LineCount returns the number of lines. A terminator at the very end of the
// content does not open an extra empty line.
func (idx *LineIndex) LineCount() int {
	count := len(idx.starts)
	if count > 1 && idx.starts[count-1] == len(idx.content) {
		count--
	}

	if len(idx.content) == 0 {
		return 0
	}

	return count
}

// Line returns the text of the 1-based line without its terminator.
// Out of range lines yield an empty string.
func (idx *LineIndex) Line(line int) string {
	if line < 1 || line > len(idx.starts) {
		return ""
	}

	return string(idx.content[idx.starts[line-1]:idx.ends[line-1]])
}

// Lines returns every line of the file, terminators stripped.
func (idx *LineIndex) Lines() []string {
	lines := make([]string, idx.LineCount())
	for i := range lines {
		lines[i] = idx.Line(i + 1)
	}

	return lines
}

// LineStart returns the byte offset at which the 1-based line begins.
func (idx *LineIndex) LineStart(line int) int {
	if line < 1 {
		return 0
	}

	if line > len(idx.starts) {
		return len(idx.content)
	}

	return idx.starts[line-1]
}

// Position maps a byte offset to a 1-based line and a 0-based character column.
func (idx *LineIndex) Position(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}

	if offset > len(idx.content) {
		offset = len(idx.content)
	}

	lineIdx := sort.Search(len(idx.starts), func(i int) bool {
		return idx.starts[i] > offset
	}) - 1

	if lineIdx < 0 {
		lineIdx = 0
	}

	return lineIdx + 1, utf8.RuneCount(idx.content[idx.starts[lineIdx]:offset])
}

// ExpandedColumn returns the width of the first col characters of line when
// tab characters advance to the next multiple of tabWidth.
func ExpandedColumn(line string, col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	width := 0
	seen := 0

	for _, char := range line {
		if seen >= col {
			break
		}

		if char == '\t' {
			width += tabWidth - width%tabWidth
		} else {
			width++
		}

		seen++
	}

	return width
}
