// Package source provides the character-level view of a source file: the
// position tracker, the line table, and the index of comment and literal
// text blocks that the grammar does not expose as ordinary nodes.
package source

// EOF is the lookahead value passed to [Tracker.Consume] for the last character.
const EOF rune = -1

// Tracker maintains a (line, column) cursor over a character stream.
//
// Lines are 1-based and columns 0-based. "\n" always ends a line; "\r" ends a
// line unless it is immediately followed by "\n", in which case the pair is a
// single break attributed to the "\r".
type Tracker struct {
	line   int
	col    int
	skipLF bool
}

// NewTracker returns a tracker positioned at line 1, column 0.
func NewTracker() *Tracker {
	return &Tracker{line: 1}
}

// Consume advances exactly one character and returns the position after it.
func (t *Tracker) Consume(next, lookahead rune) (line, col int) {
	switch next {
	case '\n':
		if t.skipLF {
			t.skipLF = false
		} else {
			t.breakLine()
		}
	case '\r':
		t.breakLine()
		t.skipLF = lookahead == '\n'
	default:
		t.skipLF = false
		t.col++
	}

	return t.line, t.col
}

// Position returns the current cursor without consuming anything.
func (t *Tracker) Position() (line, col int) {
	return t.line, t.col
}

func (t *Tracker) breakLine() {
	t.line++
	t.col = 0
}
