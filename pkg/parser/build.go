package parser

import (
	"fmt"
	"unicode/utf8"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
	"github.com/Sumatoshi-tech/stylewalk/pkg/source"
)

const (
	errorKind = "ERROR"

	// Maximum bytes of source quoted in a parse error message.
	errorSnippetLen = 20
)

type treeBuilder struct {
	file     string
	lang     *Language
	content  []byte
	lines    *source.LineIndex
	contents *source.Contents
}

type buildFrame struct {
	ts  sitter.Node
	out *node.Node
}

// build converts the named nodes under root into the syntax tree and the
// comment tree. Anonymous tokens are dropped.
func (b *treeBuilder) build(root sitter.Node) (syntax, comments *node.Node) {
	fileSpan := b.fileSpan()

	syntax = &node.Node{
		Kind:  node.KindFile,
		Pos:   fileSpan,
		Props: map[string]string{node.PropGrammarKind: root.Type()},
	}
	comments = &node.Node{Kind: node.KindCommentRoot, Pos: fileSpan}

	stack := []buildFrame{{ts: root, out: syntax}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var pending []buildFrame

		for idx := range frame.ts.NamedChildCount() {
			child := frame.ts.NamedChild(idx)
			if child.IsNull() {
				continue
			}

			text := b.text(child)

			if kind, ok := b.lang.commentKind(child.Type(), text); ok {
				comments.AddChild(b.comment(child, kind, text))

				continue
			}

			converted := b.convert(child, text)
			frame.out.AddChild(converted)
			pending = append(pending, buildFrame{ts: child, out: converted})
		}

		for idx := len(pending) - 1; idx >= 0; idx-- {
			stack = append(stack, pending[idx])
		}
	}

	node.Finalize(syntax)
	node.Finalize(comments)

	return syntax, comments
}

func (b *treeBuilder) convert(ts sitter.Node, text string) *node.Node {
	pos := b.positions(ts)
	out := &node.Node{Kind: node.Kind(ts.Type()), Pos: pos}

	if ts.NamedChildCount() == 0 {
		out.Text = text
	}

	if nameNode := ts.ChildByFieldName("name"); !nameNode.IsNull() {
		out.Props = map[string]string{node.PropName: b.text(nameNode)}
	}

	if b.lang.isLiteral(ts.Type()) && pos.StartLine != pos.EndLine {
		_, _ = b.contents.AddLiteral(pos.StartLine, pos.StartCol, pos.EndLine, pos.EndCol) //nolint:errcheck // span is valid.
	}

	return out
}

func (b *treeBuilder) comment(ts sitter.Node, kind node.Kind, text string) *node.Node {
	pos := b.positions(ts)

	if kind == node.KindLineComment {
		b.contents.AddLineComment(pos.StartLine, pos.StartCol)
	} else {
		_, _ = b.contents.AddBlockComment(pos.StartLine, pos.StartCol, pos.EndLine, pos.EndCol) //nolint:errcheck // span is valid.
	}

	return &node.Node{Kind: kind, Text: text, Pos: pos}
}

// firstError returns the earliest ERROR or MISSING node in document order.
func (b *treeBuilder) firstError(root sitter.Node) error {
	if !root.HasError() {
		return nil
	}

	stack := []sitter.Node{root}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.IsMissing() || current.Type() == errorKind {
			line, col := b.lines.Position(int(current.StartByte())) //nolint:gosec // tree-sitter offsets fit in int.

			return &ParseError{File: b.file, Line: line, Col: col, Msg: b.errorMessage(current)}
		}

		var suspects []sitter.Node

		for idx := range current.ChildCount() {
			child := current.Child(idx)
			if !child.IsNull() && (child.HasError() || child.IsMissing()) {
				suspects = append(suspects, child)
			}
		}

		for idx := len(suspects) - 1; idx >= 0; idx-- {
			stack = append(stack, suspects[idx])
		}
	}

	line, col := b.lines.Position(int(root.StartByte())) //nolint:gosec // tree-sitter offsets fit in int.

	return &ParseError{File: b.file, Line: line, Col: col, Msg: "syntax error"}
}

func (b *treeBuilder) errorMessage(ts sitter.Node) string {
	if ts.IsMissing() {
		return fmt.Sprintf("missing %s", ts.Type())
	}

	return fmt.Sprintf("unexpected %q", truncateRunes(b.text(ts), errorSnippetLen))
}

// truncateRunes keeps at most limit runes of text.
func truncateRunes(text string, limit int) string {
	count := 0

	for idx := range text {
		if count == limit {
			return text[:idx]
		}

		count++
	}

	return text
}

func (b *treeBuilder) text(ts sitter.Node) string {
	start, end := int(ts.StartByte()), int(ts.EndByte()) //nolint:gosec // tree-sitter offsets fit in int.
	if start < 0 || end > len(b.content) || start > end {
		return ""
	}

	return string(b.content[start:end])
}

// positions maps the byte span of ts onto inclusive character positions.
func (b *treeBuilder) positions(ts sitter.Node) node.Positions {
	start, end := int(ts.StartByte()), int(ts.EndByte()) //nolint:gosec // tree-sitter offsets fit in int.

	return b.span(start, end)
}

func (b *treeBuilder) fileSpan() node.Positions {
	return b.span(0, len(b.content))
}

func (b *treeBuilder) span(start, end int) node.Positions {
	pos := node.Positions{StartOffset: start, EndOffset: end}
	pos.StartLine, pos.StartCol = b.lines.Position(start)

	last := start
	if end > start {
		_, size := utf8.DecodeLastRune(b.content[:end])
		last = end - size
	}

	pos.EndLine, pos.EndCol = b.lines.Position(last)

	return pos
}
