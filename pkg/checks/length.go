package checks

import (
	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// Message keys of the length checks.
const (
	KeyFileLength     = "file.length"
	KeyFunctionLength = "function.length"
)

const (
	defaultMaxFileLines     = 2000
	defaultMaxFunctionLines = 150
)

// FileLength limits the number of lines in a file.
type FileLength struct {
	check.Base

	max int
}

// NewFileLength creates the check with its default limit.
func NewFileLength() *FileLength {
	return &FileLength{max: defaultMaxFileLines}
}

// ID implements [check.Check].
func (c *FileLength) ID() string { return "FileLength" }

// AcceptableKinds implements [check.Check].
func (c *FileLength) AcceptableKinds() []node.Kind { return check.Kinds(node.KindFile) }

// DefaultKinds implements [check.Check].
func (c *FileLength) DefaultKinds() []node.Kind { return c.AcceptableKinds() }

// Configure reads the max option.
func (c *FileLength) Configure(options map[string]any) error {
	return intOption(options, "max", &c.max)
}

// Messages implements [check.MessageProvider].
func (c *FileLength) Messages() map[string]string {
	return map[string]string{KeyFileLength: "File length is {0} lines (max allowed is {1})."}
}

// Enter compares the line count with the limit.
func (c *FileLength) Enter(ctx *check.Context, root *node.Node) {
	contents := ctx.Contents()
	if contents == nil {
		return
	}

	if count := contents.Lines().LineCount(); count > c.max {
		ctx.ReportAt(1, 0, KeyFileLength, count, c.max)
	}
}

// functionKinds covers function-like declarations of every supported grammar.
var functionKinds = check.Kinds( //nolint:gochecknoglobals // static kind list.
	"function_declaration",
	"method_declaration",
	"func_literal",
	"constructor_declaration",
	"lambda_expression",
)

// FunctionLength limits the number of lines a function spans.
type FunctionLength struct {
	check.Base

	max        int
	countEmpty bool
}

// NewFunctionLength creates the check with its default limit.
func NewFunctionLength() *FunctionLength {
	return &FunctionLength{max: defaultMaxFunctionLines, countEmpty: true}
}

// ID implements [check.Check].
func (c *FunctionLength) ID() string { return "FunctionLength" }

// AcceptableKinds implements [check.Check].
func (c *FunctionLength) AcceptableKinds() []node.Kind { return functionKinds }

// DefaultKinds implements [check.Check].
func (c *FunctionLength) DefaultKinds() []node.Kind {
	return check.Kinds("function_declaration", "method_declaration", "constructor_declaration")
}

// Configure reads the max and count_empty options.
func (c *FunctionLength) Configure(options map[string]any) error {
	err := intOption(options, "max", &c.max)
	if err != nil {
		return err
	}

	return boolOption(options, "count_empty", &c.countEmpty)
}

// Messages implements [check.MessageProvider].
func (c *FunctionLength) Messages() map[string]string {
	return map[string]string{KeyFunctionLength: "Function {0} has {1} lines (max allowed is {2})."}
}

// Enter measures the function span.
func (c *FunctionLength) Enter(ctx *check.Context, n *node.Node) {
	count := n.Pos.EndLine - n.Pos.StartLine + 1

	if !c.countEmpty {
		if contents := ctx.Contents(); contents != nil {
			for line := n.Pos.StartLine; line <= n.Pos.EndLine; line++ {
				if contents.LineIsBlank(line) || contents.LineIsComment(line) {
					count--
				}
			}
		}
	}

	if count > c.max {
		name := n.Name()
		if name == "" {
			name = string(n.Kind)
		}

		ctx.Report(KeyFunctionLength, name, count, c.max)
	}
}
