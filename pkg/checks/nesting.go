package checks

import (
	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// KeyNestingDepth is the message key of [NestingDepth].
const KeyNestingDepth = "nesting.depth"

const defaultMaxNesting = 3

// nestingKinds lists control flow statements of every supported grammar.
var nestingKinds = check.Kinds( //nolint:gochecknoglobals // static kind list.
	"if_statement",
	"for_statement",
	"enhanced_for_statement",
	"while_statement",
	"do_statement",
	"try_statement",
	"switch_expression",
	"expression_switch_statement",
	"type_switch_statement",
	"select_statement",
)

// NestingDepth reports control flow nested deeper than allowed. It keeps
// the current depth across Enter and Leave.
type NestingDepth struct {
	check.Base

	max   int
	depth int
}

// NewNestingDepth creates the check with its default limit.
func NewNestingDepth() *NestingDepth {
	return &NestingDepth{max: defaultMaxNesting}
}

// ID implements [check.Check].
func (c *NestingDepth) ID() string { return "NestingDepth" }

// AcceptableKinds implements [check.Check].
func (c *NestingDepth) AcceptableKinds() []node.Kind { return nestingKinds }

// DefaultKinds implements [check.Check].
func (c *NestingDepth) DefaultKinds() []node.Kind { return nestingKinds }

// Configure reads the max option.
func (c *NestingDepth) Configure(options map[string]any) error {
	return intOption(options, "max", &c.max)
}

// Messages implements [check.MessageProvider].
func (c *NestingDepth) Messages() map[string]string {
	return map[string]string{KeyNestingDepth: "Nesting depth is {0} (max allowed is {1})."}
}

// BeginTree resets the depth.
func (c *NestingDepth) BeginTree(*check.Context, *node.Node) {
	c.depth = 0
}

// Enter increments the depth.
func (c *NestingDepth) Enter(ctx *check.Context, _ *node.Node) {
	c.depth++

	if c.depth > c.max {
		ctx.Report(KeyNestingDepth, c.depth, c.max)
	}
}

// Leave decrements the depth.
func (c *NestingDepth) Leave(*check.Context, *node.Node) {
	c.depth--
}
