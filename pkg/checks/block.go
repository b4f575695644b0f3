package checks

import (
	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// KeyEmptyBlock is the message key of [EmptyBlock].
const KeyEmptyBlock = "block.empty"

// EmptyBlock reports blocks without statements. A block holding only a
// comment is accepted unless allow_comment is false.
type EmptyBlock struct {
	check.Base

	allowComment bool
}

// NewEmptyBlock creates the check.
func NewEmptyBlock() *EmptyBlock {
	return &EmptyBlock{allowComment: true}
}

// ID implements [check.Check].
func (c *EmptyBlock) ID() string { return "EmptyBlock" }

// AcceptableKinds implements [check.Check].
func (c *EmptyBlock) AcceptableKinds() []node.Kind {
	return check.Kinds("block", "statement_list", "class_body", "constructor_body")
}

// DefaultKinds implements [check.Check].
func (c *EmptyBlock) DefaultKinds() []node.Kind { return check.Kinds("block") }

// Configure reads the allow_comment option.
func (c *EmptyBlock) Configure(options map[string]any) error {
	return boolOption(options, "allow_comment", &c.allowComment)
}

// Messages implements [check.MessageProvider].
func (c *EmptyBlock) Messages() map[string]string {
	return map[string]string{KeyEmptyBlock: "Empty {0}."}
}

// Enter reports n when it has no children.
func (c *EmptyBlock) Enter(ctx *check.Context, n *node.Node) {
	if len(n.Children) > 0 {
		return
	}

	if c.allowComment {
		contents := ctx.Contents()
		if contents != nil && contents.HasIntersectionWithComment(n.Pos.StartLine, n.Pos.StartCol, n.Pos.EndLine, n.Pos.EndCol) {
			return
		}
	}

	ctx.Report(KeyEmptyBlock, string(n.Kind))
}
