package checks

import (
	"regexp"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// KeyTodo is the message key of [TodoComment].
const KeyTodo = "todo.match"

// TodoComment reports comments matching a pattern, "TODO:" by default.
type TodoComment struct {
	check.Base

	format *regexp.Regexp
}

// NewTodoComment creates the check.
func NewTodoComment() *TodoComment {
	return &TodoComment{format: regexp.MustCompile(`TODO:`)}
}

// ID implements [check.Check].
func (c *TodoComment) ID() string { return "TodoComment" }

// AcceptableKinds implements [check.Check].
func (c *TodoComment) AcceptableKinds() []node.Kind {
	return check.Kinds(node.KindLineComment, node.KindBlockComment)
}

// DefaultKinds implements [check.Check].
func (c *TodoComment) DefaultKinds() []node.Kind { return c.AcceptableKinds() }

// Configure reads the format option.
func (c *TodoComment) Configure(options map[string]any) error {
	return regexpOption(options, "format", &c.format)
}

// Messages implements [check.MessageProvider].
func (c *TodoComment) Messages() map[string]string {
	return map[string]string{KeyTodo: "Comment matches to-do format '{0}'."}
}

// Enter matches the comment text.
func (c *TodoComment) Enter(ctx *check.Context, n *node.Node) {
	if c.format.MatchString(n.Text) {
		ctx.Report(KeyTodo, c.format.String())
	}
}
