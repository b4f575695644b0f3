package checks

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
	"github.com/Sumatoshi-tech/stylewalk/pkg/query"
)

var errNoQuery = errors.New("option query is required")

// KeyMatchQuery is the default message key of [MatchQuery].
const KeyMatchQuery = "matchquery.match"

// MatchQuery reports every node a structural query selects. The query is
// evaluated once per file from the root. It is opt-in: globs such as "*"
// do not enable it, and naming it requires a query option.
type MatchQuery struct {
	check.Base

	query   *query.Query
	message string
}

// NewMatchQuery creates an unconfigured check; it reports nothing until a
// query option is set.
func NewMatchQuery() *MatchQuery {
	return &MatchQuery{}
}

// ID implements [check.Check].
func (c *MatchQuery) ID() string { return "MatchQuery" }

// OptIn implements [check.OptIn].
func (c *MatchQuery) OptIn() bool { return true }

// AcceptableKinds implements [check.Check].
func (c *MatchQuery) AcceptableKinds() []node.Kind { return check.Kinds(node.KindFile) }

// DefaultKinds implements [check.Check].
func (c *MatchQuery) DefaultKinds() []node.Kind { return c.AcceptableKinds() }

// Configure compiles the query option and reads message.
func (c *MatchQuery) Configure(options map[string]any) error {
	var src string

	err := stringOption(options, "query", &src)
	if err != nil {
		return err
	}

	if src == "" {
		return fmt.Errorf("%w: %w", ErrInvalidOption, errNoQuery)
	}

	c.query, err = query.Compile(src)
	if err != nil {
		return fmt.Errorf("%w query: %w", ErrInvalidOption, err)
	}

	return stringOption(options, "message", &c.message)
}

// Messages implements [check.MessageProvider].
func (c *MatchQuery) Messages() map[string]string {
	message := c.message
	if message == "" {
		message = "Node {0} matches query {1}."
	}

	return map[string]string{KeyMatchQuery: message}
}

// Enter reports the query result.
func (c *MatchQuery) Enter(ctx *check.Context, root *node.Node) {
	if c.query == nil {
		return
	}

	for _, match := range c.query.Select(root) {
		ctx.ReportNode(match, KeyMatchQuery, string(match.Kind), c.query.String())
	}
}
