package checks

import (
	"strings"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// Message keys of [TabCharacter].
const (
	KeyTabFirst = "tab.first"
	KeyTabLine  = "tab.line"
)

// TabCharacter reports tab characters. By default only the first tab of a
// file is reported; with each_line every line containing a tab is.
type TabCharacter struct {
	check.Base

	eachLine bool
}

// NewTabCharacter creates the check.
func NewTabCharacter() *TabCharacter {
	return &TabCharacter{}
}

// ID implements [check.Check].
func (c *TabCharacter) ID() string { return "TabCharacter" }

// AcceptableKinds implements [check.Check].
func (c *TabCharacter) AcceptableKinds() []node.Kind { return check.Kinds(node.KindFile) }

// DefaultKinds implements [check.Check].
func (c *TabCharacter) DefaultKinds() []node.Kind { return c.AcceptableKinds() }

// Configure reads the each_line option.
func (c *TabCharacter) Configure(options map[string]any) error {
	return boolOption(options, "each_line", &c.eachLine)
}

// Messages implements [check.MessageProvider].
func (c *TabCharacter) Messages() map[string]string {
	return map[string]string{
		KeyTabFirst: "File contains tab characters (this is the first instance).",
		KeyTabLine:  "Line contains a tab character.",
	}
}

// Enter scans every line of the file once, on the root.
func (c *TabCharacter) Enter(ctx *check.Context, _ *node.Node) {
	contents := ctx.Contents()
	if contents == nil {
		return
	}

	for idx, line := range contents.Lines().Lines() {
		col := strings.IndexRune(line, '\t')
		if col < 0 {
			continue
		}

		col = len([]rune(line[:col]))

		if !c.eachLine {
			ctx.ReportAt(idx+1, col, KeyTabFirst)

			return
		}

		ctx.ReportAt(idx+1, col, KeyTabLine)
	}
}
