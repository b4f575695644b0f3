package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
)

// TreeCommand prints the positioned tree of a file.
type TreeCommand struct {
	configPath string
	comments   bool
	maxDepth   int
}

// NewTreeCommand creates the tree command.
func NewTreeCommand() *cobra.Command {
	tc := &TreeCommand{}

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the syntax tree of a file",
		Long: `Print every node of the syntax tree with its positions. Lines are 1-based,
columns 0-based, and end positions inclusive.`,
		Args: cobra.ExactArgs(1),
		RunE: tc.run,
	}

	cmd.Flags().StringVarP(&tc.configPath, "config", "c", "", "Config file providing tab width and language")
	cmd.Flags().BoolVar(&tc.comments, "comments", false, "Print the comment tree as well")
	cmd.Flags().IntVarP(&tc.maxDepth, "depth", "d", 0, "Maximum depth to print (0 = unlimited)")

	return cmd
}

func (tc *TreeCommand) run(cmd *cobra.Command, args []string) error {
	file, _, err := parseFile(cmd.Context(), tc.configPath, args[0])
	if err != nil {
		return err
	}

	t := newTable(cmd.OutOrStdout(), table.Row{"Kind", "Start", "End", "Text"})
	tc.appendRows(t, file.Root)

	if tc.comments {
		t.AppendSeparator()
		tc.appendRows(t, file.Comments)
	}

	t.Render()

	return nil
}

type treeFrame struct {
	node  *node.Node
	depth int
}

func (tc *TreeCommand) appendRows(t table.Writer, root *node.Node) {
	if root == nil {
		return
	}

	stack := []treeFrame{{node: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := top.node
		t.AppendRow(table.Row{
			strings.Repeat("  ", top.depth) + string(n.Kind),
			fmt.Sprintf("%d:%d", n.Pos.StartLine, n.Pos.StartCol),
			fmt.Sprintf("%d:%d", n.Pos.EndLine, n.Pos.EndCol),
			cellText(n.Text),
		})

		if tc.maxDepth > 0 && top.depth+1 >= tc.maxDepth {
			continue
		}

		for idx := len(n.Children) - 1; idx >= 0; idx-- {
			stack = append(stack, treeFrame{node: n.Children[idx], depth: top.depth + 1})
		}
	}
}
