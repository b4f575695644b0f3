package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/stylewalk/pkg/query"
)

// Query output formats.
const (
	FormatTable = "table"
	FormatCount = "count"
)

// QueryCommand evaluates a structural query against files.
type QueryCommand struct {
	configPath string
	format     string
	comments   bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	qc := &QueryCommand{}

	cmd := &cobra.Command{
		Use:   "query <expression> <files...>",
		Short: "Evaluate a structural query against files",
		Long: `Evaluate a query against the syntax tree of each file and list the
selected nodes.

Examples:
  stylewalk query '//function_declaration' main.go
  stylewalk query "//method_declaration[@name='run']" Foo.java
  stylewalk query --comments '//line_comment[contains(@text, "TODO")]' main.go`,
		Args: cobra.MinimumNArgs(2), //nolint:mnd // expression and at least one file.
		RunE: qc.run,
	}

	cmd.Flags().StringVarP(&qc.configPath, "config", "c", "", "Config file providing tab width and language")
	cmd.Flags().StringVarP(&qc.format, "format", "f", FormatTable, "Output format: table or count")
	cmd.Flags().BoolVar(&qc.comments, "comments", false, "Query the comment tree instead of the syntax tree")

	return cmd
}

func (qc *QueryCommand) run(cmd *cobra.Command, args []string) error {
	if qc.format != FormatTable && qc.format != FormatCount {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, qc.format)
	}

	q, err := query.Compile(args[0])
	if err != nil {
		return err
	}

	t := newTable(cmd.OutOrStdout(), table.Row{"File", "Start", "End", "Kind", "Text"})
	total := 0

	for _, path := range args[1:] {
		file, _, parseErr := parseFile(cmd.Context(), qc.configPath, path)
		if parseErr != nil {
			return parseErr
		}

		root := file.Root
		if qc.comments {
			root = file.Comments
		}

		for _, n := range q.Select(root) {
			total++

			t.AppendRow(table.Row{
				path,
				fmt.Sprintf("%d:%d", n.Pos.StartLine, n.Pos.StartCol),
				fmt.Sprintf("%d:%d", n.Pos.EndLine, n.Pos.EndCol),
				string(n.Kind),
				cellText(n.Text),
			})
		}
	}

	if qc.format == FormatCount {
		fmt.Fprintln(cmd.OutOrStdout(), total)

		return nil
	}

	t.AppendFooter(table.Row{"", "", "", "Total", total})
	t.Render()

	return nil
}
