package commands

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
	"github.com/Sumatoshi-tech/stylewalk/pkg/query"
	"github.com/Sumatoshi-tech/stylewalk/pkg/suppress"
)

var (
	// ErrInvalidLocation indicates a malformed line or column argument.
	ErrInvalidLocation = errors.New("invalid location")
	// ErrNoNodeAtLocation is returned when no node starts at the location.
	ErrNoNodeAtLocation = errors.New("no node starts at location")
)

// SuggestCommand prints suppression entries for a violation location.
type SuggestCommand struct {
	configPath string
	kind       string
	checks     string
	expandTabs bool
	location   bool
}

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand() *cobra.Command {
	sc := &SuggestCommand{}

	cmd := &cobra.Command{
		Use:   "suggest <file> <line> <column>",
		Short: "Print suppression entries for a location",
		Long: `Generate one query suppression entry per node starting at the location,
outermost first, ready to paste into a suppression file.`,
		Args: cobra.ExactArgs(3), //nolint:mnd // file, line and column.
		RunE: sc.run,
	}

	cmd.Flags().StringVarP(&sc.configPath, "config", "c", "", "Config file providing tab width and language")
	cmd.Flags().StringVarP(&sc.kind, "kind", "k", "", "Only nodes of this kind")
	cmd.Flags().StringVar(&sc.checks, "checks", "", "Check ID regex to restrict the entries to")
	cmd.Flags().BoolVar(&sc.expandTabs, "expand-tabs", false, "Treat the column as tab-expanded")
	cmd.Flags().BoolVar(&sc.location, "location", false, "Also print a line/column entry")

	return cmd
}

func (sc *SuggestCommand) run(cmd *cobra.Command, args []string) error {
	line, err := strconv.Atoi(args[1])
	if err != nil || line < 1 {
		return fmt.Errorf("%w: line %q", ErrInvalidLocation, args[1])
	}

	col, err := strconv.Atoi(args[2])
	if err != nil || col < 0 {
		return fmt.Errorf("%w: column %q", ErrInvalidLocation, args[2])
	}

	file, cfg, err := parseFile(cmd.Context(), sc.configPath, args[0])
	if err != nil {
		return err
	}

	opts := []query.GeneratorOption{query.WithCommentTree(file.Comments)}
	if sc.expandTabs {
		opts = append(opts, query.WithTabExpansion(file.Contents.Lines(), cfg.TabWidth))
	}

	queries := query.NewGenerator(file.Root, opts...).Generate(line, col, node.Kind(sc.kind))
	if len(queries) == 0 && !sc.location {
		return fmt.Errorf("%w: %s:%d:%d", ErrNoNodeAtLocation, args[0], line, col)
	}

	files := "^" + regexp.QuoteMeta(args[0]) + "$"
	entries := make([]suppress.RawEntry, 0, len(queries)+1)

	for _, q := range queries {
		entries = append(entries, suppress.RawEntry{Checks: sc.checks, Files: files, Query: q})
	}

	if sc.location {
		entries = append(entries, suppress.RawEntry{
			Checks:  sc.checks,
			Files:   files,
			Lines:   strconv.Itoa(line),
			Columns: strconv.Itoa(col),
		})
	}

	out, err := suppress.Marshal(entries)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(out)
	if err != nil {
		return fmt.Errorf("write suggestions: %w", err)
	}

	return nil
}
