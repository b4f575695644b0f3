// Package main provides the entry point for the stylewalk CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/stylewalk/cmd/stylewalk/commands"
	"github.com/Sumatoshi-tech/stylewalk/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "stylewalk",
		Short: "stylewalk - structural style checker",
		Long: `stylewalk parses source files into positioned trees, runs every configured
check in a single traversal and filters the findings through suppressions.

Commands:
  check     Check files and directories
  tree      Print the syntax tree of a file
  query     Evaluate a structural query against files
  suggest   Print suppression entries for a location`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewTreeCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewSuggestCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		// Findings were already printed; only the exit status is left.
		if !errors.Is(err, commands.ErrViolations) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stylewalk %s\n", version.String())
		},
	}
}
