// Package commands wires the CLI surface over the ledger, evaluators,
// and scheduler.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgetwise-dev/budgetwise/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "budgetwise",
		Short:   "Personal budget tracking on a plain-text ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAddCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newBudgetCommand())
	rootCmd.AddCommand(newGoalCommand())
	rootCmd.AddCommand(newRecurCommand())

	return rootCmd
}
