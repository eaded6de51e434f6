package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/budgetwise-dev/budgetwise/internal/categories"
	"github.com/budgetwise-dev/budgetwise/internal/ledger"
	"github.com/budgetwise-dev/budgetwise/internal/report"
	"github.com/budgetwise-dev/budgetwise/internal/trend"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Spending reports",
	}
	reportCmd.AddCommand(newReportSummaryCommand())
	reportCmd.AddCommand(newReportCategoriesCommand())
	reportCmd.AddCommand(newReportTrendCommand())
	return reportCmd
}

func newReportSummaryCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Current-month income, expenses, and savings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), dir)
			if err != nil {
				return err
			}

			txs, err := e.store.Transactions(cmd.Context(), e.owner(), ledger.Filter{})
			if err != nil {
				return err
			}
			svc, err := categories.Load(cmd.Context(), e.store, e.owner())
			if err != nil {
				return err
			}
			budgets, err := e.store.Budgets(cmd.Context(), e.owner())
			if err != nil {
				return err
			}
			goals, err := e.store.Goals(cmd.Context(), e.owner())
			if err != nil {
				return err
			}

			stats := report.BuildDashboard(txs, budgets, goals, svc.TypeOf, time.Now())
			cur := e.cfg.Profile.Currency
			fmt.Printf("This month\n")
			fmt.Printf("  Income:   %s %s\n", cur, stats.MonthlyIncome.StringFixed(2))
			fmt.Printf("  Expenses: %s %s\n", cur, stats.MonthlyExpense.StringFixed(2))
			fmt.Printf("  Savings:  %s %s\n", cur, stats.NetSavings.StringFixed(2))
			fmt.Printf("All time\n")
			fmt.Printf("  %d income, %d expense transactions\n", stats.IncomeCount, stats.ExpenseCount)
			fmt.Printf("  Budgeted %s %s, goal progress %s / %s\n",
				cur, stats.TotalBudget.StringFixed(2),
				stats.TotalGoalCurrent.StringFixed(2), stats.TotalGoalTarget.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	return cmd
}

func newReportCategoriesCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Current-month expenses by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), dir)
			if err != nil {
				return err
			}

			txs, err := e.store.Transactions(cmd.Context(), e.owner(), ledger.Filter{})
			if err != nil {
				return err
			}
			svc, err := categories.Load(cmd.Context(), e.store, e.owner())
			if err != nil {
				return err
			}

			rows := report.CategoryBreakdown(txs, svc, time.Now())
			if len(rows) == 0 {
				fmt.Println("No expenses this month.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tTOTAL\tCOUNT\tSHARE")
			for _, row := range rows {
				name := row.Category.Name
				if name == "" {
					name = fmt.Sprintf("category %d", row.Category.ID)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s%%\n",
					name, row.Total.StringFixed(2), row.Count, row.Share.StringFixed(2))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	return cmd
}

func newReportTrendCommand() *cobra.Command {
	var dir string
	var from, to string

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Month-by-month income, expenses, and savings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), dir)
			if err != nil {
				return err
			}

			end := time.Now()
			if to != "" {
				end, err = parseDate(to)
				if err != nil {
					return err
				}
			}
			start := end.AddDate(0, -5, 0)
			if from != "" {
				start, err = parseDate(from)
				if err != nil {
					return err
				}
			}

			txs, err := e.store.Transactions(cmd.Context(), e.owner(), ledger.Filter{})
			if err != nil {
				return err
			}
			svc, err := categories.Load(cmd.Context(), e.store, e.owner())
			if err != nil {
				return err
			}

			points, err := trend.Build(start, end, txs, svc.TypeOf)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES\tSAVINGS")
			for _, p := range points {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					p.Label, p.Income.StringFixed(2), p.Expense.StringFixed(2), p.Savings.StringFixed(2))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD (default 6 months ago)")
	cmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD (default today)")
	return cmd
}
