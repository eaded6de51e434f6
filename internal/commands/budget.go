package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/budgetwise-dev/budgetwise/internal/budget"
	"github.com/budgetwise-dev/budgetwise/internal/categories"
	"github.com/budgetwise-dev/budgetwise/internal/ledger"
	"github.com/budgetwise-dev/budgetwise/internal/model"
	"github.com/budgetwise-dev/budgetwise/internal/validate"
)

func newBudgetCommand() *cobra.Command {
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Category spending budgets",
	}
	budgetCmd.AddCommand(newBudgetListCommand())
	budgetCmd.AddCommand(newBudgetSetCommand())
	budgetCmd.AddCommand(newBudgetDeleteCommand())
	return budgetCmd
}

func newBudgetListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every budget with its spending status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), dir)
			if err != nil {
				return err
			}

			budgets, err := e.store.Budgets(cmd.Context(), e.owner())
			if err != nil {
				return err
			}
			if len(budgets) == 0 {
				fmt.Println("No budgets defined.")
				return nil
			}
			txs, err := e.store.Transactions(cmd.Context(), e.owner(), ledger.Filter{})
			if err != nil {
				return err
			}
			svc, err := categories.Load(cmd.Context(), e.store, e.owner())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tPERIOD\tLIMIT\tSPENT\tREMAINING\tSTATUS")
			for _, ev := range budget.EvaluateAll(budgets, txs, time.Now()) {
				name := fmt.Sprintf("category %d", ev.Budget.CategoryID)
				if c, ok := svc.Get(ev.Budget.CategoryID); ok {
					name = c.Name
				}
				if ev.Err != nil {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t-\t-\tinvalid: %v\n",
						ev.Budget.ID, name, ev.Budget.Period, ev.Budget.Amount.StringFixed(2), ev.Err)
					continue
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					ev.Budget.ID, name, ev.Budget.Period,
					ev.Budget.Amount.StringFixed(2),
					ev.Progress.Spent.StringFixed(2),
					ev.Progress.Remaining.StringFixed(2),
					ev.Progress.Status)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	return cmd
}

func newBudgetSetCommand() *cobra.Command {
	var (
		dir      string
		category int
		amount   string
		period   string
		start    string
		end      string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create a budget for a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), dir)
			if err != nil {
				return err
			}

			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}

			b := model.Budget{
				OwnerID:    e.owner(),
				CategoryID: category,
				Amount:     amt,
				Period:     model.PeriodKind(period),
			}
			if start != "" {
				b.StartDate, err = parseDate(start)
			} else {
				now := time.Now()
				b.StartDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			}
			if err != nil {
				return err
			}
			if end != "" {
				b.EndDate, err = parseDate(end)
				if err != nil {
					return err
				}
			}

			if err := validate.Budget(b); err != nil {
				return fmt.Errorf("invalid budget: %w", err)
			}
			if err := e.store.AddBudget(cmd.Context(), &b); err != nil {
				return err
			}

			e.autoCommit(fmt.Sprintf("set %s budget for category %d", b.Period, b.CategoryID))
			fmt.Printf("Budget %d: %s %s per %s period\n", b.ID, e.cfg.Profile.Currency, b.Amount.StringFixed(2), b.Period)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().IntVar(&category, "category", 0, "category ID (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&amount, "amount", "", "spending limit (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&period, "period", string(model.PeriodMonthly), "period: daily, weekly, monthly, yearly")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD (default first of this month)")
	cmd.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD (default open-ended)")

	return cmd
}

func newBudgetDeleteCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing budget ID %q: %w", args[0], err)
			}

			e, err := openEnv(cmd.Context(), dir)
			if err != nil {
				return err
			}
			if err := e.store.DeleteBudget(cmd.Context(), e.owner(), id); err != nil {
				return err
			}

			e.autoCommit(fmt.Sprintf("delete budget %d", id))
			fmt.Printf("Deleted budget %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	return cmd
}
