package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/budgetwise-dev/budgetwise/internal/goal"
	"github.com/budgetwise-dev/budgetwise/internal/model"
	"github.com/budgetwise-dev/budgetwise/internal/validate"
)

func newGoalCommand() *cobra.Command {
	goalCmd := &cobra.Command{
		Use:   "goal",
		Short: "Savings goals",
	}
	goalCmd.AddCommand(newGoalListCommand())
	goalCmd.AddCommand(newGoalSetCommand())
	goalCmd.AddCommand(newGoalContributeCommand())
	goalCmd.AddCommand(newGoalDeleteCommand())
	return goalCmd
}

func newGoalListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every goal with its progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), dir)
			if err != nil {
				return err
			}

			goals, err := e.store.Goals(cmd.Context(), e.owner())
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Println("No goals defined.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSAVED\tTARGET\tPROGRESS\tDAYS LEFT\tSTATUS")
			for _, ev := range goal.EvaluateAll(goals, time.Now()) {
				if ev.Err != nil {
					fmt.Fprintf(w, "%d\t%s\t-\t-\t-\t-\tinvalid: %v\n", ev.Goal.ID, ev.Goal.Name, ev.Err)
					continue
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s%%\t%d\t%s\n",
					ev.Goal.ID, ev.Goal.Name,
					ev.Goal.CurrentAmount.StringFixed(2),
					ev.Goal.TargetAmount.StringFixed(2),
					ev.Progress.Percentage.StringFixed(1),
					ev.Progress.DaysRemaining,
					ev.Progress.Status)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	return cmd
}

func newGoalSetCommand() *cobra.Command {
	var (
		dir      string
		name     string
		target   string
		current  string
		deadline string
		desc     string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create a savings goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), dir)
			if err != nil {
				return err
			}

			targetAmt, err := decimal.NewFromString(target)
			if err != nil {
				return fmt.Errorf("parsing target %q: %w", target, err)
			}
			currentAmt := decimal.Zero
			if current != "" {
				currentAmt, err = decimal.NewFromString(current)
				if err != nil {
					return fmt.Errorf("parsing current %q: %w", current, err)
				}
			}
			due, err := parseDate(deadline)
			if err != nil {
				return err
			}

			g := model.Goal{
				OwnerID:       e.owner(),
				Name:          name,
				TargetAmount:  targetAmt,
				CurrentAmount: currentAmt,
				Deadline:      due,
				Description:   desc,
			}
			if err := validate.Goal(g, time.Now(), true); err != nil {
				return fmt.Errorf("invalid goal: %w", err)
			}
			if err := e.store.AddGoal(cmd.Context(), &g); err != nil {
				return err
			}

			e.autoCommit("set goal " + g.Name)
			fmt.Printf("Goal %d: %s, %s %s by %s\n", g.ID, g.Name,
				e.cfg.Profile.Currency, g.TargetAmount.StringFixed(2), g.Deadline.Format(dateFormat))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().StringVar(&name, "name", "", "goal name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&target, "target", "", "target amount (required)")
	_ = cmd.MarkFlagRequired("target")
	cmd.Flags().StringVar(&current, "current", "", "amount already saved")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("deadline")
	cmd.Flags().StringVar(&desc, "desc", "", "description")

	return cmd
}

func newGoalContributeCommand() *cobra.Command {
	var dir string
	var amount string

	cmd := &cobra.Command{
		Use:   "contribute <id>",
		Short: "Add saved funds to a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing goal ID %q: %w", args[0], err)
			}
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}
			if !amt.IsPositive() {
				return fmt.Errorf("contribution must be greater than zero")
			}

			e, err := openEnv(cmd.Context(), dir)
			if err != nil {
				return err
			}

			goals, err := e.store.Goals(cmd.Context(), e.owner())
			if err != nil {
				return err
			}
			for _, g := range goals {
				if g.ID != id {
					continue
				}
				g.CurrentAmount = g.CurrentAmount.Add(amt)
				if err := validate.Goal(g, time.Now(), false); err != nil {
					return fmt.Errorf("invalid contribution: %w", err)
				}
				if err := e.store.UpdateGoal(cmd.Context(), g); err != nil {
					return err
				}
				e.autoCommit(fmt.Sprintf("contribute %s to goal %d", amt.StringFixed(2), id))
				fmt.Printf("Goal %d now at %s / %s\n", g.ID,
					g.CurrentAmount.StringFixed(2), g.TargetAmount.StringFixed(2))
				return nil
			}
			return fmt.Errorf("goal %d not found", id)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to add (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newGoalDeleteCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing goal ID %q: %w", args[0], err)
			}

			e, err := openEnv(cmd.Context(), dir)
			if err != nil {
				return err
			}
			if err := e.store.DeleteGoal(cmd.Context(), e.owner(), id); err != nil {
				return err
			}

			e.autoCommit(fmt.Sprintf("delete goal %d", id))
			fmt.Printf("Deleted goal %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	return cmd
}
