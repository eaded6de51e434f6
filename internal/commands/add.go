package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/budgetwise-dev/budgetwise/internal/model"
	"github.com/budgetwise-dev/budgetwise/internal/validate"
)

func newAddCommand() *cobra.Command {
	var (
		dir       string
		amount    string
		desc      string
		category  int
		date      string
		method    string
		notes     string
		recurring string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
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

			when := time.Now()
			if date != "" {
				when, err = parseDate(date)
				if err != nil {
					return err
				}
			}

			tx := model.Transaction{
				OwnerID:       e.owner(),
				CategoryID:    category,
				Amount:        amt,
				Description:   desc,
				PaymentMethod: model.PaymentMethod(method),
				Notes:         notes,
				Date:          when,
			}
			if recurring != "" {
				tx.IsRecurring = true
				tx.Recurrence = model.RecurrencePattern(recurring)
			}

			if err := validate.Transaction(tx); err != nil {
				return fmt.Errorf("invalid transaction: %w", err)
			}
			if err := e.store.AddTransaction(cmd.Context(), &tx); err != nil {
				return err
			}

			e.autoCommit("add transaction " + tx.ID)
			fmt.Printf("Recorded %s %s %s (%s)\n", tx.ID, e.cfg.Profile.Currency, tx.Amount.StringFixed(2), tx.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().StringVar(&amount, "amount", "", "amount, e.g. 12.50 (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&desc, "desc", "", "description (required)")
	_ = cmd.MarkFlagRequired("desc")
	cmd.Flags().IntVar(&category, "category", 0, "category ID")
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&method, "method", string(model.PaymentCard), "payment method: cash, card, transfer, other")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&recurring, "recurring", "", "recurrence pattern: daily, weekly, monthly, yearly")

	return cmd
}
