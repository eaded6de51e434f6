package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/budgetwise-dev/budgetwise/internal/logging"
	"github.com/budgetwise-dev/budgetwise/internal/scheduler"
)

func newRecurCommand() *cobra.Command {
	recurCmd := &cobra.Command{
		Use:   "recur",
		Short: "Materialize recurring transactions",
	}
	recurCmd.AddCommand(newRecurRunCommand())
	recurCmd.AddCommand(newRecurDaemonCommand())
	return recurCmd
}

func newRecurRunCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one recurrence batch now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), dir)
			if err != nil {
				return err
			}

			runner := scheduler.New(e.store, e.dir, logging.Logger)
			res, err := runner.Run(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			if len(res.Created) > 0 {
				e.autoCommit(fmt.Sprintf("materialize %d recurring transactions", len(res.Created)))
			}
			fmt.Printf("Scanned %d series across %d owners: %d created, %d skipped\n",
				res.Scanned, res.Owners, len(res.Created), res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	return cmd
}

func newRecurDaemonCommand() *cobra.Command {
	var dir string
	var schedule string

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run recurrence batches on a schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), dir)
			if err != nil {
				return err
			}

			spec := schedule
			if spec == "" {
				spec = e.cfg.Recurrence.Schedule
			}

			runner := scheduler.New(e.store, e.dir, logging.Logger)
			c, err := runner.StartDaemon(spec)
			if err != nil {
				return err
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			ctx := c.Stop()
			<-ctx.Done()
			logging.Logger.Info("recurrence daemon stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().StringVar(&schedule, "schedule", "", "cron spec (default from config)")
	return cmd
}
