package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/budgetwise-dev/budgetwise/internal/importer"
)

func newImportCommand() *cobra.Command {
	var (
		dir        string
		format     string
		expenseCat int
		incomeCat  int
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import bank CSV exports from the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), dir)
			if err != nil {
				return err
			}

			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q", format)
			}

			files, err := importer.Scan(e.dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("Nothing to import.")
				return nil
			}

			cats := importer.CategoryMap{Expense: expenseCat, Income: incomeCat}
			total := 0
			for _, file := range files {
				f, err := os.Open(file.Path)
				if err != nil {
					return fmt.Errorf("opening %s: %w", file.Name, err)
				}
				rows, err := parser.Parse(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("parsing %s: %w", file.Name, err)
				}

				for _, tx := range importer.Convert(rows, e.owner(), cats) {
					if err := e.store.AddTransaction(cmd.Context(), &tx); err != nil {
						return fmt.Errorf("recording row from %s: %w", file.Name, err)
					}
					total++
				}

				if err := importer.MarkProcessed(e.dir, file.Name); err != nil {
					return err
				}
				fmt.Printf("Imported %s (%d rows)\n", file.Name, len(rows))
			}

			e.autoCommit(fmt.Sprintf("import %d transactions from %d files", total, len(files)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().StringVar(&format, "format", "generic", "bank export format")
	cmd.Flags().IntVar(&expenseCat, "expense-category", 6, "category for money out")
	cmd.Flags().IntVar(&incomeCat, "income-category", 8, "category for money in")

	return cmd
}
