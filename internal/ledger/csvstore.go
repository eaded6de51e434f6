package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/budgetwise-dev/budgetwise/internal/id"
	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// CSVStore persists the ledger as plain CSV files under a root
// directory: transactions partitioned by month (YYYY/MM/
// transactions.csv), with categories.csv, budgets.csv, and goals.csv
// at the root. Transaction IDs are month-sequential ("2024-03-0001").
type CSVStore struct {
	root string
}

// NewCSVStore creates a CSVStore rooted at dir.
func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{root: dir}
}

func (s *CSVStore) Transactions(_ context.Context, ownerID int, f Filter) ([]model.Transaction, error) {
	all, err := s.readAllTransactions()
	if err != nil {
		return nil, err
	}

	cats, err := s.readCategories()
	if err != nil {
		return nil, err
	}
	types := make(map[int]model.CategoryType, len(cats))
	for _, c := range cats {
		if c.OwnerID == ownerID || c.OwnerID == 0 {
			types[c.ID] = c.Type
		}
	}
	resolve := func(catID int) model.CategoryType { return types[catID] }

	var out []model.Transaction
	for _, tx := range all {
		if tx.OwnerID != ownerID || !f.Matches(tx, resolve) {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *CSVStore) AddTransaction(_ context.Context, tx *model.Transaction) error {
	year := tx.Date.Year()
	month := int(tx.Date.Month())

	if tx.ID == "" {
		seq, err := s.nextSeq(year, month)
		if err != nil {
			return err
		}
		tx.ID = id.Format(year, month, seq)
	}

	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, TxHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := AppendTransactions(f, []model.Transaction{*tx}); err != nil {
		return fmt.Errorf("appending transaction: %w", err)
	}
	return nil
}

func (s *CSVStore) UpdateTransaction(_ context.Context, tx model.Transaction) error {
	return s.rewriteMonth(tx.ID, tx.OwnerID, func(txs []model.Transaction, i int) []model.Transaction {
		txs[i] = tx
		return txs
	})
}

func (s *CSVStore) DeleteTransaction(_ context.Context, ownerID int, txID string) error {
	return s.rewriteMonth(txID, ownerID, func(txs []model.Transaction, i int) []model.Transaction {
		return append(txs[:i], txs[i+1:]...)
	})
}

// rewriteMonth locates txID's month file, applies change at the
// matching row, and rewrites the file.
func (s *CSVStore) rewriteMonth(txID string, ownerID int, change func([]model.Transaction, int) []model.Transaction) error {
	year, month, _, err := id.Parse(txID)
	if err != nil {
		return fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}

	txs, err := s.readMonth(year, month)
	if err != nil {
		return err
	}
	for i, existing := range txs {
		if existing.ID == txID && existing.OwnerID == ownerID {
			return s.writeMonth(year, month, change(txs, i))
		}
	}
	return fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
}

func (s *CSVStore) Categories(_ context.Context, ownerID int) ([]model.Category, error) {
	cats, err := s.readCategories()
	if err != nil {
		return nil, err
	}
	var out []model.Category
	for _, c := range cats {
		if c.OwnerID == ownerID || c.OwnerID == 0 {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CSVStore) AddCategory(_ context.Context, c *model.Category) error {
	cats, err := s.readCategories()
	if err != nil {
		return err
	}
	if c.ID == 0 {
		maxID := 0
		for _, existing := range cats {
			if existing.ID > maxID {
				maxID = existing.ID
			}
		}
		c.ID = maxID + 1
	}
	return s.writeFile("categories.csv", func(f *os.File) error {
		return WriteCategories(f, append(cats, *c))
	})
}

func (s *CSVStore) Budgets(_ context.Context, ownerID int) ([]model.Budget, error) {
	budgets, err := s.readBudgets()
	if err != nil {
		return nil, err
	}
	var out []model.Budget
	for _, b := range budgets {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *CSVStore) AddBudget(_ context.Context, b *model.Budget) error {
	budgets, err := s.readBudgets()
	if err != nil {
		return err
	}
	maxID := 0
	for _, existing := range budgets {
		if existing.OwnerID == b.OwnerID && existing.CategoryID == b.CategoryID && existing.Period == b.Period {
			return fmt.Errorf("budget for category %d period %s already exists", b.CategoryID, b.Period)
		}
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	b.ID = maxID + 1
	return s.writeFile("budgets.csv", func(f *os.File) error {
		return WriteBudgets(f, append(budgets, *b))
	})
}

func (s *CSVStore) UpdateBudget(_ context.Context, b model.Budget) error {
	budgets, err := s.readBudgets()
	if err != nil {
		return err
	}
	for i, existing := range budgets {
		if existing.ID == b.ID && existing.OwnerID == b.OwnerID {
			budgets[i] = b
			return s.writeFile("budgets.csv", func(f *os.File) error {
				return WriteBudgets(f, budgets)
			})
		}
	}
	return fmt.Errorf("budget %d: %w", b.ID, ErrNotFound)
}

func (s *CSVStore) DeleteBudget(_ context.Context, ownerID, budgetID int) error {
	budgets, err := s.readBudgets()
	if err != nil {
		return err
	}
	for i, b := range budgets {
		if b.ID == budgetID && b.OwnerID == ownerID {
			budgets = append(budgets[:i], budgets[i+1:]...)
			return s.writeFile("budgets.csv", func(f *os.File) error {
				return WriteBudgets(f, budgets)
			})
		}
	}
	return fmt.Errorf("budget %d: %w", budgetID, ErrNotFound)
}

func (s *CSVStore) Goals(_ context.Context, ownerID int) ([]model.Goal, error) {
	goals, err := s.readGoals()
	if err != nil {
		return nil, err
	}
	var out []model.Goal
	for _, g := range goals {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *CSVStore) AddGoal(_ context.Context, g *model.Goal) error {
	goals, err := s.readGoals()
	if err != nil {
		return err
	}
	maxID := 0
	for _, existing := range goals {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	g.ID = maxID + 1
	return s.writeFile("goals.csv", func(f *os.File) error {
		return WriteGoals(f, append(goals, *g))
	})
}

func (s *CSVStore) UpdateGoal(_ context.Context, g model.Goal) error {
	goals, err := s.readGoals()
	if err != nil {
		return err
	}
	for i, existing := range goals {
		if existing.ID == g.ID && existing.OwnerID == g.OwnerID {
			goals[i] = g
			return s.writeFile("goals.csv", func(f *os.File) error {
				return WriteGoals(f, goals)
			})
		}
	}
	return fmt.Errorf("goal %d: %w", g.ID, ErrNotFound)
}

func (s *CSVStore) DeleteGoal(_ context.Context, ownerID, goalID int) error {
	goals, err := s.readGoals()
	if err != nil {
		return err
	}
	for i, g := range goals {
		if g.ID == goalID && g.OwnerID == ownerID {
			goals = append(goals[:i], goals[i+1:]...)
			return s.writeFile("goals.csv", func(f *os.File) error {
				return WriteGoals(f, goals)
			})
		}
	}
	return fmt.Errorf("goal %d: %w", goalID, ErrNotFound)
}

func (s *CSVStore) Owners(_ context.Context) ([]int, error) {
	all, err := s.readAllTransactions()
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool)
	var out []int
	for _, tx := range all {
		if !seen[tx.OwnerID] {
			seen[tx.OwnerID] = true
			out = append(out, tx.OwnerID)
		}
	}
	sort.Ints(out)
	return out, nil
}

func (s *CSVStore) monthPath(year, month int) string {
	return filepath.Join(s.root, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "transactions.csv")
}

func (s *CSVStore) readMonth(year, month int) ([]model.Transaction, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txs, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txs, nil
}

func (s *CSVStore) writeMonth(year, month int, txs []model.Transaction) error {
	path := s.monthPath(year, month)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rewriting ledger %s: %w", path, err)
	}
	defer f.Close()
	return WriteTransactions(f, txs)
}

func (s *CSVStore) readAllTransactions() ([]model.Transaction, error) {
	paths, err := filepath.Glob(filepath.Join(s.root, "[0-9]*", "[0-9]*", "transactions.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing ledger files: %w", err)
	}
	sort.Strings(paths)

	var all []model.Transaction
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening ledger %s: %w", path, err)
		}
		txs, err := ReadTransactions(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading ledger %s: %w", path, err)
		}
		all = append(all, txs...)
	}
	return all, nil
}

func (s *CSVStore) nextSeq(year, month int) (int, error) {
	txs, err := s.readMonth(year, month)
	if err != nil {
		return 0, err
	}
	maxSeq := 0
	for _, tx := range txs {
		_, _, seq, err := id.Parse(tx.ID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

func (s *CSVStore) readCategories() ([]model.Category, error) {
	return readRootFile(s.root, "categories.csv", ReadCategories)
}

func (s *CSVStore) readBudgets() ([]model.Budget, error) {
	return readRootFile(s.root, "budgets.csv", ReadBudgets)
}

func (s *CSVStore) readGoals() ([]model.Goal, error) {
	return readRootFile(s.root, "goals.csv", ReadGoals)
}

func (s *CSVStore) writeFile(name string, write func(*os.File) error) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating ledger root: %w", err)
	}
	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()
	return write(f)
}

func readRootFile[T any](root, name string, read func(r io.Reader) ([]T, error)) ([]T, error) {
	path := filepath.Join(root, name)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	out, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return out, nil
}
