// Package importer turns bank CSV exports into ledger transactions.
// Files land in <dataRoot>/import/, get parsed into signed rows, and
// move to import/processed/ once recorded.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// Row is one line of a bank export. Amount keeps the bank's sign:
// negative for money out, positive for money in.
type Row struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Reference   string
}

// Parser converts a bank CSV file into Rows.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&GenericParser{})
	return r
}

// CategoryMap assigns categories to converted rows. Money out lands in
// Expense, money in lands in Income.
type CategoryMap struct {
	Expense int
	Income  int
}

// Convert maps parsed rows to transactions for ownerID. The bank's
// sign convention folds into the category: amounts are always stored
// positive, with direction carried by the category's type.
func Convert(rows []Row, ownerID int, cats CategoryMap) []model.Transaction {
	out := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		categoryID := cats.Income
		if row.Amount.IsNegative() {
			categoryID = cats.Expense
		}
		out = append(out, model.Transaction{
			OwnerID:       ownerID,
			CategoryID:    categoryID,
			Amount:        row.Amount.Abs(),
			Description:   row.Description,
			Notes:         row.Reference,
			PaymentMethod: model.PaymentTransfer,
			Date:          row.Date,
		})
	}
	return out
}

const importDir = "import"

const processedDir = "import/processed"

// Scan returns CSV files in <dataRoot>/import/.
func Scan(dataRoot string) ([]FileInfo, error) {
	dir := filepath.Join(dataRoot, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(dataRoot, fileName string) error {
	src := filepath.Join(dataRoot, importDir, fileName)
	dstDir := filepath.Join(dataRoot, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
