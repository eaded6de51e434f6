package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// TxHeader is the CSV header for transactions.csv.
const TxHeader = "id,owner_id,category_id,amount,description,payment_method,notes,date,is_recurring,recurrence"

const (
	txNumFields  = 10
	txColID      = 0
	txColOwner   = 1
	txColCat     = 2
	txColAmount  = 3
	txColDesc    = 4
	txColMethod  = 5
	txColNotes   = 6
	txColDate    = 7
	txColRecur   = 8
	txColPattern = 9
)

// ReadTransactions reads all transactions from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = txNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactions writes transactions to a writer, header included.
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TxHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendTransactions appends rows to an existing file (no header).
func AppendTransactions(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, txNumFields)
	row[txColID] = tx.ID
	row[txColOwner] = strconv.Itoa(tx.OwnerID)
	row[txColCat] = strconv.Itoa(tx.CategoryID)
	row[txColAmount] = tx.Amount.StringFixed(2)
	row[txColDesc] = tx.Description
	row[txColMethod] = string(tx.PaymentMethod)
	row[txColNotes] = tx.Notes
	row[txColDate] = tx.Date.Format(time.RFC3339)
	row[txColRecur] = strconv.FormatBool(tx.IsRecurring)
	row[txColPattern] = string(tx.Recurrence)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != txNumFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", txNumFields, len(record))
	}

	ownerID, err := strconv.Atoi(record[txColOwner])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing owner_id %q: %w", record[txColOwner], err)
	}
	categoryID, err := strconv.Atoi(record[txColCat])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing category_id %q: %w", record[txColCat], err)
	}
	amount, err := decimal.NewFromString(record[txColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[txColAmount], err)
	}
	date, err := time.Parse(time.RFC3339, record[txColDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[txColDate], err)
	}
	recurring, err := strconv.ParseBool(record[txColRecur])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing is_recurring %q: %w", record[txColRecur], err)
	}

	return model.Transaction{
		ID:            record[txColID],
		OwnerID:       ownerID,
		CategoryID:    categoryID,
		Amount:        amount,
		Description:   record[txColDesc],
		PaymentMethod: model.PaymentMethod(record[txColMethod]),
		Notes:         record[txColNotes],
		Date:          date,
		IsRecurring:   recurring,
		Recurrence:    model.RecurrencePattern(record[txColPattern]),
	}, nil
}

// CategoryHeader is the CSV header for categories.csv.
const CategoryHeader = "id,owner_id,name,type,color,icon"

const catNumFields = 6

// ReadCategories reads all categories from a categories.csv reader.
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = catNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var cats []model.Category
	for i, rec := range records[1:] {
		catID, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing id %q: %w", i+2, rec[0], err)
		}
		ownerID, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing owner_id %q: %w", i+2, rec[1], err)
		}
		cats = append(cats, model.Category{
			ID:      catID,
			OwnerID: ownerID,
			Name:    rec[2],
			Type:    model.CategoryType(rec[3]),
			Color:   rec[4],
			Icon:    rec[5],
		})
	}
	return cats, nil
}

// WriteCategories writes categories to a writer, header included.
func WriteCategories(w io.Writer, cats []model.Category) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(CategoryHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, c := range cats {
		row := []string{
			strconv.Itoa(c.ID), strconv.Itoa(c.OwnerID), c.Name,
			string(c.Type), c.Color, c.Icon,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// BudgetHeader is the CSV header for budgets.csv.
const BudgetHeader = "id,owner_id,category_id,amount,period,start_date,end_date"

const bdgNumFields = 7

const dateOnly = "2006-01-02"

// ReadBudgets reads all budgets from a budgets.csv reader.
func ReadBudgets(r io.Reader) ([]model.Budget, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = bdgNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading budgets CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var budgets []model.Budget
	for i, rec := range records[1:] {
		b, err := unmarshalBudget(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}

// WriteBudgets writes budgets to a writer, header included.
func WriteBudgets(w io.Writer, budgets []model.Budget) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(BudgetHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, b := range budgets {
		end := ""
		if !b.OpenEnded() {
			end = b.EndDate.Format(dateOnly)
		}
		row := []string{
			strconv.Itoa(b.ID), strconv.Itoa(b.OwnerID), strconv.Itoa(b.CategoryID),
			b.Amount.StringFixed(2), string(b.Period),
			b.StartDate.Format(dateOnly), end,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func unmarshalBudget(rec []string) (model.Budget, error) {
	bdgID, err := strconv.Atoi(rec[0])
	if err != nil {
		return model.Budget{}, fmt.Errorf("parsing id %q: %w", rec[0], err)
	}
	ownerID, err := strconv.Atoi(rec[1])
	if err != nil {
		return model.Budget{}, fmt.Errorf("parsing owner_id %q: %w", rec[1], err)
	}
	categoryID, err := strconv.Atoi(rec[2])
	if err != nil {
		return model.Budget{}, fmt.Errorf("parsing category_id %q: %w", rec[2], err)
	}
	amount, err := decimal.NewFromString(rec[3])
	if err != nil {
		return model.Budget{}, fmt.Errorf("parsing amount %q: %w", rec[3], err)
	}
	start, err := time.Parse(dateOnly, rec[5])
	if err != nil {
		return model.Budget{}, fmt.Errorf("parsing start_date %q: %w", rec[5], err)
	}
	var end time.Time
	if rec[6] != "" {
		end, err = time.Parse(dateOnly, rec[6])
		if err != nil {
			return model.Budget{}, fmt.Errorf("parsing end_date %q: %w", rec[6], err)
		}
	}
	return model.Budget{
		ID: bdgID, OwnerID: ownerID, CategoryID: categoryID,
		Amount: amount, Period: model.PeriodKind(rec[4]),
		StartDate: start, EndDate: end,
	}, nil
}

// GoalHeader is the CSV header for goals.csv.
const GoalHeader = "id,owner_id,name,target_amount,current_amount,deadline,description"

const goalNumFields = 7

// ReadGoals reads all goals from a goals.csv reader.
func ReadGoals(r io.Reader) ([]model.Goal, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = goalNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading goals CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var goals []model.Goal
	for i, rec := range records[1:] {
		g, err := unmarshalGoal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// WriteGoals writes goals to a writer, header included.
func WriteGoals(w io.Writer, goals []model.Goal) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(GoalHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, g := range goals {
		row := []string{
			strconv.Itoa(g.ID), strconv.Itoa(g.OwnerID), g.Name,
			g.TargetAmount.StringFixed(2), g.CurrentAmount.StringFixed(2),
			g.Deadline.Format(dateOnly), g.Description,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func unmarshalGoal(rec []string) (model.Goal, error) {
	goalID, err := strconv.Atoi(rec[0])
	if err != nil {
		return model.Goal{}, fmt.Errorf("parsing id %q: %w", rec[0], err)
	}
	ownerID, err := strconv.Atoi(rec[1])
	if err != nil {
		return model.Goal{}, fmt.Errorf("parsing owner_id %q: %w", rec[1], err)
	}
	target, err := decimal.NewFromString(rec[3])
	if err != nil {
		return model.Goal{}, fmt.Errorf("parsing target_amount %q: %w", rec[3], err)
	}
	current, err := decimal.NewFromString(rec[4])
	if err != nil {
		return model.Goal{}, fmt.Errorf("parsing current_amount %q: %w", rec[4], err)
	}
	deadline, err := time.Parse(dateOnly, rec[5])
	if err != nil {
		return model.Goal{}, fmt.Errorf("parsing deadline %q: %w", rec[5], err)
	}
	return model.Goal{
		ID: goalID, OwnerID: ownerID, Name: rec[2],
		TargetAmount: target, CurrentAmount: current,
		Deadline: deadline, Description: rec[6],
	}, nil
}
