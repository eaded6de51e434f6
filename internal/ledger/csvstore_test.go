package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

func TestCSVStore_AddTransaction_NewMonth(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVStore(dir)
	ctx := context.Background()

	tx := model.Transaction{
		OwnerID: 1, CategoryID: 1, Amount: dec("4.00"),
		Description: "Coffee", Date: date(2024, time.March, 15),
	}
	require.NoError(t, s.AddTransaction(ctx, &tx))
	assert.Equal(t, "2024-03-0001", tx.ID)

	_, err := os.Stat(filepath.Join(dir, "2024", "03", "transactions.csv"))
	require.NoError(t, err)

	// Second transaction in the same month gets the next sequence.
	tx2 := model.Transaction{OwnerID: 1, CategoryID: 1, Amount: dec("9.50"), Date: date(2024, time.March, 20)}
	require.NoError(t, s.AddTransaction(ctx, &tx2))
	assert.Equal(t, "2024-03-0002", tx2.ID)

	txs, err := s.Transactions(ctx, 1, Filter{})
	require.NoError(t, err)
	require.Len(t, txs, 2)
}

func TestCSVStore_RoundTripPreservesFields(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVStore(dir)
	ctx := context.Background()

	in := model.Transaction{
		OwnerID: 1, CategoryID: 3, Amount: dec("1500.00"),
		Description:   "[recurring] Salary",
		PaymentMethod: model.PaymentTransfer,
		Notes:         "monthly pay, includes bonus",
		Date:          time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC),
		IsRecurring:   true,
		Recurrence:    model.RecurrenceMonthly,
	}
	require.NoError(t, s.AddTransaction(ctx, &in))

	txs, err := s.Transactions(ctx, 1, Filter{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	got := txs[0]
	assert.Equal(t, in.ID, got.ID)
	assert.True(t, got.Amount.Equal(in.Amount))
	assert.Equal(t, in.Description, got.Description)
	assert.Equal(t, in.Notes, got.Notes)
	assert.True(t, got.Date.Equal(in.Date))
	assert.True(t, got.IsRecurring)
	assert.Equal(t, model.RecurrenceMonthly, got.Recurrence)
}

func TestCSVStore_UpdateAndDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVStore(dir)
	ctx := context.Background()

	tx := model.Transaction{OwnerID: 1, CategoryID: 1, Amount: dec("10.00"), Date: date(2024, time.March, 5)}
	require.NoError(t, s.AddTransaction(ctx, &tx))

	tx.Amount = dec("12.00")
	require.NoError(t, s.UpdateTransaction(ctx, tx))

	txs, err := s.Transactions(ctx, 1, Filter{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "12.00", txs[0].Amount.StringFixed(2))

	// Wrong owner cannot touch it.
	assert.ErrorIs(t, s.DeleteTransaction(ctx, 9, tx.ID), ErrNotFound)

	require.NoError(t, s.DeleteTransaction(ctx, 1, tx.ID))
	txs, err = s.Transactions(ctx, 1, Filter{})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestCSVStore_TypeFilterUsesCategories(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVStore(dir)
	ctx := context.Background()

	food := model.Category{OwnerID: 0, Name: "Food & Dining", Type: model.CategoryExpense, Color: "#e74c3c"}
	salary := model.Category{OwnerID: 0, Name: "Salary", Type: model.CategoryIncome, Color: "#2ecc71"}
	require.NoError(t, s.AddCategory(ctx, &food))
	require.NoError(t, s.AddCategory(ctx, &salary))

	for _, tx := range []model.Transaction{
		{OwnerID: 1, CategoryID: food.ID, Amount: dec("25.00"), Date: date(2024, time.March, 3)},
		{OwnerID: 1, CategoryID: salary.ID, Amount: dec("900.00"), Date: date(2024, time.March, 1)},
	} {
		tx := tx
		require.NoError(t, s.AddTransaction(ctx, &tx))
	}

	income, err := s.Transactions(ctx, 1, Filter{Type: model.CategoryIncome})
	require.NoError(t, err)
	require.Len(t, income, 1)
	assert.Equal(t, "900.00", income[0].Amount.StringFixed(2))
}

func TestCSVStore_SpansMonths(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVStore(dir)
	ctx := context.Background()

	for _, d := range []time.Time{
		date(2023, time.December, 30),
		date(2024, time.January, 2),
		date(2024, time.February, 2),
	} {
		tx := model.Transaction{OwnerID: 1, CategoryID: 1, Amount: dec("5.00"), Date: d}
		require.NoError(t, s.AddTransaction(ctx, &tx))
	}

	txs, err := s.Transactions(ctx, 1, Filter{})
	require.NoError(t, err)
	assert.Len(t, txs, 3, "reads across month partitions")

	owners, err := s.Owners(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, owners)
}

func TestCSVStore_BudgetsAndGoals(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVStore(dir)
	ctx := context.Background()

	b := model.Budget{OwnerID: 1, CategoryID: 1, Amount: dec("80.00"), Period: model.PeriodMonthly, StartDate: date(2024, time.March, 1)}
	require.NoError(t, s.AddBudget(ctx, &b))

	dup := model.Budget{OwnerID: 1, CategoryID: 1, Amount: dec("99.00"), Period: model.PeriodMonthly, StartDate: date(2024, time.April, 1)}
	assert.Error(t, s.AddBudget(ctx, &dup))

	budgets, err := s.Budgets(ctx, 1)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.True(t, budgets[0].OpenEnded())

	g := model.Goal{OwnerID: 1, Name: "Vacation", TargetAmount: dec("2000.00"), CurrentAmount: dec("0.00"), Deadline: date(2025, time.June, 1)}
	require.NoError(t, s.AddGoal(ctx, &g))
	g.CurrentAmount = dec("150.00")
	require.NoError(t, s.UpdateGoal(ctx, g))

	goals, err := s.Goals(ctx, 1)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "150.00", goals[0].CurrentAmount.StringFixed(2))
}

func TestCSVStore_EmptyDir(t *testing.T) {
	s := NewCSVStore(t.TempDir())
	ctx := context.Background()

	txs, err := s.Transactions(ctx, 1, Filter{})
	require.NoError(t, err)
	assert.Empty(t, txs)

	budgets, err := s.Budgets(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, budgets)
}
