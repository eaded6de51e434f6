package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetwise-dev/budgetwise/internal/categories"
	"github.com/budgetwise-dev/budgetwise/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

var testCats = []model.Category{
	{ID: 1, Name: "Food & Dining", Type: model.CategoryExpense, Color: "#e74c3c"},
	{ID: 2, Name: "Housing", Type: model.CategoryExpense, Color: "#8e44ad"},
	{ID: 3, Name: "Salary", Type: model.CategoryIncome, Color: "#2ecc71"},
}

func testLedger() []model.Transaction {
	return []model.Transaction{
		{CategoryID: 3, Amount: dec("1000.00"), Date: date(2024, time.March, 1)},
		{CategoryID: 1, Amount: dec("40.00"), Date: date(2024, time.March, 1)},
		{CategoryID: 1, Amount: dec("60.00"), Date: date(2024, time.March, 15)},
		{CategoryID: 2, Amount: dec("400.00"), Date: date(2024, time.March, 2)},
		{CategoryID: 1, Amount: dec("99.00"), Date: date(2024, time.February, 10)}, // prior month
	}
}

func TestBuildSummary(t *testing.T) {
	svc := categories.NewService(testCats)
	s := BuildSummary(testLedger(), svc.TypeOf, date(2024, time.March, 20))

	assert.Equal(t, "1000.00", s.MonthlyIncome.StringFixed(2))
	assert.Equal(t, "500.00", s.MonthlyExpense.StringFixed(2))
	assert.Equal(t, "500.00", s.NetSavings.StringFixed(2))
	assert.Equal(t, 1, s.IncomeCount)
	assert.Equal(t, 4, s.ExpenseCount, "counts span the whole ledger")
}

func TestBuildSummary_EmptyLedger(t *testing.T) {
	svc := categories.NewService(testCats)
	s := BuildSummary(nil, svc.TypeOf, date(2024, time.March, 20))
	assert.True(t, s.MonthlyIncome.Equal(decimal.Zero))
	assert.True(t, s.NetSavings.Equal(decimal.Zero))
}

func TestCategoryBreakdown(t *testing.T) {
	svc := categories.NewService(testCats)
	rows := CategoryBreakdown(testLedger(), svc, date(2024, time.March, 20))

	require.Len(t, rows, 2, "income and prior-month expenses excluded")
	assert.Equal(t, "Housing", rows[0].Category.Name, "largest expense first")
	assert.Equal(t, "400.00", rows[0].Total.StringFixed(2))
	assert.Equal(t, "80.00", rows[0].Share.StringFixed(2))
	assert.Equal(t, "Food & Dining", rows[1].Category.Name)
	assert.Equal(t, "20.00", rows[1].Share.StringFixed(2))
	assert.Equal(t, 2, rows[1].Count)
}

func TestCategoryBreakdown_UnknownCategory(t *testing.T) {
	svc := categories.NewService(testCats)
	txs := []model.Transaction{
		{CategoryID: 1, Amount: dec("10.00"), Date: date(2024, time.March, 5)},
	}
	// Category 1 known; now drop it from the lookup to simulate deletion.
	empty := categories.NewService(nil)
	rows := CategoryBreakdown(txs, empty, date(2024, time.March, 20))
	assert.Empty(t, rows, "no type resolution means no expense rows")

	rows = CategoryBreakdown(txs, svc, date(2024, time.March, 20))
	require.Len(t, rows, 1)
}

func TestBuildDashboard(t *testing.T) {
	svc := categories.NewService(testCats)
	budgets := []model.Budget{
		{CategoryID: 1, Amount: dec("80.00")},
		{CategoryID: 2, Amount: dec("500.00")},
	}
	goals := []model.Goal{
		{TargetAmount: dec("2000.00"), CurrentAmount: dec("150.00")},
		{TargetAmount: dec("500.00"), CurrentAmount: dec("500.00")},
	}

	stats := BuildDashboard(testLedger(), budgets, goals, svc.TypeOf, date(2024, time.March, 20))
	assert.Equal(t, "580.00", stats.TotalBudget.StringFixed(2))
	assert.Equal(t, "2500.00", stats.TotalGoalTarget.StringFixed(2))
	assert.Equal(t, "650.00", stats.TotalGoalCurrent.StringFixed(2))
	assert.Equal(t, "500.00", stats.NetSavings.StringFixed(2))
}
