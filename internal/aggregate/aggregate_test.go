package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(category int, amount string, day int) model.Transaction {
	return model.Transaction{
		CategoryID: category,
		Amount:     dec(amount),
		Date:       time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC),
	}
}

func TestSum_Empty(t *testing.T) {
	res := Sum(nil)
	assert.True(t, res.Sum.Equal(decimal.Zero), "empty input sums to exact zero")
	assert.Equal(t, 0, res.Count)
}

func TestSum_Predicates(t *testing.T) {
	txs := []model.Transaction{
		tx(1, "40.00", 1),
		tx(1, "60.00", 15),
		tx(2, "25.00", 10),
	}

	res := Sum(txs, ByCategory(1))
	assert.True(t, res.Sum.Equal(dec("100.00")))
	assert.Equal(t, 2, res.Count)

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 10, 23, 59, 59, 0, time.UTC)
	res = Sum(txs, InRange(start, end))
	assert.True(t, res.Sum.Equal(dec("65.00")))
	assert.Equal(t, 2, res.Count)

	res = Sum(txs, ByCategory(1), MinAmount(dec("50.00")))
	assert.True(t, res.Sum.Equal(dec("60.00")))
	assert.Equal(t, 1, res.Count)
}

func TestSum_RangeBoundariesInclusive(t *testing.T) {
	boundary := time.Date(2024, time.March, 31, 23, 59, 59, 999999999, time.UTC)
	txs := []model.Transaction{{CategoryID: 1, Amount: dec("10.00"), Date: boundary}}

	res := Sum(txs, InRange(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), boundary))
	assert.Equal(t, 1, res.Count, "transaction at the final instant is counted")

	// The next month's window must not count it again.
	aprStart := boundary.Add(time.Nanosecond)
	aprEnd := aprStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	res = Sum(txs, InRange(aprStart, aprEnd))
	assert.Equal(t, 0, res.Count)
}

func TestByType(t *testing.T) {
	resolve := func(id int) model.CategoryType {
		if id == 1 {
			return model.CategoryExpense
		}
		if id == 2 {
			return model.CategoryIncome
		}
		return ""
	}
	txs := []model.Transaction{
		tx(1, "40.00", 1),
		tx(2, "1000.00", 1),
		tx(99, "5.00", 1), // unknown category matches neither type
	}

	assert.Equal(t, 1, Sum(txs, ByType(model.CategoryExpense, resolve)).Count)
	assert.Equal(t, 1, Sum(txs, ByType(model.CategoryIncome, resolve)).Count)
}

func TestGroupByCategory_Deterministic(t *testing.T) {
	txs := []model.Transaction{
		tx(3, "20.00", 1),
		tx(1, "50.00", 2),
		tx(2, "50.00", 3),
		tx(1, "10.00", 4),
		tx(4, "5.00", 5),
	}

	first := WithShares(GroupByCategory(txs))
	second := WithShares(GroupByCategory(txs))
	require.Equal(t, first, second, "identical input yields identical ordered output")

	// Descending by sum; the 50.00 tie between categories 1+? resolves by ID.
	require.Len(t, first, 4)
	assert.Equal(t, 1, first[0].CategoryID) // 60.00
	assert.Equal(t, 2, first[1].CategoryID) // 50.00
	assert.Equal(t, 3, first[2].CategoryID) // 20.00
	assert.Equal(t, 4, first[3].CategoryID) // 5.00

	// Shares sum to 100 within rounding epsilon.
	total := decimal.Zero
	for _, g := range first {
		total = total.Add(g.Share)
	}
	diff := total.Sub(decimal.NewFromInt(100)).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.02")), "shares sum to 100 +/- epsilon, got %s", total)
}

func TestGroupByCategory_TieBreakByID(t *testing.T) {
	txs := []model.Transaction{
		tx(7, "30.00", 1),
		tx(2, "30.00", 2),
		tx(5, "30.00", 3),
	}
	groups := GroupByCategory(txs)
	require.Len(t, groups, 3)
	assert.Equal(t, []int{2, 5, 7}, []int{groups[0].CategoryID, groups[1].CategoryID, groups[2].CategoryID})
}

func TestWithShares_ZeroTotal(t *testing.T) {
	groups := []CategoryTotal{
		{CategoryID: 1, Sum: decimal.Zero, Count: 1},
		{CategoryID: 2, Sum: decimal.Zero, Count: 1},
	}
	out := WithShares(groups)
	for _, g := range out {
		assert.True(t, g.Share.Equal(decimal.Zero), "zero total gives zero shares, never divides")
	}
}

func TestWithShares_Rounding(t *testing.T) {
	groups := GroupByCategory([]model.Transaction{
		tx(1, "33.33", 1),
		tx(2, "33.33", 2),
		tx(3, "33.34", 3),
	})
	out := WithShares(groups)
	require.Len(t, out, 3)
	assert.Equal(t, "33.34", out[0].Share.StringFixed(2))
	assert.Equal(t, "33.33", out[1].Share.StringFixed(2))
}
