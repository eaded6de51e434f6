// Package trend derives month-by-month income/expense/savings series
// from a flat ledger slice.
package trend

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise-dev/budgetwise/internal/aggregate"
	"github.com/budgetwise-dev/budgetwise/internal/model"
	"github.com/budgetwise-dev/budgetwise/internal/period"
)

// Point is one month's aggregated totals.
type Point struct {
	Label   string // "Jan 2006"
	Income  decimal.Decimal
	Expense decimal.Decimal
	Savings decimal.Decimal // income - expense, not independently aggregated
}

// Build produces one Point per calendar month fully or partially
// overlapping [start, end], in chronological order. The final month's
// window is clamped to end so nothing past the requested range is
// aggregated. Deterministic for identical ledger and range; bounded by
// the month count in the range.
func Build(start, end time.Time, txs []model.Transaction, resolve aggregate.TypeResolver) ([]Point, error) {
	start, end, err := period.Custom(start, end)
	if err != nil {
		return nil, err
	}

	var points []Point
	cursor, _ := period.MonthBounds(start)
	for !cursor.After(end) {
		_, monthEnd := period.MonthBounds(cursor)
		if monthEnd.After(end) {
			monthEnd = end
		}

		window := aggregate.InRange(cursor, monthEnd)
		income := aggregate.Sum(txs, window, aggregate.ByType(model.CategoryIncome, resolve)).Sum
		expense := aggregate.Sum(txs, window, aggregate.ByType(model.CategoryExpense, resolve)).Sum

		points = append(points, Point{
			Label:   cursor.Format("Jan 2006"),
			Income:  income,
			Expense: expense,
			Savings: income.Sub(expense),
		})

		cursor, _ = period.Next(cursor, model.PeriodMonthly)
	}
	return points, nil
}
