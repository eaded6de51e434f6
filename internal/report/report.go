// Package report composes period, aggregate, and category lookups into
// the rollups the dashboard renders.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise-dev/budgetwise/internal/aggregate"
	"github.com/budgetwise-dev/budgetwise/internal/categories"
	"github.com/budgetwise-dev/budgetwise/internal/model"
	"github.com/budgetwise-dev/budgetwise/internal/period"
)

// Summary holds the current-month headline numbers. Counts cover the
// whole ledger, not just the month, matching the dashboard's
// "transactions recorded" tiles.
type Summary struct {
	MonthlyIncome  decimal.Decimal
	MonthlyExpense decimal.Decimal
	NetSavings     decimal.Decimal
	IncomeCount    int
	ExpenseCount   int
}

// BuildSummary computes the summary for the month containing now.
func BuildSummary(txs []model.Transaction, resolve aggregate.TypeResolver, now time.Time) Summary {
	start, end := period.MonthBounds(now)
	window := aggregate.InRange(start, end)

	income := aggregate.Sum(txs, window, aggregate.ByType(model.CategoryIncome, resolve)).Sum
	expense := aggregate.Sum(txs, window, aggregate.ByType(model.CategoryExpense, resolve)).Sum

	return Summary{
		MonthlyIncome:  income,
		MonthlyExpense: expense,
		NetSavings:     income.Sub(expense),
		IncomeCount:    aggregate.Sum(txs, aggregate.ByType(model.CategoryIncome, resolve)).Count,
		ExpenseCount:   aggregate.Sum(txs, aggregate.ByType(model.CategoryExpense, resolve)).Count,
	}
}

// CategoryRow is one slice of the expense breakdown pie.
type CategoryRow struct {
	Category model.Category
	Total    decimal.Decimal
	Count    int
	Share    decimal.Decimal // percentage of the month's expenses, 2dp
}

// CategoryBreakdown groups the current month's expenses by category,
// ordered by descending total. Categories missing from the lookup
// (deleted, uncategorized) still appear, with only the ID populated.
func CategoryBreakdown(txs []model.Transaction, cats *categories.Service, now time.Time) []CategoryRow {
	start, end := period.MonthBounds(now)
	groups := aggregate.GroupByCategory(txs,
		aggregate.InRange(start, end),
		aggregate.ByType(model.CategoryExpense, cats.TypeOf),
	)

	rows := make([]CategoryRow, 0, len(groups))
	for _, g := range aggregate.WithShares(groups) {
		c, ok := cats.Get(g.CategoryID)
		if !ok {
			c = model.Category{ID: g.CategoryID}
		}
		rows = append(rows, CategoryRow{Category: c, Total: g.Sum, Count: g.Count, Share: g.Share})
	}
	return rows
}

// DashboardStats is the one-call rollup for the dashboard header.
type DashboardStats struct {
	Summary
	TotalBudget      decimal.Decimal
	TotalGoalTarget  decimal.Decimal
	TotalGoalCurrent decimal.Decimal
}

// BuildDashboard combines the summary with budget and goal totals.
func BuildDashboard(txs []model.Transaction, budgets []model.Budget, goals []model.Goal,
	resolve aggregate.TypeResolver, now time.Time) DashboardStats {

	stats := DashboardStats{
		Summary:          BuildSummary(txs, resolve, now),
		TotalBudget:      decimal.Zero,
		TotalGoalTarget:  decimal.Zero,
		TotalGoalCurrent: decimal.Zero,
	}
	for _, b := range budgets {
		stats.TotalBudget = stats.TotalBudget.Add(b.Amount)
	}
	for _, g := range goals {
		stats.TotalGoalTarget = stats.TotalGoalTarget.Add(g.TargetAmount)
		stats.TotalGoalCurrent = stats.TotalGoalCurrent.Add(g.CurrentAmount)
	}
	return stats
}
