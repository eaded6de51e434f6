// Package budget evaluates spending against budget allocations.
package budget

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise-dev/budgetwise/internal/aggregate"
	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// Status classifies budget consumption. Thresholds are evaluated
// highest-first against the uncapped spent/amount ratio.
type Status string

const (
	StatusGood     Status = "good"     // < 50%
	StatusInfo     Status = "info"     // >= 50%
	StatusWarning  Status = "warning"  // >= 80%
	StatusExceeded Status = "exceeded" // >= 100%
)

// Progress is the evaluated state of one budget.
type Progress struct {
	Spent      decimal.Decimal
	Remaining  decimal.Decimal // negative = overspend
	Percentage decimal.Decimal // capped at 100 for display
	Status     Status
}

// Evaluation pairs a budget with its outcome in a batch. Err is set
// when the budget itself was malformed; other entries still evaluate.
type Evaluation struct {
	Budget   model.Budget
	Progress Progress
	Err      error
}

var hundred = decimal.NewFromInt(100)

// Evaluate computes spent/remaining/percentage/status for one budget
// over the given ledger slice. An open-ended budget accrues spending
// up to now. Percentage is capped at 100; callers needing the true
// overspend ratio should use Spent and Remaining directly.
func Evaluate(b model.Budget, txs []model.Transaction, now time.Time) (Progress, error) {
	if b.Amount.IsNegative() {
		return Progress{}, fmt.Errorf("budget %d: negative amount %s", b.ID, b.Amount)
	}
	end := b.EndDate
	if b.OpenEnded() {
		end = now
	}
	if end.Before(b.StartDate) {
		return Progress{}, fmt.Errorf("budget %d: end %s before start %s",
			b.ID, end.Format("2006-01-02"), b.StartDate.Format("2006-01-02"))
	}

	spent := aggregate.Sum(txs, aggregate.ByCategory(b.CategoryID), aggregate.InRange(b.StartDate, end)).Sum

	p := Progress{
		Spent:      spent,
		Remaining:  b.Amount.Sub(spent),
		Percentage: decimal.Zero,
		Status:     StatusGood,
	}
	if b.Amount.IsZero() {
		return p, nil
	}

	ratio := spent.Div(b.Amount).Mul(hundred)
	p.Percentage = decimal.Min(ratio, hundred)
	switch {
	case ratio.GreaterThanOrEqual(hundred):
		p.Status = StatusExceeded
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(80)):
		p.Status = StatusWarning
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(50)):
		p.Status = StatusInfo
	}
	return p, nil
}

// EvaluateAll evaluates every budget in the batch. A malformed entry
// records its error and does not abort the rest.
func EvaluateAll(budgets []model.Budget, txs []model.Transaction, now time.Time) []Evaluation {
	out := make([]Evaluation, 0, len(budgets))
	for _, b := range budgets {
		p, err := Evaluate(b, txs, now)
		out = append(out, Evaluation{Budget: b, Progress: p, Err: err})
	}
	return out
}
