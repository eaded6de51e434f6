// Package goal evaluates savings goal progress and urgency.
package goal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// Status classifies a goal by completion, then deadline proximity.
type Status string

const (
	StatusActive    Status = "active"
	StatusWarning   Status = "warning" // deadline within 30 days
	StatusUrgent    Status = "urgent"  // deadline within 7 days
	StatusCompleted Status = "completed"
)

// Progress is the evaluated state of one goal.
type Progress struct {
	Percentage    decimal.Decimal // uncapped; >100 signals overshoot
	DaysRemaining int             // floored at 0
	Completed     bool
	AmountNeeded  decimal.Decimal // floored at 0
	Status        Status
}

// Evaluation pairs a goal with its outcome in a batch.
type Evaluation struct {
	Goal     model.Goal
	Progress Progress
	Err      error
}

// Evaluate computes progress for one goal as of today. Unlike budget
// percentages, the goal percentage is deliberately uncapped so an
// overshot goal reads as >100%.
func Evaluate(g model.Goal, today time.Time) (Progress, error) {
	if g.TargetAmount.IsNegative() || g.CurrentAmount.IsNegative() {
		return Progress{}, fmt.Errorf("goal %d: negative amount", g.ID)
	}

	p := Progress{
		Percentage:   decimal.Zero,
		AmountNeeded: decimal.Max(g.TargetAmount.Sub(g.CurrentAmount), decimal.Zero),
	}
	if g.TargetAmount.IsPositive() {
		p.Percentage = g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
	}
	p.Completed = g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
	p.DaysRemaining = daysUntil(g.Deadline, today)

	// Completion beats urgency.
	switch {
	case p.Completed:
		p.Status = StatusCompleted
	case p.DaysRemaining <= 7:
		p.Status = StatusUrgent
	case p.DaysRemaining <= 30:
		p.Status = StatusWarning
	default:
		p.Status = StatusActive
	}
	return p, nil
}

// EvaluateAll evaluates every goal in the batch; a malformed entry
// records its error without aborting the rest.
func EvaluateAll(goals []model.Goal, today time.Time) []Evaluation {
	out := make([]Evaluation, 0, len(goals))
	for _, g := range goals {
		p, err := Evaluate(g, today)
		out = append(out, Evaluation{Goal: g, Progress: p, Err: err})
	}
	return out
}

// daysUntil returns whole calendar days from today to deadline,
// never negative. Dates are compared as UTC day numbers so a 23-hour
// DST day still counts as one calendar day.
func daysUntil(deadline, today time.Time) int {
	d := dayNumber(deadline) - dayNumber(today)
	if d < 0 {
		return 0
	}
	return d
}

func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
