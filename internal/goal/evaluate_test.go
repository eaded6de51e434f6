package goal

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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEvaluate_UncappedPercentage(t *testing.T) {
	g := model.Goal{
		Name:          "Emergency fund",
		TargetAmount:  dec("100.00"),
		CurrentAmount: dec("150.00"),
		Deadline:      date(2024, time.December, 31),
	}

	p, err := Evaluate(g, date(2024, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, "150.00", p.Percentage.StringFixed(2), "goal percentage is not capped")
	assert.True(t, p.Completed)
	assert.True(t, p.AmountNeeded.Equal(decimal.Zero), "overshoot never yields negative need")
	assert.Equal(t, StatusCompleted, p.Status)
}

func TestEvaluate_StatusPriority(t *testing.T) {
	today := date(2024, time.June, 1)
	tests := []struct {
		name     string
		current  string
		deadline time.Time
		status   Status
		days     int
	}{
		{"far deadline", "10.00", date(2024, time.December, 1), StatusActive, 183},
		{"within 30 days", "10.00", date(2024, time.June, 25), StatusWarning, 24},
		{"within 7 days", "10.00", date(2024, time.June, 5), StatusUrgent, 4},
		{"deadline today", "10.00", today, StatusUrgent, 0},
		{"past deadline", "10.00", date(2024, time.May, 1), StatusUrgent, 0},
		{"completed beats urgent", "100.00", today, StatusCompleted, 0},
	}
	for _, tt := range tests {
		g := model.Goal{TargetAmount: dec("100.00"), CurrentAmount: dec(tt.current), Deadline: tt.deadline}
		p, err := Evaluate(g, today)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.status, p.Status, tt.name)
		assert.Equal(t, tt.days, p.DaysRemaining, tt.name)
	}
}

func TestEvaluate_DaysRemainingAcrossSpringForward(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// March 10 2024 is a 23-hour day in New York; the span still counts
	// as 14 calendar days.
	today := time.Date(2024, time.March, 9, 12, 0, 0, 0, loc)
	g := model.Goal{
		TargetAmount:  dec("100.00"),
		CurrentAmount: dec("10.00"),
		Deadline:      time.Date(2024, time.March, 23, 0, 0, 0, 0, loc),
	}

	p, err := Evaluate(g, today)
	require.NoError(t, err)
	assert.Equal(t, 14, p.DaysRemaining)
}

func TestEvaluate_ZeroTarget(t *testing.T) {
	g := model.Goal{TargetAmount: decimal.Zero, CurrentAmount: decimal.Zero, Deadline: date(2025, time.January, 1)}
	p, err := Evaluate(g, date(2024, time.June, 1))
	require.NoError(t, err)
	assert.True(t, p.Percentage.Equal(decimal.Zero), "zero target never divides")
	assert.True(t, p.Completed, "zero target counts as reached")
}

func TestEvaluate_AmountNeeded(t *testing.T) {
	g := model.Goal{TargetAmount: dec("500.00"), CurrentAmount: dec("120.00"), Deadline: date(2025, time.January, 1)}
	p, err := Evaluate(g, date(2024, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, "380.00", p.AmountNeeded.StringFixed(2))
	assert.Equal(t, "24.00", p.Percentage.StringFixed(2))
	assert.False(t, p.Completed)
}

func TestEvaluateAll_IsolatesFailures(t *testing.T) {
	goals := []model.Goal{
		{ID: 1, TargetAmount: dec("100.00"), CurrentAmount: dec("50.00"), Deadline: date(2025, time.January, 1)},
		{ID: 2, TargetAmount: dec("-1.00"), Deadline: date(2025, time.January, 1)},
		{ID: 3, TargetAmount: dec("200.00"), CurrentAmount: dec("200.00"), Deadline: date(2025, time.January, 1)},
	}
	evals := EvaluateAll(goals, date(2024, time.June, 1))
	require.Len(t, evals, 3)
	assert.NoError(t, evals[0].Err)
	assert.Error(t, evals[1].Err)
	assert.Equal(t, StatusCompleted, evals[2].Progress.Status)
}
