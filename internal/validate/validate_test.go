package validate

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

func fields(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(Errors)
	require.True(t, ok, "expected validate.Errors, got %T", err)
	out := make([]string, len(errs))
	for i, fe := range errs {
		out[i] = fe.Field
	}
	return out
}

func TestTransaction_Valid(t *testing.T) {
	tx := model.Transaction{
		Amount: dec("12.50"), Description: "Lunch", Date: date(2024, time.March, 5),
	}
	assert.NoError(t, Transaction(tx))
}

func TestTransaction_Rejections(t *testing.T) {
	tx := model.Transaction{Amount: dec("-1.00")}
	got := fields(t, Transaction(tx))
	assert.Contains(t, got, "amount")
	assert.Contains(t, got, "description")
	assert.Contains(t, got, "date")

	tx = model.Transaction{Amount: dec("1.999"), Description: "x", Date: date(2024, time.March, 5)}
	assert.Contains(t, fields(t, Transaction(tx)), "amount", "more than 2 decimal places")

	tx = model.Transaction{Amount: dec("5.00"), Description: "x", Date: date(2024, time.March, 5), IsRecurring: true}
	assert.Contains(t, fields(t, Transaction(tx)), "recurrence", "recurring without pattern")

	tx = model.Transaction{Amount: dec("5.00"), Description: "x", Date: date(2024, time.March, 5),
		IsRecurring: true, Recurrence: model.RecurrencePattern("fortnightly")}
	assert.Contains(t, fields(t, Transaction(tx)), "recurrence")
}

func TestBudget(t *testing.T) {
	b := model.Budget{Amount: dec("80.00"), Period: model.PeriodMonthly, StartDate: date(2024, time.March, 1)}
	assert.NoError(t, Budget(b))

	b.EndDate = date(2024, time.February, 1)
	assert.Contains(t, fields(t, Budget(b)), "end_date", "end before start")

	b = model.Budget{Amount: decimal.Zero, Period: model.PeriodKind("quarterly")}
	got := fields(t, Budget(b))
	assert.Contains(t, got, "amount", "zero amount rejected at the boundary")
	assert.Contains(t, got, "period")
	assert.Contains(t, got, "start_date")
}

func TestGoal(t *testing.T) {
	now := date(2024, time.June, 1)
	g := model.Goal{Name: "Vacation", TargetAmount: dec("2000.00"), CurrentAmount: dec("100.00"), Deadline: date(2025, time.June, 1)}
	assert.NoError(t, Goal(g, now, true))

	g.CurrentAmount = dec("2500.00")
	assert.Contains(t, fields(t, Goal(g, now, true)), "current_amount", "current exceeds target")

	g = model.Goal{Name: "Old", TargetAmount: dec("100.00"), Deadline: date(2024, time.January, 1)}
	assert.Contains(t, fields(t, Goal(g, now, true)), "deadline", "past deadline rejected at creation")
	assert.NoError(t, Goal(g, now, false), "past deadline allowed on existing goals")
}

func TestCategory(t *testing.T) {
	c := model.Category{Name: "Groceries", Type: model.CategoryExpense, Color: "#ff8800", Icon: "cart"}
	assert.NoError(t, Category(c))

	c = model.Category{Name: "", Type: model.CategoryType("both"), Color: "orange"}
	got := fields(t, Category(c))
	assert.Contains(t, got, "name")
	assert.Contains(t, got, "type")
	assert.Contains(t, got, "color")
}
