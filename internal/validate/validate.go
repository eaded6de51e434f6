// Package validate rejects malformed input at the boundary, before it
// reaches the aggregation core. The core assumes validated entities
// and does not re-check on every call.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors aggregates field-level failures for one entity.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// orNil returns nil for an empty error list so callers can test
// err == nil directly.
func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var v = validator.New()

// categoryInput mirrors the category form fields validator can check
// by tag.
type categoryInput struct {
	Name  string `validate:"required,max=50"`
	Type  string `validate:"required,oneof=income expense"`
	Color string `validate:"omitempty,hexcolor"`
	Icon  string `validate:"max=30"`
}

// Category validates a category at creation or edit.
func Category(c model.Category) error {
	var errs Errors
	in := categoryInput{Name: c.Name, Type: string(c.Type), Color: c.Color, Icon: c.Icon}
	errs = append(errs, tagErrors(v.Struct(in))...)
	return errs.orNil()
}

// Transaction validates a transaction at creation or edit.
func Transaction(tx model.Transaction) error {
	var errs Errors
	errs = append(errs, amountErrors("amount", tx.Amount)...)
	if tx.Description == "" {
		errs = append(errs, FieldError{"description", "is required"})
	}
	if tx.Date.IsZero() {
		errs = append(errs, FieldError{"date", "is required"})
	}
	if tx.IsRecurring && (tx.Recurrence == "" || tx.Recurrence == model.RecurrenceNone) {
		errs = append(errs, FieldError{"recurrence", "pattern is required for a recurring transaction"})
	}
	if !tx.IsRecurring && tx.Recurrence != "" && tx.Recurrence != model.RecurrenceNone {
		errs = append(errs, FieldError{"recurrence", "pattern set on a non-recurring transaction"})
	}
	if tx.Recurrence != "" && !knownPattern(tx.Recurrence) {
		errs = append(errs, FieldError{"recurrence", fmt.Sprintf("unknown pattern %q", tx.Recurrence)})
	}
	return errs.orNil()
}

// Budget validates a budget at creation or edit.
func Budget(b model.Budget) error {
	var errs Errors
	errs = append(errs, amountErrors("amount", b.Amount)...)
	switch b.Period {
	case model.PeriodDaily, model.PeriodWeekly, model.PeriodMonthly, model.PeriodYearly:
	default:
		errs = append(errs, FieldError{"period", fmt.Sprintf("unknown period %q", b.Period)})
	}
	if b.StartDate.IsZero() {
		errs = append(errs, FieldError{"start_date", "is required"})
	}
	if !b.OpenEnded() && b.EndDate.Before(b.StartDate) {
		errs = append(errs, FieldError{"end_date", "must not be before start_date"})
	}
	return errs.orNil()
}

// Goal validates a goal. The past-deadline check applies only at
// creation; an existing goal may legitimately outlive its deadline.
func Goal(g model.Goal, now time.Time, isNew bool) error {
	var errs Errors
	if g.Name == "" {
		errs = append(errs, FieldError{"name", "is required"})
	}
	errs = append(errs, amountErrors("target_amount", g.TargetAmount)...)
	if g.CurrentAmount.IsNegative() {
		errs = append(errs, FieldError{"current_amount", "must not be negative"})
	}
	if !twoDecimalPlaces(g.CurrentAmount) {
		errs = append(errs, FieldError{"current_amount", "has more than 2 decimal places"})
	}
	if g.CurrentAmount.GreaterThan(g.TargetAmount) {
		errs = append(errs, FieldError{"current_amount", "must not exceed target_amount"})
	}
	if g.Deadline.IsZero() {
		errs = append(errs, FieldError{"deadline", "is required"})
	} else if isNew && g.Deadline.Before(now) {
		errs = append(errs, FieldError{"deadline", "must not be in the past"})
	}
	return errs.orNil()
}

func amountErrors(field string, amount decimal.Decimal) Errors {
	var errs Errors
	if !amount.IsPositive() {
		errs = append(errs, FieldError{field, "must be greater than zero"})
	}
	if !twoDecimalPlaces(amount) {
		errs = append(errs, FieldError{field, "has more than 2 decimal places"})
	}
	return errs
}

// twoDecimalPlaces reports whether d has at most 2 fractional digits.
func twoDecimalPlaces(d decimal.Decimal) bool {
	cents := d.Mul(decimal.NewFromInt(100))
	return cents.Equal(cents.Floor())
}

func knownPattern(p model.RecurrencePattern) bool {
	switch p {
	case model.RecurrenceNone, model.RecurrenceDaily, model.RecurrenceWeekly,
		model.RecurrenceMonthly, model.RecurrenceYearly:
		return true
	}
	return false
}

// tagErrors converts validator tag failures to field errors.
func tagErrors(err error) Errors {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "input", Message: err.Error()}}
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fmt.Sprintf("failed %q validation", fe.Tag()),
		})
	}
	return out
}
