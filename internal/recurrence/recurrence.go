// Package recurrence decides when recurring transactions fall due and
// materializes new occurrences from their definitions.
//
// The anchor for every dueness check is the definition's Date: the
// instant of its most recent materialized occurrence. Materializing
// hands the anchor to the new record, which is what makes repeated
// batch runs within one period idempotent.
package recurrence

import (
	"strings"
	"time"

	"github.com/budgetwise-dev/budgetwise/internal/model"
	"github.com/budgetwise-dev/budgetwise/internal/period"
)

// Prefix marks materialized occurrences so they are distinguishable
// from manually entered transactions.
const Prefix = "[recurring] "

// IsDue reports whether a new occurrence of def is due as of today.
// Monthly and yearly patterns trigger on any change of calendar month
// or year regardless of day alignment, so a definition anchored on the
// 31st fires on the 1st of a shorter month.
func IsDue(def model.Transaction, today time.Time) bool {
	if !def.IsRecurring {
		return false
	}
	switch def.Recurrence {
	case model.RecurrenceDaily:
		return daysBetween(def.Date, today) >= 1
	case model.RecurrenceWeekly:
		return daysBetween(def.Date, today) >= 7
	case model.RecurrenceMonthly:
		return def.Date.Year() != today.Year() || def.Date.Month() != today.Month()
	case model.RecurrenceYearly:
		return def.Date.Year() != today.Year()
	default:
		return false
	}
}

// Materialize creates the new occurrence: amount, category, payment
// method, pattern, and notes copy from the definition; the date is
// stamped now and the description gains the recurring prefix. The
// returned record carries the recurring flag and so serves as the next
// anchor. The ID is left empty for the persistence layer to assign.
func Materialize(def model.Transaction, now time.Time) model.Transaction {
	desc := def.Description
	if !strings.HasPrefix(desc, Prefix) {
		desc = Prefix + desc
	}
	return model.Transaction{
		OwnerID:       def.OwnerID,
		CategoryID:    def.CategoryID,
		Amount:        def.Amount,
		Description:   desc,
		PaymentMethod: def.PaymentMethod,
		Notes:         def.Notes,
		Date:          now,
		IsRecurring:   true,
		Recurrence:    def.Recurrence,
	}
}

// Materialization pairs a definition with the occurrence created from it.
type Materialization struct {
	Definition model.Transaction
	New        model.Transaction
}

// Process materializes one occurrence for every currently-due
// definition. Callers persist each New record; because New becomes the
// definition's anchor, running Process again in the same period finds
// nothing due and creates no duplicates.
func Process(defs []model.Transaction, now time.Time) []Materialization {
	var out []Materialization
	for _, def := range defs {
		if !IsDue(def, now) {
			continue
		}
		out = append(out, Materialization{Definition: def, New: Materialize(def, now)})
	}
	return out
}

// Bucket returns the period-bucket key for def's pattern at t, the
// key the persistence layer guards against duplicate concurrent
// materialization with. Empty for non-recurring definitions.
func Bucket(def model.Transaction, t time.Time) string {
	kind, ok := periodFor(def.Recurrence)
	if !ok {
		return ""
	}
	return period.BucketKey(t, kind)
}

func periodFor(p model.RecurrencePattern) (model.PeriodKind, bool) {
	switch p {
	case model.RecurrenceDaily:
		return model.PeriodDaily, true
	case model.RecurrenceWeekly:
		return model.PeriodWeekly, true
	case model.RecurrenceMonthly:
		return model.PeriodMonthly, true
	case model.RecurrenceYearly:
		return model.PeriodYearly, true
	default:
		return "", false
	}
}

// daysBetween counts whole calendar days from a to b. Dates are
// compared as UTC day numbers so a 23-hour DST day still counts as one
// calendar day.
func daysBetween(a, b time.Time) int {
	return dayNumber(b) - dayNumber(a)
}

func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
