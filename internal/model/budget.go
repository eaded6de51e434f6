package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodKind names the time window a budget or report covers.
type PeriodKind string

const (
	PeriodDaily   PeriodKind = "daily"
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
	PeriodYearly  PeriodKind = "yearly"
)

// Budget allocates an amount to a category over a period.
// (OwnerID, CategoryID, Period) is unique. A zero EndDate means the
// budget is open-ended and "now" bounds its spent computation.
type Budget struct {
	ID         int
	OwnerID    int
	CategoryID int
	Amount     decimal.Decimal
	Period     PeriodKind
	StartDate  time.Time
	EndDate    time.Time // zero = open-ended
}

// OpenEnded reports whether the budget has no end date.
func (b Budget) OpenEnded() bool {
	return b.EndDate.IsZero()
}
