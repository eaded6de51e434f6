package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurrencePattern describes how often a recurring transaction repeats.
type RecurrencePattern string

const (
	RecurrenceNone    RecurrencePattern = "none"
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
	RecurrenceYearly  RecurrencePattern = "yearly"
)

// PaymentMethod tags how a transaction was paid or received.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentOther    PaymentMethod = "other"
)

// Transaction is a single ledger record (expense or income), owned
// exclusively by one user. Income vs expense is determined by the
// category's type, not the amount's sign.
type Transaction struct {
	ID            string
	OwnerID       int
	CategoryID    int // 0 = uncategorized
	Amount        decimal.Decimal
	Description   string
	PaymentMethod PaymentMethod
	Notes         string
	Date          time.Time // absolute instant of occurrence
	IsRecurring   bool
	Recurrence    RecurrencePattern
}
