package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target with a deadline. CurrentAmount must not
// exceed TargetAmount at the input boundary; the evaluator itself
// tolerates (and reports) overshoot.
type Goal struct {
	ID            int
	OwnerID       int
	Name          string
	TargetAmount  decimal.Decimal // > 0
	CurrentAmount decimal.Decimal // >= 0
	Deadline      time.Time
	Description   string
}
