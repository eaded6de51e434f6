// Package ledger defines the persistence boundary for transactions,
// categories, budgets, and goals, with in-memory, CSV, and PostgreSQL
// implementations.
//
// Every query is scoped to a single owner; an entity that exists but
// belongs to someone else surfaces as ErrNotFound, never as another
// user's data. Store errors propagate unchanged to callers: no retry,
// no masking.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// ErrNotFound marks a lookup of an entity that does not exist for the
// requesting owner.
var ErrNotFound = errors.New("not found")

// Filter narrows a transaction query. Zero values mean "no constraint";
// amount bounds use pointers so a zero amount stays expressible.
type Filter struct {
	CategoryID    int
	Type          model.CategoryType
	Start         time.Time
	End           time.Time
	PaymentMethod model.PaymentMethod
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	RecurringOnly bool
}

// Store is the ledger query adapter the aggregation engine consumes.
// Implementations must return point-in-time consistent snapshots.
type Store interface {
	Transactions(ctx context.Context, ownerID int, f Filter) ([]model.Transaction, error)
	AddTransaction(ctx context.Context, tx *model.Transaction) error
	UpdateTransaction(ctx context.Context, tx model.Transaction) error
	DeleteTransaction(ctx context.Context, ownerID int, id string) error

	Categories(ctx context.Context, ownerID int) ([]model.Category, error)
	AddCategory(ctx context.Context, c *model.Category) error

	Budgets(ctx context.Context, ownerID int) ([]model.Budget, error)
	AddBudget(ctx context.Context, b *model.Budget) error
	UpdateBudget(ctx context.Context, b model.Budget) error
	DeleteBudget(ctx context.Context, ownerID, id int) error

	Goals(ctx context.Context, ownerID int) ([]model.Goal, error)
	AddGoal(ctx context.Context, g *model.Goal) error
	UpdateGoal(ctx context.Context, g model.Goal) error
	DeleteGoal(ctx context.Context, ownerID, id int) error

	// Owners lists every owner with at least one transaction, for
	// system-wide recurrence scans.
	Owners(ctx context.Context) ([]int, error)
}

// Matches reports whether tx satisfies the filter. resolve maps
// category IDs to types for the Type constraint; pass nil when the
// filter carries no type.
func (f Filter) Matches(tx model.Transaction, resolve func(int) model.CategoryType) bool {
	if f.CategoryID != 0 && tx.CategoryID != f.CategoryID {
		return false
	}
	if f.Type != "" && (resolve == nil || resolve(tx.CategoryID) != f.Type) {
		return false
	}
	if !f.Start.IsZero() && tx.Date.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && tx.Date.After(f.End) {
		return false
	}
	if f.PaymentMethod != "" && tx.PaymentMethod != f.PaymentMethod {
		return false
	}
	if f.MinAmount != nil && tx.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && tx.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if f.RecurringOnly && !tx.IsRecurring {
		return false
	}
	return true
}
