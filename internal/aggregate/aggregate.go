// Package aggregate provides pure sum/count/grouping passes over a
// ledger slice. Every function is side-effect free and tolerates an
// empty input, returning an exact decimal zero rather than a null.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// Result holds the outcome of a single aggregation pass.
type Result struct {
	Sum   decimal.Decimal
	Count int
}

// Predicate selects transactions for aggregation. All predicates
// passed to a pass must match (logical AND).
type Predicate func(model.Transaction) bool

// TypeResolver maps a category ID to its type. Uncategorized or
// unknown categories resolve to the empty type and never match ByType.
type TypeResolver func(categoryID int) model.CategoryType

// Sum totals the amounts of transactions matching all predicates.
func Sum(txs []model.Transaction, preds ...Predicate) Result {
	res := Result{Sum: decimal.Zero}
	for _, tx := range txs {
		if !matches(tx, preds) {
			continue
		}
		res.Sum = res.Sum.Add(tx.Amount)
		res.Count++
	}
	return res
}

// ByCategory matches transactions in the given category.
func ByCategory(categoryID int) Predicate {
	return func(tx model.Transaction) bool { return tx.CategoryID == categoryID }
}

// ByType matches transactions whose category resolves to the given type.
func ByType(t model.CategoryType, resolve TypeResolver) Predicate {
	return func(tx model.Transaction) bool { return resolve(tx.CategoryID) == t }
}

// InRange matches transactions dated within [start, end] inclusive.
func InRange(start, end time.Time) Predicate {
	return func(tx model.Transaction) bool {
		return !tx.Date.Before(start) && !tx.Date.After(end)
	}
}

// ByPaymentMethod matches transactions paid with the given method.
func ByPaymentMethod(pm model.PaymentMethod) Predicate {
	return func(tx model.Transaction) bool { return tx.PaymentMethod == pm }
}

// MinAmount matches transactions with amount >= min.
func MinAmount(min decimal.Decimal) Predicate {
	return func(tx model.Transaction) bool { return tx.Amount.GreaterThanOrEqual(min) }
}

// MaxAmount matches transactions with amount <= max.
func MaxAmount(max decimal.Decimal) Predicate {
	return func(tx model.Transaction) bool { return tx.Amount.LessThanOrEqual(max) }
}

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	CategoryID int
	Sum        decimal.Decimal
	Count      int
	Share      decimal.Decimal // percentage of total, 2dp; set by WithShares
}

// GroupByCategory buckets matching transactions by category and
// returns totals ordered by descending sum, ties broken by ascending
// category ID. The ordering is deterministic for identical input sets.
func GroupByCategory(txs []model.Transaction, preds ...Predicate) []CategoryTotal {
	byID := make(map[int]*CategoryTotal)
	for _, tx := range txs {
		if !matches(tx, preds) {
			continue
		}
		ct, ok := byID[tx.CategoryID]
		if !ok {
			ct = &CategoryTotal{CategoryID: tx.CategoryID, Sum: decimal.Zero}
			byID[tx.CategoryID] = ct
		}
		ct.Sum = ct.Sum.Add(tx.Amount)
		ct.Count++
	}

	groups := make([]CategoryTotal, 0, len(byID))
	for _, ct := range byID {
		groups = append(groups, *ct)
	}
	sort.Slice(groups, func(i, j int) bool {
		if !groups[i].Sum.Equal(groups[j].Sum) {
			return groups[i].Sum.GreaterThan(groups[j].Sum)
		}
		return groups[i].CategoryID < groups[j].CategoryID
	})
	return groups
}

// WithShares fills each group's Share as its percentage of the grand
// total, rounded to 2 decimal places. A zero total yields all-zero
// shares rather than a division fault.
func WithShares(groups []CategoryTotal) []CategoryTotal {
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Sum)
	}

	out := make([]CategoryTotal, len(groups))
	hundred := decimal.NewFromInt(100)
	for i, g := range groups {
		if total.IsZero() {
			g.Share = decimal.Zero
		} else {
			g.Share = g.Sum.Div(total).Mul(hundred).Round(2)
		}
		out[i] = g
	}
	return out
}

func matches(tx model.Transaction, preds []Predicate) bool {
	for _, p := range preds {
		if !p(tx) {
			return false
		}
	}
	return true
}
