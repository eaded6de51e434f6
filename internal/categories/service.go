// Package categories provides in-memory category lookup and the
// idempotent default-set initialization.
package categories

import (
	"context"
	"fmt"

	"github.com/budgetwise-dev/budgetwise/internal/ledger"
	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// Service provides in-memory lookup over a user's visible categories
// (their own plus the global defaults).
type Service struct {
	categories []model.Category
	byID       map[int]model.Category
}

// NewService creates a Service from a slice of categories.
func NewService(cats []model.Category) *Service {
	byID := make(map[int]model.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	return &Service{categories: cats, byID: byID}
}

// Load fetches an owner's visible categories from the store.
func Load(ctx context.Context, store ledger.Store, ownerID int) (*Service, error) {
	cats, err := store.Categories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	return NewService(cats), nil
}

// All returns all categories.
func (s *Service) All() []model.Category {
	return s.categories
}

// Get returns a category by ID.
func (s *Service) Get(id int) (model.Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Exists reports whether a category ID exists.
func (s *Service) Exists(id int) bool {
	_, ok := s.byID[id]
	return ok
}

// ByType returns all categories of the given type.
func (s *Service) ByType(t model.CategoryType) []model.Category {
	var result []model.Category
	for _, c := range s.categories {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}

// TypeOf maps a category ID to its type for aggregation predicates.
// Unknown IDs resolve to the empty type.
func (s *Service) TypeOf(id int) model.CategoryType {
	return s.byID[id].Type
}

// EnsureDefaults seeds the global default category set if no global
// categories exist yet. Idempotent: safe to call on every shell
// startup, a no-op once seeded. Returns the number of categories
// created.
func EnsureDefaults(ctx context.Context, store ledger.Store) (int, error) {
	existing, err := store.Categories(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("checking existing categories: %w", err)
	}
	for _, c := range existing {
		if c.OwnerID == 0 {
			return 0, nil // already seeded
		}
	}

	defaults := DefaultSet()
	for i := range defaults {
		if err := store.AddCategory(ctx, &defaults[i]); err != nil {
			return i, fmt.Errorf("seeding category %q: %w", defaults[i].Name, err)
		}
	}
	return len(defaults), nil
}
