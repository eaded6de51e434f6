package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

// MemoryStore is an in-memory Store for tests and pure-compute callers.
// Reads return copies, so a returned slice is a stable snapshot even
// while other goroutines mutate the store.
type MemoryStore struct {
	mu         sync.RWMutex
	txs        []model.Transaction
	categories []model.Category
	budgets    []model.Budget
	goals      []model.Goal
	nextTxSeq  int
	nextCatID  int
	nextBdgID  int
	nextGoalID int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextTxSeq: 1, nextCatID: 1, nextBdgID: 1, nextGoalID: 1}
}

func (s *MemoryStore) Transactions(_ context.Context, ownerID int, f Filter) ([]model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resolve := s.typeResolverLocked(ownerID)
	var out []model.Transaction
	for _, tx := range s.txs {
		if tx.OwnerID != ownerID {
			continue
		}
		if !f.Matches(tx, resolve) {
			continue
		}
		out = append(out, tx)
	}
	// Newest first, matching the presentation default.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *MemoryStore) AddTransaction(_ context.Context, tx *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.ID == "" {
		tx.ID = fmt.Sprintf("mem-%06d", s.nextTxSeq)
		s.nextTxSeq++
	}
	s.txs = append(s.txs, *tx)
	return nil
}

func (s *MemoryStore) UpdateTransaction(_ context.Context, tx model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.txs {
		if existing.ID == tx.ID && existing.OwnerID == tx.OwnerID {
			s.txs[i] = tx
			return nil
		}
	}
	return fmt.Errorf("transaction %s: %w", tx.ID, ErrNotFound)
}

func (s *MemoryStore) DeleteTransaction(_ context.Context, ownerID int, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.txs {
		if tx.ID == id && tx.OwnerID == ownerID {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

// Categories returns the owner's categories plus the global defaults
// (owner 0).
func (s *MemoryStore) Categories(_ context.Context, ownerID int) ([]model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Category
	for _, c := range s.categories {
		if c.OwnerID == ownerID || c.OwnerID == 0 {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemoryStore) AddCategory(_ context.Context, c *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.nextCatID
		s.nextCatID++
	} else if c.ID >= s.nextCatID {
		s.nextCatID = c.ID + 1
	}
	s.categories = append(s.categories, *c)
	return nil
}

func (s *MemoryStore) Budgets(_ context.Context, ownerID int) ([]model.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Budget
	for _, b := range s.budgets {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *MemoryStore) AddBudget(_ context.Context, b *model.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.budgets {
		if existing.OwnerID == b.OwnerID && existing.CategoryID == b.CategoryID && existing.Period == b.Period {
			return fmt.Errorf("budget for category %d period %s already exists", b.CategoryID, b.Period)
		}
	}
	b.ID = s.nextBdgID
	s.nextBdgID++
	s.budgets = append(s.budgets, *b)
	return nil
}

func (s *MemoryStore) UpdateBudget(_ context.Context, b model.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.budgets {
		if existing.ID == b.ID && existing.OwnerID == b.OwnerID {
			s.budgets[i] = b
			return nil
		}
	}
	return fmt.Errorf("budget %d: %w", b.ID, ErrNotFound)
}

func (s *MemoryStore) DeleteBudget(_ context.Context, ownerID, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.budgets {
		if b.ID == id && b.OwnerID == ownerID {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("budget %d: %w", id, ErrNotFound)
}

func (s *MemoryStore) Goals(_ context.Context, ownerID int) ([]model.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Goal
	for _, g := range s.goals {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *MemoryStore) AddGoal(_ context.Context, g *model.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = s.nextGoalID
	s.nextGoalID++
	s.goals = append(s.goals, *g)
	return nil
}

func (s *MemoryStore) UpdateGoal(_ context.Context, g model.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.goals {
		if existing.ID == g.ID && existing.OwnerID == g.OwnerID {
			s.goals[i] = g
			return nil
		}
	}
	return fmt.Errorf("goal %d: %w", g.ID, ErrNotFound)
}

func (s *MemoryStore) DeleteGoal(_ context.Context, ownerID, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id && g.OwnerID == ownerID {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("goal %d: %w", id, ErrNotFound)
}

func (s *MemoryStore) Owners(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[int]bool)
	var out []int
	for _, tx := range s.txs {
		if !seen[tx.OwnerID] {
			seen[tx.OwnerID] = true
			out = append(out, tx.OwnerID)
		}
	}
	sort.Ints(out)
	return out, nil
}

func (s *MemoryStore) typeResolverLocked(ownerID int) func(int) model.CategoryType {
	types := make(map[int]model.CategoryType)
	for _, c := range s.categories {
		if c.OwnerID == ownerID || c.OwnerID == 0 {
			types[c.ID] = c.Type
		}
	}
	return func(id int) model.CategoryType { return types[id] }
}
