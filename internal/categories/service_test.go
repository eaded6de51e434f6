package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetwise-dev/budgetwise/internal/ledger"
	"github.com/budgetwise-dev/budgetwise/internal/model"
)

func TestEnsureDefaults_Idempotent(t *testing.T) {
	store := ledger.NewMemoryStore()
	ctx := context.Background()

	created, err := EnsureDefaults(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultSet()), created)

	// Second call finds the seeded set and does nothing.
	created, err = EnsureDefaults(ctx, store)
	require.NoError(t, err)
	assert.Zero(t, created)

	cats, err := store.Categories(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, cats, len(DefaultSet()), "no duplicates after repeated calls")
}

func TestEnsureDefaults_UserCategoriesDontBlockSeeding(t *testing.T) {
	store := ledger.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.AddCategory(ctx, &model.Category{OwnerID: 7, Name: "Hobby", Type: model.CategoryExpense}))

	created, err := EnsureDefaults(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultSet()), created, "a user category is not a global seed")
}

func TestService_Lookup(t *testing.T) {
	store := ledger.NewMemoryStore()
	ctx := context.Background()
	_, err := EnsureDefaults(ctx, store)
	require.NoError(t, err)

	svc, err := Load(ctx, store, 1)
	require.NoError(t, err)

	assert.Len(t, svc.All(), len(DefaultSet()))
	assert.True(t, svc.Exists(1))
	assert.False(t, svc.Exists(999))

	c, ok := svc.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Food & Dining", c.Name)
	assert.Equal(t, model.CategoryExpense, svc.TypeOf(1))
	assert.Equal(t, model.CategoryType(""), svc.TypeOf(999))

	income := svc.ByType(model.CategoryIncome)
	assert.Len(t, income, 2)
}
