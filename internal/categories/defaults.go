package categories

import "github.com/budgetwise-dev/budgetwise/internal/model"

// DefaultSet returns the global default categories seeded for every
// installation. OwnerID 0 marks them visible to all users.
func DefaultSet() []model.Category {
	return []model.Category{
		{Name: "Food & Dining", Type: model.CategoryExpense, Color: "#e74c3c", Icon: "utensils"},
		{Name: "Housing", Type: model.CategoryExpense, Color: "#8e44ad", Icon: "home"},
		{Name: "Transportation", Type: model.CategoryExpense, Color: "#3498db", Icon: "car"},
		{Name: "Entertainment", Type: model.CategoryExpense, Color: "#f39c12", Icon: "film"},
		{Name: "Healthcare", Type: model.CategoryExpense, Color: "#1abc9c", Icon: "heartbeat"},
		{Name: "Other", Type: model.CategoryExpense, Color: "#95a5a6", Icon: "ellipsis-h"},
		{Name: "Salary", Type: model.CategoryIncome, Color: "#2ecc71", Icon: "money-bill"},
		{Name: "Other Income", Type: model.CategoryIncome, Color: "#27ae60", Icon: "plus-circle"},
	}
}
