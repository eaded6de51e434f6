package model

// CategoryType classifies a category as money in or money out.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Category groups transactions for budgeting and breakdowns.
// OwnerID 0 marks a global default category visible to every user.
// (OwnerID, Name) is unique when OwnerID is set.
type Category struct {
	ID      int
	OwnerID int
	Name    string
	Type    CategoryType
	Color   string // hex, e.g. "#e74c3c"
	Icon    string
}
