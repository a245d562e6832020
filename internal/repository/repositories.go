package repository

// Repositories is a container for all repository instances.
type Repositories struct {
	Category *CategoryRepository
	Expense  *ExpenseRepository
}

// NewRepositories constructs the repository container.
func NewRepositories() *Repositories {
	return &Repositories{
		Category: NewCategoryRepository(),
		Expense:  NewExpenseRepository(),
	}
}
