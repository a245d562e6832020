// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data. Every public method runs in exactly one transaction.
package service

import (
	"context"
	"errors"

	"github.com/deppfellow/expense-tracker/internal/database"
	"github.com/deppfellow/expense-tracker/internal/errs"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
	"github.com/jackc/pgx/v5"
)

// Transactor opens the per-call transaction. *database.Database implements it.
type Transactor interface {
	WithTx(ctx context.Context, fn func(q database.Querier) error) error
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, q database.Querier, name string) (*category.Category, error)
	GetCategories(ctx context.Context, q database.Querier) ([]category.Category, error)
	GetCategoryByID(ctx context.Context, q database.Querier, id int64) (*category.Category, error)
	GetCategoriesByIDs(ctx context.Context, q database.Querier, ids []int64) (map[int64]*category.Category, error)
	UpdateCategory(ctx context.Context, q database.Querier, c *category.Category) (*category.Category, error)
	DeleteCategory(ctx context.Context, q database.Querier, id int64) (bool, error)
}

type ExpenseRepository interface {
	CreateExpense(ctx context.Context, q database.Querier, e *expense.Expense) (*expense.Expense, error)
	GetExpenses(ctx context.Context, q database.Querier) ([]expense.Expense, error)
	GetExpenseByID(ctx context.Context, q database.Querier, id int64) (*expense.Expense, error)
	UpdateExpense(ctx context.Context, q database.Querier, e *expense.Expense) (*expense.Expense, error)
	DeleteExpense(ctx context.Context, q database.Querier, id int64) (bool, error)
	CountExpensesByCategory(ctx context.Context, q database.Querier, categoryID int64) (int64, error)
	DeleteExpensesByCategory(ctx context.Context, q database.Querier, categoryID int64) (int64, error)
	DetachExpensesFromCategory(ctx context.Context, q database.Querier, categoryID int64) (int64, error)
}

var (
	codeCategoryNotFound = "CATEGORY_NOT_FOUND"
	codeExpenseNotFound  = "EXPENSE_NOT_FOUND"
	codeCategoryInUse    = "CATEGORY_IN_USE"
)

func categoryNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError("Category not found", true, &codeCategoryNotFound)
	}
	return err
}

func expenseNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError("Expense not found", true, &codeExpenseNotFound)
	}
	return err
}
