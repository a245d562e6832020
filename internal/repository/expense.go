package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/expense-tracker/internal/database"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
	"github.com/jackc/pgx/v5"
)

// Detached expenses (nullify delete policy) read back with category id 0.
const expenseColumns = `id, title, amount, expense_date, COALESCE(category_id, 0), created_at, updated_at`

type ExpenseRepository struct{}

func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{}
}

func scanExpense(row pgx.Row) (*expense.Expense, error) {
	var e expense.Expense
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Amount,
		&e.ExpenseDate.Time,
		&e.CategoryID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// nullableCategoryID stores 0 as NULL.
func nullableCategoryID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func (r *ExpenseRepository) CreateExpense(ctx context.Context, q database.Querier, e *expense.Expense) (*expense.Expense, error) {
	stmt := `
		INSERT INTO expenses (title, amount, expense_date, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + expenseColumns

	created, err := scanExpense(q.QueryRow(ctx, stmt,
		e.Title,
		e.Amount,
		e.ExpenseDate.Time,
		nullableCategoryID(e.CategoryID),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}
	return created, nil
}

func (r *ExpenseRepository) GetExpenses(ctx context.Context, q database.Querier) ([]expense.Expense, error) {
	stmt := `SELECT ` + expenseColumns + ` FROM expenses ORDER BY id`

	rows, err := q.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]expense.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to collect expenses: %w", err)
	}
	return expenses, nil
}

// GetExpenseByID returns a wrapped pgx.ErrNoRows when the expense does not exist.
func (r *ExpenseRepository) GetExpenseByID(ctx context.Context, q database.Querier, id int64) (*expense.Expense, error) {
	stmt := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	e, err := scanExpense(q.QueryRow(ctx, stmt, id))
	if err != nil {
		return nil, fmt.Errorf("table:expenses: failed to get expense id=%d: %w", id, err)
	}
	return e, nil
}

// UpdateExpense overwrites every column of the row with e's values.
// Returns a wrapped pgx.ErrNoRows when the row does not exist.
func (r *ExpenseRepository) UpdateExpense(ctx context.Context, q database.Querier, e *expense.Expense) (*expense.Expense, error) {
	stmt := `
		UPDATE expenses
		SET title = $2,
			amount = $3,
			expense_date = $4,
			category_id = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + expenseColumns

	updated, err := scanExpense(q.QueryRow(ctx, stmt,
		e.ID,
		e.Title,
		e.Amount,
		e.ExpenseDate.Time,
		nullableCategoryID(e.CategoryID),
	))
	if err != nil {
		return nil, fmt.Errorf("table:expenses: failed to update expense id=%d: %w", e.ID, err)
	}
	return updated, nil
}

// DeleteExpense reports whether a row was removed.
func (r *ExpenseRepository) DeleteExpense(ctx context.Context, q database.Querier, id int64) (bool, error) {
	tag, err := q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete expense id=%d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ExpenseRepository) CountExpensesByCategory(ctx context.Context, q database.Querier, categoryID int64) (int64, error) {
	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM expenses WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expenses for category id=%d: %w", categoryID, err)
	}
	return count, nil
}

func (r *ExpenseRepository) DeleteExpensesByCategory(ctx context.Context, q database.Querier, categoryID int64) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM expenses WHERE category_id = $1`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expenses for category id=%d: %w", categoryID, err)
	}
	return tag.RowsAffected(), nil
}

// DetachExpensesFromCategory clears the category reference of every expense in it.
func (r *ExpenseRepository) DetachExpensesFromCategory(ctx context.Context, q database.Querier, categoryID int64) (int64, error) {
	stmt := `UPDATE expenses SET category_id = NULL, updated_at = NOW() WHERE category_id = $1`

	tag, err := q.Exec(ctx, stmt, categoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to detach expenses from category id=%d: %w", categoryID, err)
	}
	return tag.RowsAffected(), nil
}
