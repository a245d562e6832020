package service

import (
	"context"

	"github.com/deppfellow/expense-tracker/internal/database"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
	"github.com/rs/zerolog"
)

type ExpenseService struct {
	tx         Transactor
	categories CategoryRepository
	expenses   ExpenseRepository
}

func NewExpenseService(tx Transactor, categories CategoryRepository, expenses ExpenseRepository) *ExpenseService {
	return &ExpenseService{
		tx:         tx,
		categories: categories,
		expenses:   expenses,
	}
}

// GetExpenses lists all expenses with their categories loaded in one batch.
func (s *ExpenseService) GetExpenses(ctx context.Context) ([]expense.Expense, error) {
	var expenses []expense.Expense

	err := s.tx.WithTx(ctx, func(q database.Querier) error {
		var err error
		expenses, err = s.expenses.GetExpenses(ctx, q)
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(expenses))
		seen := make(map[int64]struct{}, len(expenses))
		for _, e := range expenses {
			if e.CategoryID == 0 {
				continue
			}
			if _, ok := seen[e.CategoryID]; !ok {
				seen[e.CategoryID] = struct{}{}
				ids = append(ids, e.CategoryID)
			}
		}

		categories, err := s.categories.GetCategoriesByIDs(ctx, q, ids)
		if err != nil {
			return err
		}

		for i := range expenses {
			expenses[i].Category = categories[expenses[i].CategoryID]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

func (s *ExpenseService) GetExpenseByID(ctx context.Context, id int64) (*expense.Expense, error) {
	var found *expense.Expense

	err := s.tx.WithTx(ctx, func(q database.Querier) error {
		e, err := s.expenses.GetExpenseByID(ctx, q, id)
		if err != nil {
			return expenseNotFound(err)
		}

		found, err = s.withCategory(ctx, q, e)
		return err
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

// SaveExpense inserts e when it has no id and otherwise overwrites the
// stored row with the same id. An unknown category id is left to the
// foreign key and surfaces as the driver error.
func (s *ExpenseService) SaveExpense(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
	var saved *expense.Expense

	err := s.tx.WithTx(ctx, func(q database.Querier) error {
		var (
			stored *expense.Expense
			err    error
		)

		if e.ID == 0 {
			stored, err = s.expenses.CreateExpense(ctx, q, e)
		} else {
			stored, err = s.expenses.UpdateExpense(ctx, q, e)
		}
		if err != nil {
			return expenseNotFound(err)
		}

		saved, err = s.withCategory(ctx, q, stored)
		return err
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("expense_id", saved.ID).
		Int64("category_id", saved.CategoryID).
		Msg("expense saved")

	return saved, nil
}

// UpdateExpense merges the non-nil fields of req into the stored expense.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *expense.UpdateExpenseRequest) (*expense.Expense, error) {
	var updated *expense.Expense

	err := s.tx.WithTx(ctx, func(q database.Querier) error {
		existing, err := s.expenses.GetExpenseByID(ctx, q, req.ID)
		if err != nil {
			return expenseNotFound(err)
		}

		if req.Title != nil {
			existing.Title = *req.Title
		}
		if req.Amount != nil {
			existing.Amount = *req.Amount
		}
		if req.ExpenseDate != nil {
			existing.ExpenseDate = *req.ExpenseDate
		}
		if req.Category != nil {
			existing.CategoryID = req.Category.ID
		}

		stored, err := s.expenses.UpdateExpense(ctx, q, existing)
		if err != nil {
			return expenseNotFound(err)
		}

		updated, err = s.withCategory(ctx, q, stored)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteExpense returns a 404 *errs.HTTPError when the expense does not exist.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) error {
	return s.tx.WithTx(ctx, func(q database.Querier) error {
		if _, err := s.expenses.GetExpenseByID(ctx, q, id); err != nil {
			return expenseNotFound(err)
		}

		if _, err := s.expenses.DeleteExpense(ctx, q, id); err != nil {
			return err
		}

		zerolog.Ctx(ctx).Info().Int64("expense_id", id).Msg("expense deleted")
		return nil
	})
}

// withCategory attaches the referenced category. Detached expenses keep a nil Category.
func (s *ExpenseService) withCategory(ctx context.Context, q database.Querier, e *expense.Expense) (*expense.Expense, error) {
	if e.CategoryID == 0 {
		return e, nil
	}

	categories, err := s.categories.GetCategoriesByIDs(ctx, q, []int64{e.CategoryID})
	if err != nil {
		return nil, err
	}

	e.Category = categories[e.CategoryID]
	return e, nil
}
