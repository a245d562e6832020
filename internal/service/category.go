package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/expense-tracker/internal/config"
	"github.com/deppfellow/expense-tracker/internal/database"
	"github.com/deppfellow/expense-tracker/internal/errs"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/deppfellow/expense-tracker/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

type CategoryService struct {
	tx         Transactor
	categories CategoryRepository
	expenses   ExpenseRepository
	cfg        config.CategoryConfig
}

func NewCategoryService(tx Transactor, categories CategoryRepository, expenses ExpenseRepository, cfg config.CategoryConfig) *CategoryService {
	if cfg.DeletePolicy == "" {
		cfg.DeletePolicy = config.DeletePolicyRestrict
	}

	return &CategoryService{
		tx:         tx,
		categories: categories,
		expenses:   expenses,
		cfg:        cfg,
	}
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *category.CreateCategoryRequest) (*category.Category, error) {
	var created *category.Category

	err := s.tx.WithTx(ctx, func(q database.Querier) error {
		c, err := s.categories.CreateCategory(ctx, q, req.Name)
		if err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("category_id", created.ID).
		Msg("category created")

	return created, nil
}

func (s *CategoryService) GetCategories(ctx context.Context) ([]category.Category, error) {
	var categories []category.Category

	err := s.tx.WithTx(ctx, func(q database.Querier) error {
		var err error
		categories, err = s.categories.GetCategories(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// GetCategoryByID returns a 404 *errs.HTTPError when the category does not exist.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id int64) (*category.Category, error) {
	var found *category.Category

	err := s.tx.WithTx(ctx, func(q database.Querier) error {
		c, err := s.categories.GetCategoryByID(ctx, q, id)
		if err != nil {
			return categoryNotFound(err)
		}
		found = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

// UpdateCategory overwrites only the name of an existing category.
func (s *CategoryService) UpdateCategory(ctx context.Context, req *category.UpdateCategoryRequest) (*category.Category, error) {
	var updated *category.Category

	err := s.tx.WithTx(ctx, func(q database.Querier) error {
		existing, err := s.categories.GetCategoryByID(ctx, q, req.ID)
		if err != nil {
			return categoryNotFound(err)
		}

		existing.Name = req.Name

		updated, err = s.categories.UpdateCategory(ctx, q, existing)
		return categoryNotFound(err)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteCategory removes a category, applying the configured policy to
// expenses that still reference it.
//
// Deleting an unknown id is a no-op unless StrictDelete is set.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	logger := zerolog.Ctx(ctx).With().
		Int64("category_id", id).
		Str("delete_policy", string(s.cfg.DeletePolicy)).
		Logger()

	return s.tx.WithTx(ctx, func(q database.Querier) error {
		count, err := s.expenses.CountExpensesByCategory(ctx, q, id)
		if err != nil {
			return err
		}

		if count > 0 {
			switch s.cfg.DeletePolicy {
			case config.DeletePolicyCascade:
				removed, err := s.expenses.DeleteExpensesByCategory(ctx, q, id)
				if err != nil {
					return err
				}
				logger.Info().Int64("expenses_deleted", removed).Msg("deleted expenses of category")

			case config.DeletePolicyNullify:
				detached, err := s.expenses.DetachExpensesFromCategory(ctx, q, id)
				if err != nil {
					return err
				}
				logger.Info().Int64("expenses_detached", detached).Msg("detached expenses from category")

			default:
				return errs.NewConflictError(
					fmt.Sprintf("Category is used by %d expense(s)", count),
					true,
					&codeCategoryInUse,
				)
			}
		}

		deleted, err := s.categories.DeleteCategory(ctx, q, id)
		if err != nil {
			// An expense referencing the category was committed after the count.
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && sqlerr.MapCode(pgErr.Code) == sqlerr.ForeignKeyViolation {
				return errs.NewConflictError("Category is used by expenses", true, &codeCategoryInUse)
			}
			return err
		}

		if !deleted {
			if s.cfg.StrictDelete {
				return errs.NewNotFoundError("Category not found", true, &codeCategoryNotFound)
			}
			logger.Debug().Msg("category to delete does not exist")
			return nil
		}

		logger.Info().Msg("category deleted")
		return nil
	})
}
