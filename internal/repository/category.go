package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/expense-tracker/internal/database"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/jackc/pgx/v5"
)

const categoryColumns = `id, name, created_at, updated_at`

type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

func scanCategory(row pgx.Row) (*category.Category, error) {
	var c category.Category
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCategories(rows pgx.Rows) ([]category.Category, error) {
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, q database.Querier, name string) (*category.Category, error) {
	stmt := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING ` + categoryColumns

	c, err := scanCategory(q.QueryRow(ctx, stmt, name))
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) GetCategories(ctx context.Context, q database.Querier) ([]category.Category, error) {
	stmt := `SELECT ` + categoryColumns + ` FROM categories ORDER BY id`

	rows, err := q.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories, err := collectCategories(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to collect categories: %w", err)
	}
	return categories, nil
}

// GetCategoryByID returns a wrapped pgx.ErrNoRows when the category does not exist.
func (r *CategoryRepository) GetCategoryByID(ctx context.Context, q database.Querier, id int64) (*category.Category, error) {
	stmt := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(q.QueryRow(ctx, stmt, id))
	if err != nil {
		return nil, fmt.Errorf("table:categories: failed to get category id=%d: %w", id, err)
	}
	return c, nil
}

// GetCategoriesByIDs loads many categories in one round trip, keyed by id.
// Unknown ids are simply absent from the result.
func (r *CategoryRepository) GetCategoriesByIDs(ctx context.Context, q database.Querier, ids []int64) (map[int64]*category.Category, error) {
	result := make(map[int64]*category.Category, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	stmt := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ANY($1)`

	rows, err := q.Query(ctx, stmt, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories by ids: %w", err)
	}

	categories, err := collectCategories(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to collect categories by ids: %w", err)
	}

	for i := range categories {
		result[categories[i].ID] = &categories[i]
	}
	return result, nil
}

// UpdateCategory overwrites the name; returns a wrapped pgx.ErrNoRows when the row is gone.
func (r *CategoryRepository) UpdateCategory(ctx context.Context, q database.Querier, c *category.Category) (*category.Category, error) {
	stmt := `
		UPDATE categories
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + categoryColumns

	updated, err := scanCategory(q.QueryRow(ctx, stmt, c.ID, c.Name))
	if err != nil {
		return nil, fmt.Errorf("table:categories: failed to update category id=%d: %w", c.ID, err)
	}
	return updated, nil
}

// DeleteCategory reports whether a row was removed.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, q database.Querier, id int64) (bool, error) {
	tag, err := q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete category id=%d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
