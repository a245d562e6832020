// Package testutil provides an in-memory store for service and HTTP tests.
//
// Store implements the category and expense repositories plus the
// transaction boundary. It reproduces the database behavior the services
// rely on: pgx.ErrNoRows for missing rows, foreign key violations as
// *pgconn.PgError, and rollback of every change made inside a failed
// transaction.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/expense-tracker/internal/database"
	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store is safe for concurrent use; transactions are serialized.
// Repository methods must be called from inside WithTx.
type Store struct {
	mu sync.Mutex

	categories     map[int64]category.Category
	expenses       map[int64]expense.Expense
	nextCategoryID int64
	nextExpenseID  int64

	// FailOn names a repository method that returns FailErr instead of running.
	FailOn  string
	FailErr error
}

func NewStore() *Store {
	return &Store{
		categories:     make(map[int64]category.Category),
		expenses:       make(map[int64]expense.Expense),
		nextCategoryID: 1,
		nextExpenseID:  1,
	}
}

type snapshot struct {
	categories     map[int64]category.Category
	expenses       map[int64]expense.Expense
	nextCategoryID int64
	nextExpenseID  int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		categories:     make(map[int64]category.Category, len(s.categories)),
		expenses:       make(map[int64]expense.Expense, len(s.expenses)),
		nextCategoryID: s.nextCategoryID,
		nextExpenseID:  s.nextExpenseID,
	}
	for id, c := range s.categories {
		snap.categories[id] = c
	}
	for id, e := range s.expenses {
		snap.expenses[id] = e
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.categories = snap.categories
	s.expenses = snap.expenses
	s.nextCategoryID = snap.nextCategoryID
	s.nextExpenseID = snap.nextExpenseID
}

// WithTx runs fn and rolls every change back when it returns an error.
func (s *Store) WithTx(ctx context.Context, fn func(q database.Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(nil); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) fail(method string) error {
	if s.FailOn == method && s.FailErr != nil {
		return s.FailErr
	}
	return nil
}

func foreignKeyViolation(categoryID int64) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        `insert or update on table "expenses" violates foreign key constraint "expenses_category_id_fkey"`,
		Detail:         fmt.Sprintf(`Key (category_id)=(%d) is not present in table "categories".`, categoryID),
		TableName:      "expenses",
		ConstraintName: "expenses_category_id_fkey",
	}
}

func noRows(table string, id int64) error {
	return fmt.Errorf("table:%s: id=%d: %w", table, id, pgx.ErrNoRows)
}

// SeedCategory inserts a category outside of any transaction.
func (s *Store) SeedCategory(name string) category.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, _ := s.CreateCategory(context.Background(), nil, name)
	return *c
}

// SeedExpense inserts an expense outside of any transaction.
func (s *Store) SeedExpense(e expense.Expense) (expense.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.CreateExpense(context.Background(), nil, &e)
	if err != nil {
		return expense.Expense{}, err
	}
	return *created, nil
}

// ExpenseCount reports how many expenses are stored.
func (s *Store) ExpenseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expenses)
}

// ------------------------------------------------------------ categories

func (s *Store) CreateCategory(ctx context.Context, q database.Querier, name string) (*category.Category, error) {
	if err := s.fail("CreateCategory"); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := category.Category{
		Base: model.Base{ID: s.nextCategoryID, CreatedAt: now, UpdatedAt: now},
		Name: name,
	}
	s.categories[c.ID] = c
	s.nextCategoryID++
	return &c, nil
}

func (s *Store) GetCategories(ctx context.Context, q database.Querier) ([]category.Category, error) {
	if err := s.fail("GetCategories"); err != nil {
		return nil, err
	}

	out := make([]category.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetCategoryByID(ctx context.Context, q database.Querier, id int64) (*category.Category, error) {
	if err := s.fail("GetCategoryByID"); err != nil {
		return nil, err
	}

	c, ok := s.categories[id]
	if !ok {
		return nil, noRows("categories", id)
	}
	return &c, nil
}

func (s *Store) GetCategoriesByIDs(ctx context.Context, q database.Querier, ids []int64) (map[int64]*category.Category, error) {
	if err := s.fail("GetCategoriesByIDs"); err != nil {
		return nil, err
	}

	out := make(map[int64]*category.Category, len(ids))
	for _, id := range ids {
		if c, ok := s.categories[id]; ok {
			out[id] = &c
		}
	}
	return out, nil
}

func (s *Store) UpdateCategory(ctx context.Context, q database.Querier, c *category.Category) (*category.Category, error) {
	if err := s.fail("UpdateCategory"); err != nil {
		return nil, err
	}

	existing, ok := s.categories[c.ID]
	if !ok {
		return nil, noRows("categories", c.ID)
	}
	existing.Name = c.Name
	existing.UpdatedAt = time.Now().UTC()
	s.categories[c.ID] = existing
	return &existing, nil
}

// DeleteCategory fails with a foreign key violation while expenses still reference the row.
func (s *Store) DeleteCategory(ctx context.Context, q database.Querier, id int64) (bool, error) {
	if err := s.fail("DeleteCategory"); err != nil {
		return false, err
	}

	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	for _, e := range s.expenses {
		if e.CategoryID == id {
			return false, &pgconn.PgError{
				Severity:       "ERROR",
				Code:           "23503",
				TableName:      "expenses",
				ConstraintName: "expenses_category_id_fkey",
			}
		}
	}
	delete(s.categories, id)
	return true, nil
}

// ------------------------------------------------------------ expenses

func (s *Store) CreateExpense(ctx context.Context, q database.Querier, e *expense.Expense) (*expense.Expense, error) {
	if err := s.fail("CreateExpense"); err != nil {
		return nil, err
	}

	if _, ok := s.categories[e.CategoryID]; e.CategoryID != 0 && !ok {
		return nil, foreignKeyViolation(e.CategoryID)
	}

	now := time.Now().UTC()
	stored := *e
	stored.Category = nil
	stored.ID = s.nextExpenseID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.expenses[stored.ID] = stored
	s.nextExpenseID++
	return &stored, nil
}

func (s *Store) GetExpenses(ctx context.Context, q database.Querier) ([]expense.Expense, error) {
	if err := s.fail("GetExpenses"); err != nil {
		return nil, err
	}

	out := make([]expense.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetExpenseByID(ctx context.Context, q database.Querier, id int64) (*expense.Expense, error) {
	if err := s.fail("GetExpenseByID"); err != nil {
		return nil, err
	}

	e, ok := s.expenses[id]
	if !ok {
		return nil, noRows("expenses", id)
	}
	return &e, nil
}

func (s *Store) UpdateExpense(ctx context.Context, q database.Querier, e *expense.Expense) (*expense.Expense, error) {
	if err := s.fail("UpdateExpense"); err != nil {
		return nil, err
	}

	existing, ok := s.expenses[e.ID]
	if !ok {
		return nil, noRows("expenses", e.ID)
	}
	if _, ok := s.categories[e.CategoryID]; e.CategoryID != 0 && !ok {
		return nil, foreignKeyViolation(e.CategoryID)
	}

	stored := *e
	stored.Category = nil
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	s.expenses[e.ID] = stored
	return &stored, nil
}

func (s *Store) DeleteExpense(ctx context.Context, q database.Querier, id int64) (bool, error) {
	if err := s.fail("DeleteExpense"); err != nil {
		return false, err
	}

	if _, ok := s.expenses[id]; !ok {
		return false, nil
	}
	delete(s.expenses, id)
	return true, nil
}

func (s *Store) CountExpensesByCategory(ctx context.Context, q database.Querier, categoryID int64) (int64, error) {
	if err := s.fail("CountExpensesByCategory"); err != nil {
		return 0, err
	}

	var count int64
	for _, e := range s.expenses {
		if e.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (s *Store) DeleteExpensesByCategory(ctx context.Context, q database.Querier, categoryID int64) (int64, error) {
	if err := s.fail("DeleteExpensesByCategory"); err != nil {
		return 0, err
	}

	var removed int64
	for id, e := range s.expenses {
		if e.CategoryID == categoryID {
			delete(s.expenses, id)
			removed++
		}
	}
	return removed, nil
}

func (s *Store) DetachExpensesFromCategory(ctx context.Context, q database.Querier, categoryID int64) (int64, error) {
	if err := s.fail("DetachExpensesFromCategory"); err != nil {
		return 0, err
	}

	var detached int64
	for id, e := range s.expenses {
		if e.CategoryID == categoryID {
			e.CategoryID = 0
			e.UpdatedAt = time.Now().UTC()
			s.expenses[id] = e
			detached++
		}
	}
	return detached, nil
}
