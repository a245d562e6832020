package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/category"
)

var categoryCols = []string{"id", "name", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool() error = %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		mock.Close()
	})
	return mock
}

func TestCategoryRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository()
	now := time.Now()

	mock.ExpectQuery("INSERT INTO categories").
		WithArgs("Food").
		WillReturnRows(pgxmock.NewRows(categoryCols).AddRow(int64(1), "Food", now, now))

	got, err := repo.CreateCategory(context.Background(), mock, "Food")
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	if got.ID != 1 || got.Name != "Food" {
		t.Errorf("CreateCategory() = %+v", got)
	}
}

func TestCategoryRepositoryGetCategories(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository()
	now := time.Now()

	mock.ExpectQuery("FROM categories ORDER BY id").
		WillReturnRows(pgxmock.NewRows(categoryCols).
			AddRow(int64(1), "Food", now, now).
			AddRow(int64(2), "Travel", now, now))

	got, err := repo.GetCategories(context.Background(), mock)
	if err != nil {
		t.Fatalf("GetCategories() error = %v", err)
	}
	if len(got) != 2 || got[1].Name != "Travel" {
		t.Errorf("GetCategories() = %+v", got)
	}
}

func TestCategoryRepositoryGetCategoriesEmpty(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository()

	mock.ExpectQuery("FROM categories ORDER BY id").
		WillReturnRows(pgxmock.NewRows(categoryCols))

	got, err := repo.GetCategories(context.Background(), mock)
	if err != nil {
		t.Fatalf("GetCategories() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("GetCategories() = %#v, want empty non-nil slice", got)
	}
}

func TestCategoryRepositoryGetByIDNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository()

	mock.ExpectQuery("FROM categories WHERE id").
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetCategoryByID(context.Background(), mock, 42)
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("GetCategoryByID() error = %v, want pgx.ErrNoRows", err)
	}
}

func TestCategoryRepositoryGetByIDs(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository()
	now := time.Now()

	mock.ExpectQuery("WHERE id = ANY").
		WithArgs([]int64{1, 3}).
		WillReturnRows(pgxmock.NewRows(categoryCols).AddRow(int64(3), "Rent", now, now))

	got, err := repo.GetCategoriesByIDs(context.Background(), mock, []int64{1, 3})
	if err != nil {
		t.Fatalf("GetCategoriesByIDs() error = %v", err)
	}
	if len(got) != 1 || got[3] == nil || got[3].Name != "Rent" {
		t.Errorf("GetCategoriesByIDs() = %+v", got)
	}
}

func TestCategoryRepositoryGetByIDsSkipsEmptyInput(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository()

	got, err := repo.GetCategoriesByIDs(context.Background(), mock, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("GetCategoriesByIDs(nil) = %v, %v", got, err)
	}
}

func TestCategoryRepositoryUpdate(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository()
	now := time.Now()

	mock.ExpectQuery("UPDATE categories").
		WithArgs(int64(5), "Groceries").
		WillReturnRows(pgxmock.NewRows(categoryCols).AddRow(int64(5), "Groceries", now, now))

	got, err := repo.UpdateCategory(context.Background(), mock, &category.Category{
		Base: model.Base{ID: 5},
		Name: "Groceries",
	})
	if err != nil {
		t.Fatalf("UpdateCategory() error = %v", err)
	}
	if got.Name != "Groceries" {
		t.Errorf("UpdateCategory() = %+v", got)
	}
}

func TestCategoryRepositoryDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "existing row", affected: 1, want: true},
		{name: "missing row", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			repo := NewCategoryRepository()

			mock.ExpectExec("DELETE FROM categories WHERE id").
				WithArgs(int64(9)).
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			got, err := repo.DeleteCategory(context.Background(), mock, 9)
			if err != nil {
				t.Fatalf("DeleteCategory() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DeleteCategory() = %v, want %v", got, tt.want)
			}
		})
	}
}
