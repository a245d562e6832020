package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
	"github.com/deppfellow/expense-tracker/internal/testutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

func newExpense(title, amount string, categoryID int64) *expense.Expense {
	return &expense.Expense{
		Title:       title,
		Amount:      decimal.RequireFromString(amount),
		ExpenseDate: model.NewDate(2024, time.January, 1),
		CategoryID:  categoryID,
	}
}

func TestExpenseServiceSaveInsertsNew(t *testing.T) {
	store := testutil.NewStore()
	svc := NewExpenseService(store, store, store)
	food := store.SeedCategory("Food")

	saved, err := svc.SaveExpense(context.Background(), newExpense("Lunch", "12.50", food.ID))
	if err != nil {
		t.Fatalf("SaveExpense() error = %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("SaveExpense() must assign an id")
	}
	if saved.Category == nil || saved.Category.ID != food.ID || saved.Category.Name != "Food" {
		t.Errorf("category = %+v, want the stored Food category", saved.Category)
	}
}

func TestExpenseServiceSaveUnknownCategory(t *testing.T) {
	store := testutil.NewStore()
	svc := NewExpenseService(store, store, store)

	_, err := svc.SaveExpense(context.Background(), newExpense("Lunch", "12.50", 77))

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		t.Fatalf("SaveExpense() error = %v, want foreign key violation", err)
	}
	if store.ExpenseCount() != 0 {
		t.Error("no expense may be stored for an unknown category")
	}
}

func TestExpenseServiceSaveOverwritesByID(t *testing.T) {
	store := testutil.NewStore()
	svc := NewExpenseService(store, store, store)
	ctx := context.Background()
	food := store.SeedCategory("Food")
	travel := store.SeedCategory("Travel")

	original, err := svc.SaveExpense(ctx, newExpense("Lunch", "12.50", food.ID))
	if err != nil {
		t.Fatalf("SaveExpense() error = %v", err)
	}

	replacement := newExpense("Flight", "300", travel.ID)
	replacement.ID = original.ID

	saved, err := svc.SaveExpense(ctx, replacement)
	if err != nil {
		t.Fatalf("SaveExpense() error = %v", err)
	}
	if saved.ID != original.ID || saved.Title != "Flight" || saved.Category.Name != "Travel" {
		t.Errorf("SaveExpense() = %+v", saved)
	}
	if store.ExpenseCount() != 1 {
		t.Errorf("expense count = %d, want 1", store.ExpenseCount())
	}

	missing := newExpense("Ghost", "1", food.ID)
	missing.ID = 999
	_, err = svc.SaveExpense(ctx, missing)
	requireHTTPError(t, err, http.StatusNotFound, "EXPENSE_NOT_FOUND")
}

func TestExpenseServiceGetExpensesAttachesCategories(t *testing.T) {
	store := testutil.NewStore()
	svc := NewExpenseService(store, store, store)
	food := store.SeedCategory("Food")
	travel := store.SeedCategory("Travel")
	seedExpense(t, store, food.ID, "Lunch")
	seedExpense(t, store, travel.ID, "Train")
	seedExpense(t, store, food.ID, "Dinner")

	all, err := svc.GetExpenses(context.Background())
	if err != nil {
		t.Fatalf("GetExpenses() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("GetExpenses() returned %d expenses, want 3", len(all))
	}
	for _, e := range all {
		if e.Category == nil || e.Category.ID != e.CategoryID {
			t.Errorf("expense %d has category %+v, want id %d", e.ID, e.Category, e.CategoryID)
		}
	}
}

func TestExpenseServiceGetExpensesEmpty(t *testing.T) {
	store := testutil.NewStore()
	svc := NewExpenseService(store, store, store)

	all, err := svc.GetExpenses(context.Background())
	if err != nil {
		t.Fatalf("GetExpenses() error = %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Errorf("GetExpenses() = %#v, want empty non-nil slice", all)
	}
}

func TestExpenseServiceGetByIDNotFound(t *testing.T) {
	svc := NewExpenseService(testutil.NewStore(), testutil.NewStore(), testutil.NewStore())

	_, err := svc.GetExpenseByID(context.Background(), 5)
	requireHTTPError(t, err, http.StatusNotFound, "EXPENSE_NOT_FOUND")
}

func TestExpenseServiceUpdatePartial(t *testing.T) {
	store := testutil.NewStore()
	svc := NewExpenseService(store, store, store)
	ctx := context.Background()
	food := store.SeedCategory("Food")
	lunch := seedExpense(t, store, food.ID, "Lunch")

	amount := decimal.RequireFromString("20.00")
	updated, err := svc.UpdateExpense(ctx, &expense.UpdateExpenseRequest{ID: lunch.ID, Amount: &amount})
	if err != nil {
		t.Fatalf("UpdateExpense() error = %v", err)
	}

	if !updated.Amount.Equal(amount) {
		t.Errorf("amount = %s, want 20", updated.Amount)
	}
	if updated.Title != "Lunch" {
		t.Errorf("title = %q, want unchanged Lunch", updated.Title)
	}
	if !updated.ExpenseDate.Equal(lunch.ExpenseDate.Time) {
		t.Errorf("expense date = %s, want unchanged %s", updated.ExpenseDate, lunch.ExpenseDate)
	}
	if updated.Category == nil || updated.Category.ID != food.ID {
		t.Errorf("category = %+v, want unchanged Food", updated.Category)
	}
}

func TestExpenseServiceUpdateMovesCategory(t *testing.T) {
	store := testutil.NewStore()
	svc := NewExpenseService(store, store, store)
	food := store.SeedCategory("Food")
	travel := store.SeedCategory("Travel")
	lunch := seedExpense(t, store, food.ID, "Lunch")

	updated, err := svc.UpdateExpense(context.Background(), &expense.UpdateExpenseRequest{
		ID:       lunch.ID,
		Category: &expense.CategoryRef{ID: travel.ID},
	})
	if err != nil {
		t.Fatalf("UpdateExpense() error = %v", err)
	}
	if updated.CategoryID != travel.ID || updated.Category.Name != "Travel" {
		t.Errorf("UpdateExpense() = %+v", updated)
	}
}

func TestExpenseServiceUpdateNotFound(t *testing.T) {
	store := testutil.NewStore()
	svc := NewExpenseService(store, store, store)

	title := "Anything"
	_, err := svc.UpdateExpense(context.Background(), &expense.UpdateExpenseRequest{ID: 3, Title: &title})
	requireHTTPError(t, err, http.StatusNotFound, "EXPENSE_NOT_FOUND")
}

func TestExpenseServiceDelete(t *testing.T) {
	store := testutil.NewStore()
	svc := NewExpenseService(store, store, store)
	ctx := context.Background()
	food := store.SeedCategory("Food")
	lunch := seedExpense(t, store, food.ID, "Lunch")

	if err := svc.DeleteExpense(ctx, lunch.ID); err != nil {
		t.Fatalf("DeleteExpense() error = %v", err)
	}
	if store.ExpenseCount() != 0 {
		t.Errorf("expense count = %d, want 0", store.ExpenseCount())
	}

	err := svc.DeleteExpense(ctx, lunch.ID)
	requireHTTPError(t, err, http.StatusNotFound, "EXPENSE_NOT_FOUND")
}
