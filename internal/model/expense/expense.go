// Package expense holds the Expense entity and its request payloads.
package expense

import (
	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/shopspring/decimal"
)

// Expense is a single spending record.
//
// CategoryID is the stored reference; Category is filled by an explicit
// fetch in the service layer and is nil when the expense was detached
// from a deleted category.
type Expense struct {
	model.Base
	Title       string             `json:"title" db:"title"`
	Amount      decimal.Decimal    `json:"amount" db:"amount"`
	ExpenseDate model.Date         `json:"expenseDate" db:"expense_date"`
	CategoryID  int64              `json:"categoryId,omitempty" db:"category_id"`
	Category    *category.Category `json:"category"`
}
