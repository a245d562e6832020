package expense

import (
	"github.com/deppfellow/expense-tracker/internal/model"
	"github.com/deppfellow/expense-tracker/internal/validation"
	"github.com/shopspring/decimal"
)

// CategoryRef references an existing category by id: {"id": 1}.
type CategoryRef struct {
	ID int64 `json:"id" validate:"required,min=1"`
}

// MaxAmount is the exclusive upper bound of an amount; the column is NUMERIC(12,2).
var MaxAmount = decimal.New(1, 10)

// validateDetails applies the rules validator tags cannot express.
func validateDetails(amount *decimal.Decimal, date *model.Date) error {
	var errs validation.CustomValidationErrors

	switch {
	case amount == nil:
	case amount.IsNegative():
		errs = append(errs, validation.CustomValidationError{
			Field:   "amount",
			Message: "must not be negative",
		})
	case amount.GreaterThanOrEqual(MaxAmount):
		errs = append(errs, validation.CustomValidationError{
			Field:   "amount",
			Message: "must be less than " + MaxAmount.String(),
		})
	}
	if date != nil && date.IsZero() {
		errs = append(errs, validation.CustomValidationError{
			Field:   "expenseDate",
			Message: "is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ------------------------------------------------------------

type CreateExpenseRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate model.Date      `json:"expenseDate"`
	Category    *CategoryRef    `json:"category" validate:"required"`
}

func (r *CreateExpenseRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	return validateDetails(&r.Amount, &r.ExpenseDate)
}

// ToExpense converts the payload into an unsaved Expense.
func (r *CreateExpenseRequest) ToExpense() *Expense {
	return &Expense{
		Title:       r.Title,
		Amount:      r.Amount,
		ExpenseDate: r.ExpenseDate,
		CategoryID:  r.Category.ID,
	}
}

// ------------------------------------------------------------

// SaveExpenseRequest is a full replacement of the expense addressed by the path id.
type SaveExpenseRequest struct {
	ID          int64           `param:"id" json:"-" validate:"required,min=1"`
	Title       string          `json:"title" validate:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate model.Date      `json:"expenseDate"`
	Category    *CategoryRef    `json:"category" validate:"required"`
}

func (r *SaveExpenseRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	return validateDetails(&r.Amount, &r.ExpenseDate)
}

// ToExpense converts the payload into an Expense carrying the path id.
func (r *SaveExpenseRequest) ToExpense() *Expense {
	return &Expense{
		Base:        model.Base{ID: r.ID},
		Title:       r.Title,
		Amount:      r.Amount,
		ExpenseDate: r.ExpenseDate,
		CategoryID:  r.Category.ID,
	}
}

// ------------------------------------------------------------

// UpdateExpenseRequest is a partial update; nil fields keep their stored value.
type UpdateExpenseRequest struct {
	ID          int64            `param:"id" json:"-" validate:"required,min=1"`
	Title       *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Amount      *decimal.Decimal `json:"amount"`
	ExpenseDate *model.Date      `json:"expenseDate"`
	Category    *CategoryRef     `json:"category"`
}

func (r *UpdateExpenseRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	return validateDetails(r.Amount, r.ExpenseDate)
}

// ------------------------------------------------------------

type GetExpensesRequest struct{}

func (r *GetExpensesRequest) Validate() error {
	return nil
}

// ------------------------------------------------------------

type GetExpenseByIDRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
}

func (r *GetExpenseByIDRequest) Validate() error {
	return validation.Struct(r)
}

// ------------------------------------------------------------

type DeleteExpenseRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
}

func (r *DeleteExpenseRequest) Validate() error {
	return validation.Struct(r)
}
