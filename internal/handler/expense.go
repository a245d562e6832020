package handler

import (
	"github.com/deppfellow/expense-tracker/internal/model/expense"
	"github.com/deppfellow/expense-tracker/internal/server"
	"github.com/deppfellow/expense-tracker/internal/service"
	"github.com/labstack/echo/v4"
)

type ExpenseHandler struct {
	Handler
	expenseService *service.ExpenseService
}

func NewExpenseHandler(s *server.Server, expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		Handler:        NewHandler(s),
		expenseService: expenseService,
	}
}

func (h *ExpenseHandler) CreateExpense(c echo.Context, payload *expense.CreateExpenseRequest) (*expense.Expense, error) {
	return h.expenseService.SaveExpense(c.Request().Context(), payload.ToExpense())
}

func (h *ExpenseHandler) GetExpenses(c echo.Context, payload *expense.GetExpensesRequest) ([]expense.Expense, error) {
	return h.expenseService.GetExpenses(c.Request().Context())
}

func (h *ExpenseHandler) GetExpenseByID(c echo.Context, payload *expense.GetExpenseByIDRequest) (*expense.Expense, error) {
	return h.expenseService.GetExpenseByID(c.Request().Context(), payload.ID)
}

// SaveExpense fully replaces the expense named by the path id.
func (h *ExpenseHandler) SaveExpense(c echo.Context, payload *expense.SaveExpenseRequest) (*expense.Expense, error) {
	return h.expenseService.SaveExpense(c.Request().Context(), payload.ToExpense())
}

// UpdateExpense applies only the fields present in the body.
func (h *ExpenseHandler) UpdateExpense(c echo.Context, payload *expense.UpdateExpenseRequest) (*expense.Expense, error) {
	return h.expenseService.UpdateExpense(c.Request().Context(), payload)
}

func (h *ExpenseHandler) DeleteExpense(c echo.Context, payload *expense.DeleteExpenseRequest) error {
	return h.expenseService.DeleteExpense(c.Request().Context(), payload.ID)
}
