package router

import (
	"net/http"

	"github.com/deppfellow/expense-tracker/internal/handler"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
	"github.com/labstack/echo/v4"
)

func registerCategoryRoutes(r *echo.Echo, h *handler.Handlers) {
	ch := h.Category
	categories := r.Group("/categories")

	categories.POST("", handler.Handle(
		ch.Handler,
		ch.CreateCategory,
		http.StatusCreated,
		handler.New[category.CreateCategoryRequest](),
	))

	categories.GET("", handler.Handle(
		ch.Handler,
		ch.GetCategories,
		http.StatusOK,
		handler.New[category.GetCategoriesRequest](),
	))

	categories.GET("/:id", handler.Handle(
		ch.Handler,
		ch.GetCategoryByID,
		http.StatusOK,
		handler.New[category.GetCategoryByIDRequest](),
	))

	categories.PUT("/:id", handler.Handle(
		ch.Handler,
		ch.UpdateCategory,
		http.StatusOK,
		handler.New[category.UpdateCategoryRequest](),
	))

	categories.DELETE("/:id", handler.HandleNoContent(
		ch.Handler,
		ch.DeleteCategory,
		http.StatusNoContent,
		handler.New[category.DeleteCategoryRequest](),
	))
}

func registerExpenseRoutes(r *echo.Echo, h *handler.Handlers) {
	eh := h.Expense
	expenses := r.Group("/expenses")

	expenses.POST("", handler.Handle(
		eh.Handler,
		eh.CreateExpense,
		http.StatusCreated,
		handler.New[expense.CreateExpenseRequest](),
	))

	expenses.GET("", handler.Handle(
		eh.Handler,
		eh.GetExpenses,
		http.StatusOK,
		handler.New[expense.GetExpensesRequest](),
	))

	expenses.GET("/:id", handler.Handle(
		eh.Handler,
		eh.GetExpenseByID,
		http.StatusOK,
		handler.New[expense.GetExpenseByIDRequest](),
	))

	expenses.PUT("/:id", handler.Handle(
		eh.Handler,
		eh.SaveExpense,
		http.StatusOK,
		handler.New[expense.SaveExpenseRequest](),
	))

	expenses.PATCH("/:id", handler.Handle(
		eh.Handler,
		eh.UpdateExpense,
		http.StatusOK,
		handler.New[expense.UpdateExpenseRequest](),
	))

	expenses.DELETE("/:id", handler.HandleNoContent(
		eh.Handler,
		eh.DeleteExpense,
		http.StatusNoContent,
		handler.New[expense.DeleteExpenseRequest](),
	))
}
