package handler

import (
	"github.com/deppfellow/expense-tracker/internal/errs"
	"github.com/deppfellow/expense-tracker/internal/model/category"
	"github.com/deppfellow/expense-tracker/internal/server"
	"github.com/deppfellow/expense-tracker/internal/service"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	Handler
	categoryService *service.CategoryService
}

func NewCategoryHandler(s *server.Server, categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		Handler:         NewHandler(s),
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) CreateCategory(c echo.Context, payload *category.CreateCategoryRequest) (*category.Category, error) {
	return h.categoryService.CreateCategory(c.Request().Context(), payload)
}

func (h *CategoryHandler) GetCategories(c echo.Context, payload *category.GetCategoriesRequest) ([]category.Category, error) {
	return h.categoryService.GetCategories(c.Request().Context())
}

// GetCategoryByID is deliberately not served; clients read categories from the list.
func (h *CategoryHandler) GetCategoryByID(c echo.Context, payload *category.GetCategoryByIDRequest) (*category.Category, error) {
	return nil, errs.NewNotImplementedError("Fetching a single category is not supported")
}

func (h *CategoryHandler) UpdateCategory(c echo.Context, payload *category.UpdateCategoryRequest) (*category.Category, error) {
	return h.categoryService.UpdateCategory(c.Request().Context(), payload)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context, payload *category.DeleteCategoryRequest) error {
	return h.categoryService.DeleteCategory(c.Request().Context(), payload.ID)
}
