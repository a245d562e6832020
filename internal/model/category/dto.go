package category

import (
	"github.com/deppfellow/expense-tracker/internal/validation"
)

// ------------------------------------------------------------

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

func (r *CreateCategoryRequest) Validate() error {
	return validation.Struct(r)
}

// ------------------------------------------------------------

type GetCategoriesRequest struct{}

func (r *GetCategoriesRequest) Validate() error {
	return nil
}

// ------------------------------------------------------------

type GetCategoryByIDRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
}

func (r *GetCategoryByIDRequest) Validate() error {
	return validation.Struct(r)
}

// ------------------------------------------------------------

// UpdateCategoryRequest replaces the name of an existing category.
// The id comes from the path.
type UpdateCategoryRequest struct {
	ID   int64  `param:"id" json:"-" validate:"required,min=1"`
	Name string `json:"name" validate:"required,min=1,max=255"`
}

func (r *UpdateCategoryRequest) Validate() error {
	return validation.Struct(r)
}

// ------------------------------------------------------------

type DeleteCategoryRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
}

func (r *DeleteCategoryRequest) Validate() error {
	return validation.Struct(r)
}
