// Package category holds the Category entity and its request payloads.
package category

import (
	"github.com/deppfellow/expense-tracker/internal/model"
)

// Category groups expenses under a name.
type Category struct {
	model.Base
	Name string `json:"name" db:"name"`
}
