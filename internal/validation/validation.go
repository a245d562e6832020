// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or length limits) defined in struct tags
// and extracts validation errors into a format the client can
// understand.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = New()

// New returns a validator that reports fields by their JSON (or path param) name.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			if param := fld.Tag.Get("param"); param != "" {
				return param
			}
			return fld.Name
		case "":
			return fld.Name
		default:
			return name
		}
	})
	return v
}

// Struct validates s against its `validate` tags using the shared validator.
func Struct(s any) error {
	return validate.Struct(s)
}
