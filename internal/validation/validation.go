package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their JSON name so messages match the request body.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate validates a struct using tags
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field string
	Error string
}

// FormatError formats a validation error into human-readable messages
func FormatError(err error) []ValidationError {
	var validationErrors []ValidationError

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return validationErrors
	}

	for _, e := range errs {
		var message string

		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", e.Field())
		case "email":
			message = "Invalid email format"
		default:
			message = fmt.Sprintf("Invalid value for %s", e.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field: e.Field(),
			Error: message,
		})
	}

	return validationErrors
}
