package recorder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})
	return v
}

// ValidationError lists every problem of a rejected submission.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, "Please fill in the missing fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, strings.Join(e.Invalid, "; "))
	}
	return strings.Join(parts, ". ")
}

func (e *ValidationError) empty() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}

func (e *ValidationError) invalid(format string, args ...interface{}) {
	e.Invalid = append(e.Invalid, fmt.Sprintf(format, args...))
}

// check runs the struct tags of form and sorts the failures into missing
// and invalid fields, keeping declaration order.
func check(form interface{}) *ValidationError {
	result := &ValidationError{}
	err := validate.Struct(form)
	if err == nil {
		return result
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		result.Invalid = append(result.Invalid, err.Error())
		return result
	}
	for _, fieldError := range fieldErrors {
		switch fieldError.Tag() {
		case "required", "min":
			result.Missing = append(result.Missing, fieldError.Field())
		case "max":
			result.invalid("%s: select at most %s", fieldError.Field(), fieldError.Param())
		default:
			result.invalid("%s is invalid", fieldError.Field())
		}
	}
	return result
}

// AsValidationError unwraps a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var validationError *ValidationError
	if errors.As(err, &validationError) {
		return validationError, true
	}
	return nil, false
}
