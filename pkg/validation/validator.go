package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance; it caches struct metadata
// and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct checks the `validate` tags of v and reports every failing
// field in one error.
func ValidateStruct(v any) error {
	if v == nil {
		return errors.New("validation: nil value")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: field is required", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", field, param))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s: must not exceed %s", field, param))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s]", field, param))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: validation failed (%s)", field, e.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
