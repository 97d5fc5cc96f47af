package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/label-lookup/internal/errs"
)

// Validatable is implemented by request payload types that validate themselves.
//
// Validate may return validator.ValidationErrors, CustomValidationErrors,
// or an *errs.HTTPError that is sent to the client unchanged.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a single field issue that tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds path, query, and body data into payload and validates it.
//
// payload must be a pointer.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil)
	}

	err := payload.Validate()
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	msg, fieldErrors := extractValidationError(err)
	return errs.NewBadRequestError(msg, true, nil, fieldErrors)
}

// bindErrorMessage pulls the client-facing message out of an Echo bind error.
func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok {
			return msg
		}
	}
	return "Invalid request"
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, cerr := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: cerr.Field,
				Error: cerr.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed: " + err.Error(), nil
	}

	for _, verr := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: strings.ToLower(verr.Field()),
			Error: fieldErrorMessage(verr),
		})
	}

	return "Validation failed", fieldErrors
}

// fieldErrorMessage renders one validator tag failure.
func fieldErrorMessage(verr validator.FieldError) string {
	switch verr.Tag() {
	case "required":
		return "is required"

	case "min":
		// For strings min/max are lengths, for numbers they are values.
		if verr.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", verr.Param())
		}
		return fmt.Sprintf("must be at least %s", verr.Param())

	case "max":
		if verr.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", verr.Param())
		}
		return fmt.Sprintf("must not exceed %s", verr.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", verr.Param())

	case "slug":
		return "must contain only lowercase letters, digits, and hyphens"

	default:
		field := strings.ToLower(verr.Field())
		if verr.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", field, verr.Tag(), verr.Param())
		}
		return fmt.Sprintf("%s: %s", field, verr.Tag())
	}
}
