package catalog

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/intercel/backend/internal/domain/shared"
)

var (
	schemaOnce sync.Once
	schema     *validator.Validate
)

// requestSchema returns the validator used at the service boundary.
// It reads the same `binding` tags gin uses and reports JSON field names.
func requestSchema() *validator.Validate {
	schemaOnce.Do(func() {
		schema = validator.New(validator.WithRequiredStructEnabled())
		schema.SetTagName("binding")
		schema.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	})
	return schema
}

// validateRequest checks req against its schema and converts failures into a ValidationError
func validateRequest(req any) error {
	err := requestSchema().Struct(req)
	if err == nil {
		return nil
	}
	if verr, ok := TranslateValidationError(err); ok {
		return verr
	}
	return shared.NewInternalError(err)
}

// TranslateValidationError converts validator failures into a ValidationError
// carrying one detail per failed field. It reports false for any other error.
func TranslateValidationError(err error) (*shared.DomainError, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	details := make([]shared.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, shared.FieldError{
			Field:   fieldPath(fe),
			Message: ValidationMessage(fe),
		})
	}
	return shared.NewValidationError(details...), true
}

// fieldPath drops the root struct name, e.g. "ReorderRequest.orders[1].order" becomes "orders[1].order"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// ValidationMessage returns a human-readable message for one failed rule
func ValidationMessage(fe validator.FieldError) string {
	name := fe.Field()
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min", "gte":
		if isText {
			return name + " must be at least " + fe.Param() + " characters"
		}
		if fe.Param() == "0" {
			return name + " must be a non-negative integer"
		}
		return name + " must be at least " + fe.Param()
	case "max", "lte":
		if isText {
			return name + " cannot exceed " + fe.Param() + " characters"
		}
		return name + " must be at most " + fe.Param()
	case "oneof":
		return name + " must be one of: " + fe.Param()
	case "uuid":
		return name + " must be a valid UUID"
	default:
		return name + " is invalid"
	}
}
