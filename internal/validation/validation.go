// Package validation provides request validation using the validator/v10
// library, converting failures into structured domain validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"catalog-api/internal/model"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for the catalog domain.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove options like omitempty, -
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	// DECIMAL(10,2): up to 10 digits total, 2 decimal places, non-negative.
	if err := v.RegisterValidation("decimal", validDecimal); err != nil {
		panic(fmt.Sprintf("failed to register decimal validation: %v", err))
	}

	return &Validator{v: v}
}

// Validate validates a struct and returns a domain validation error on failure.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// formatError converts validator errors to a model.ValidationError.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	return model.NewValidationError(fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "decimal":
		return "must be a valid decimal with up to 10 digits, 2 decimal places"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	default:
		return "is invalid"
	}
}

// validDecimal reports whether a float fits NUMERIC(10,2): non-negative, at
// most 8 integer digits and at most 2 fractional digits.
func validDecimal(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Float64 && field.Kind() != reflect.Float32 {
		return false
	}

	value := field.Float()
	if value < 0 {
		return false
	}

	text := strconv.FormatFloat(value, 'f', -1, 64)
	whole, frac, _ := strings.Cut(text, ".")
	return len(whole) <= 8 && len(frac) <= 2
}
