package recipe

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes one invalid field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every problem found in a recipe.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "invalid recipe: " + strings.Join(msgs, "; ")
}

// Validate checks a recipe before it is saved as a user recipe.
// It returns a *ValidationError when any field is invalid.
func Validate(r Recipe) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate recipe: %w", err)
	}

	verr := &ValidationError{}
	for _, e := range validationErrors {
		verr.Fields = append(verr.Fields, FieldError{
			Field:   fieldPath(e),
			Message: describe(e),
		})
	}
	sort.SliceStable(verr.Fields, func(i, j int) bool { return verr.Fields[i].Field < verr.Fields[j].Field })
	return verr
}

// fieldPath drops the leading struct name, e.g. "Recipe.Ingredients[0].Name" -> "Ingredients[0].Name".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(e validator.FieldError) string {
	field := fieldPath(e)
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "min":
		return fmt.Sprintf("%s needs at least %s entry", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	case "gt":
		return fmt.Sprintf("%s must be a positive number", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
