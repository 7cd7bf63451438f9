package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound is returned when an id does not match any record.
	ErrNotFound = errors.New("catalog: not found")
	// ErrInvalid matches every draft validation failure.
	ErrInvalid = errors.New("catalog: invalid input")
)

// FieldErrors lists the draft fields that failed validation.
type FieldErrors struct {
	Fields map[string]string
}

func (e *FieldErrors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range sortedKeys(e.Fields) {
		parts = append(parts, fmt.Sprintf("%s %s", field, e.Fields[field]))
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

func (e *FieldErrors) Is(target error) bool {
	return target == ErrInvalid
}

func fieldErrors(errs validator.ValidationErrors) *FieldErrors {
	out := &FieldErrors{Fields: make(map[string]string, len(errs))}
	for _, fe := range errs {
		out.Fields[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "email":
		return "must be a valid email"
	case "datetime":
		return "must be a date in " + fe.Param() + " form"
	default:
		return "is invalid"
	}
}
