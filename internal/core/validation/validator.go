// Package validation turns raw caller input into normalized records-to-be.
// Every routine collects all violated constraints before failing, so a
// caller sees the full list in one *domain.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/studytrack/tracker/internal/core/domain"
)

// Validator holds the compiled struct-tag rules. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// reasons accumulates constraint violations for one input.
type reasons []string

func (r *reasons) add(format string, args ...any) {
	*r = append(*r, fmt.Sprintf(format, args...))
}

func (r reasons) err() error {
	if len(r) == 0 {
		return nil
	}
	return domain.NewValidationError(r...)
}

// structRules runs the tag rules of schema and records every failure.
func (v *Validator) structRules(schema any, r *reasons) {
	err := v.v.Struct(schema)
	if err == nil {
		return
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		r.add("%v", err)
		return
	}
	for _, fe := range ve {
		*r = append(*r, fieldError(fe.Field(), fe))
	}
}

// fieldRule checks a single supplied value against tag.
func (v *Validator) fieldRule(field string, value any, tag string, r *reasons) {
	err := v.v.Var(value, tag)
	if err == nil {
		return
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		r.add("%s: %v", field, err)
		return
	}
	for _, fe := range ve {
		*r = append(*r, fieldError(field, fe))
	}
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
