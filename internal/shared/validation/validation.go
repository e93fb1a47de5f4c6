// Package validation wraps go-playground/validator with the JSON field
// naming and error shape used by the HTTP layer.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule is a custom validation tag.
type Rule struct {
	Tag string
	Fn  validator.Func
}

// FieldError describes one failed constraint.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Validator validates request structs.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator reporting json field names and registering rules.
func New(rules ...Rule) (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	for _, r := range rules {
		if err := v.RegisterValidation(r.Tag, r.Fn); err != nil {
			return nil, err
		}
	}
	return &Validator{v: v}, nil
}

// MustNew is New for package-level validators with static rules.
func MustNew(rules ...Rule) *Validator {
	v, err := New(rules...)
	if err != nil {
		panic(err)
	}
	return v
}

// Struct validates s against its validate tags.
func (v *Validator) Struct(s any) error {
	return v.v.Struct(s)
}

// FieldErrors flattens a validator error. Non-validation errors yield nil.
func FieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		out = append(out, FieldError{
			Field: field,
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
