package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type taggedMap struct {
	Values map[string]int `json:"values" validate:"required,dive,keys,upper,endkeys,min=1,max=5"`
}

func upperRule() Rule {
	return Rule{Tag: "upper", Fn: func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && strings.ToUpper(s) == s
	}}
}

func TestStructUsesJSONNames(t *testing.T) {
	v := MustNew()
	err := v.Struct(loginRequest{Email: "not-an-email"})
	require.Error(t, err)

	fields := FieldErrors(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "email", fields[0].Field)
	assert.Equal(t, "email", fields[0].Rule)
	assert.Equal(t, "password", fields[1].Field)
	assert.Equal(t, "required", fields[1].Rule)
}

func TestCustomRuleOnMapKeys(t *testing.T) {
	v := MustNew(upperRule())

	assert.NoError(t, v.Struct(taggedMap{Values: map[string]int{"B1": 3}}))

	err := v.Struct(taggedMap{Values: map[string]int{"b1": 3}})
	require.Error(t, err)
	assert.Equal(t, "upper", FieldErrors(err)[0].Rule)

	err = v.Struct(taggedMap{Values: map[string]int{"B1": 6}})
	require.Error(t, err)
	assert.Equal(t, "max", FieldErrors(err)[0].Rule)
	assert.Equal(t, "5", FieldErrors(err)[0].Param)
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("boom")))
	assert.Nil(t, FieldErrors(nil))
}

func TestNewRejectsEmptyTag(t *testing.T) {
	_, err := New(Rule{Tag: "", Fn: func(validator.FieldLevel) bool { return true }})
	assert.Error(t, err)
}
