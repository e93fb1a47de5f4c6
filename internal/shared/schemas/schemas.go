// Package schemas validates JSON documents against the embedded questionnaire schemas.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	//go:embed answers.schema.json
	answersSchema string
	//go:embed scores.schema.json
	scoresSchema string
)

// Name identifies an embedded schema.
type Name string

const (
	Answers Name = "answers"
	Scores  Name = "scores"
)

// ValidationError lists every schema violation in a document.
type ValidationError struct {
	Schema Name
	Errors []FieldError
}

// FieldError is a single violation at a JSON path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s validation failed:", ve.Schema)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Validate checks a raw JSON document against the named schema.
func Validate(name Name, document []byte) error {
	var schema string
	switch name {
	case Answers:
		schema = answersSchema
	case Scores:
		schema = scoresSchema
	default:
		return fmt.Errorf("unknown schema %q", name)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
