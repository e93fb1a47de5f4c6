package surveys

import (
	"strconv"

	"github.com/go-playground/validator/v10"

	"menshealth-backend/internal/shared/validation"
	"menshealth-backend/internal/surveys/scoring"
)

var validate = validation.MustNew(validation.Rule{Tag: "answerkey", Fn: validAnswerKey})

// validAnswerKey accepts "<section letter><1-based question index>" within the
// section's question count, e.g. "B1".."B7".
func validAnswerKey(fl validator.FieldLevel) bool {
	return ValidAnswerKey(fl.Field().String())
}

// ValidAnswerKey reports whether key names an existing question.
func ValidAnswerKey(key string) bool {
	if len(key) < 2 {
		return false
	}
	section, ok := scoring.Lookup(scoring.SectionKey(key[:1]))
	if !ok {
		return false
	}
	if key[1] == '0' {
		return false
	}
	for i := 1; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return false
		}
	}
	idx, err := strconv.Atoi(key[1:])
	if err != nil {
		return false
	}
	return idx >= 1 && idx <= section.QuestionCount
}
