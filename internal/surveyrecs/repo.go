package surveyrecs

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("recommendation not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrSurveyNotFound = errors.New("survey not found")
	ErrInvalidScores  = errors.New("survey scores are not usable")
)

// Repo defines persistence operations for survey recommendations.
type Repo interface {
	// ReplaceForSurvey drops every record of the survey and stores recs in
	// their place atomically.
	ReplaceForSurvey(ctx context.Context, surveyID string, recs []Record) error
	ListBySurvey(ctx context.Context, surveyID string) ([]Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, id string) error
}
