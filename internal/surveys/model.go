package surveys

import (
	"time"

	"menshealth-backend/internal/patients"
	"menshealth-backend/internal/surveys/recommendations"
	"menshealth-backend/internal/surveys/scoring"
)

// Survey is one completed questionnaire with its computed scores.
type Survey struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patientId"`
	Language    string            `json:"language"`
	Answers     scoring.AnswerMap `json:"answers"`
	Scores      scoring.ScoreMap  `json:"scores"`
	TotalScore  int               `json:"totalScore"`
	Notes       string            `json:"notes,omitempty"`
	CreatedBy   string            `json:"createdBy,omitempty"`
	CompletedAt time.Time         `json:"completedAt"`
}

// Detail pairs a survey with its patient. Patient is nil when the record is gone.
type Detail struct {
	Survey  Survey            `json:"survey"`
	Patient *patients.Patient `json:"patient"`
}

// SubmitInput is a questionnaire submission.
type SubmitInput struct {
	PatientID string         `json:"patientId" validate:"required"`
	Language  string         `json:"language" validate:"omitempty,oneof=de en"`
	Answers   map[string]int `json:"answers" validate:"required,min=1,dive,keys,answerkey,endkeys,min=1,max=5"`
	Notes     string         `json:"notes" validate:"max=5000"`
}

// PreviewInput scores answers without storing them.
type PreviewInput struct {
	Answers map[string]int `json:"answers" validate:"required,min=1,dive,keys,answerkey,endkeys,min=1,max=5"`
}

// Preview is the unsaved evaluation of a set of answers.
type Preview struct {
	Scores          scoring.ScoreMap                 `json:"scores"`
	TotalScore      int                              `json:"totalScore"`
	MaxTotal        int                              `json:"maxTotal"`
	Recommendations []recommendations.Recommendation `json:"recommendations"`
}

// TrendPoint is one survey on a patient's timeline.
type TrendPoint struct {
	SurveyID    string                         `json:"surveyId"`
	CompletedAt time.Time                      `json:"completedAt"`
	TotalScore  int                            `json:"totalScore"`
	MaxTotal    int                            `json:"maxTotal"`
	Sections    map[scoring.SectionKey]float64 `json:"sections"`
}

// ListQuery filters and pages survey listings.
type ListQuery struct {
	PatientID string
	Limit     int
	Offset    int
}

const (
	DefaultLimit    = 50
	MaxLimit        = 100
	DefaultLanguage = "de"
)

// Normalize clamps paging into the accepted range.
func (q ListQuery) Normalize() ListQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}
