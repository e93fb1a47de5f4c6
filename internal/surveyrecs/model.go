package surveyrecs

import (
	"time"

	"menshealth-backend/internal/surveys/recommendations"
	"menshealth-backend/internal/surveys/scoring"
)

// Status tracks clinician review of a stored recommendation.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusModified Status = "modified"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusModified:
		return true
	default:
		return false
	}
}

// Record is a generated recommendation persisted against a survey.
type Record struct {
	ID             string                   `json:"id"`
	SurveyID       string                   `json:"surveyId"`
	Section        scoring.SectionKey       `json:"section"`
	SectionName    string                   `json:"sectionName"`
	Recommendation string                   `json:"recommendation"`
	Priority       recommendations.Priority `json:"priority"`
	Score          int                      `json:"score"`
	Percentage     float64                  `json:"percentage"`
	Position       int                      `json:"position"`
	Status         Status                   `json:"status"`
	ModifiedBy     string                   `json:"modifiedBy,omitempty"`
	ModifiedAt     *time.Time               `json:"modifiedAt,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
}

// StatusInput changes a record's review status, optionally replacing its text.
type StatusInput struct {
	Status         Status  `json:"status" validate:"required,oneof=pending approved rejected modified"`
	Recommendation *string `json:"recommendation" validate:"omitempty,min=1,max=2000"`
}

// TextInput replaces a record's text.
type TextInput struct {
	Recommendation string `json:"recommendation" validate:"required,max=2000"`
}
