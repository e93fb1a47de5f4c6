package recommendations

import "menshealth-backend/internal/surveys/scoring"

// Priority ranks how urgently a recommendation should be acted on.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities with high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Recommendation is a single piece of advice derived from one section score.
type Recommendation struct {
	Section        scoring.SectionKey `json:"section"`
	SectionName    string             `json:"sectionName"`
	Recommendation string             `json:"recommendation"`
	Priority       Priority           `json:"priority"`
	Score          int                `json:"score"`
	Percentage     float64            `json:"percentage"`
}
