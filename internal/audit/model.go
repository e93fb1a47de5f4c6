package audit

import "time"

// Actions recorded in the audit log.
const (
	ActionPatientDeleted              = "patient.deleted"
	ActionRecommendationsGenerated    = "recommendations.generated"
	ActionRecommendationStatusChanged = "recommendation.status_changed"
	ActionRecommendationTextModified  = "recommendation.text_modified"
	ActionRecommendationDeleted       = "recommendation.deleted"
)

// Entry is one audit record.
type Entry struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId,omitempty"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType,omitempty"`
	EntityID   string         `json:"entityId,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	IPAddress  string         `json:"ipAddress,omitempty"`
	UserAgent  string         `json:"userAgent,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	EntityType string
	EntityID   string
	Limit      int
}
