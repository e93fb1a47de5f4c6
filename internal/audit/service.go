package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"menshealth-backend/internal/shared/telemetry"
)

// Service records audit entries. Recording never fails the caller's
// operation; persistence errors are logged.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Record stores e, filling ID and CreatedAt.
func (s *Service) Record(ctx context.Context, e Entry) {
	if s == nil || s.Repo == nil {
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		e.CreatedAt = now().UTC()
	}
	if err := s.Repo.Insert(ctx, e); err != nil {
		telemetry.Error("audit.record_failed", map[string]any{
			"action":    e.Action,
			"entity_id": e.EntityID,
			"error":     err,
		})
	}
}

// List returns entries matching f, newest first. Limit is clamped to 1..200.
func (s *Service) List(ctx context.Context, f Filter) ([]Entry, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 200
	}
	return s.Repo.List(ctx, f)
}
