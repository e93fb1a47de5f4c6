package patients

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"menshealth-backend/internal/shared/telemetry"
)

type Service struct {
	Repo Repo
	Now  func() time.Time
	// OnDelete runs after a patient is removed. Stores without cascading
	// foreign keys use it to drop dependent records.
	OnDelete func(ctx context.Context, patientID string)
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Patient, error) {
	now := s.now()
	p := Patient{
		ID:            uuid.NewString(),
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		DateOfBirth:   strings.TrimSpace(in.DateOfBirth),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		PatientNumber: strings.TrimSpace(in.PatientNumber),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if p.FirstName == "" || p.LastName == "" {
		return Patient{}, ErrInvalidInput
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	telemetry.Info("patient.created", map[string]any{"patient_id": p.ID})
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (Patient, error) {
	if strings.TrimSpace(id) == "" {
		return Patient{}, ErrInvalidInput
	}
	return s.Repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]Patient, error) {
	return s.Repo.List(ctx, q.Normalize())
}

// Update applies a partial update and stamps UpdatedAt.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Patient, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Patient{}, err
	}
	updated := in.Apply(current)
	updated.FirstName = strings.TrimSpace(updated.FirstName)
	updated.LastName = strings.TrimSpace(updated.LastName)
	if updated.FirstName == "" || updated.LastName == "" {
		return Patient{}, ErrInvalidInput
	}
	updated.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, updated); err != nil {
		return Patient{}, err
	}
	return updated, nil
}

// Delete removes a patient and returns the removed record. Surveys and
// their recommendations cascade in storage.
func (s *Service) Delete(ctx context.Context, id string) (Patient, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return Patient{}, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return Patient{}, err
	}
	if s.OnDelete != nil {
		s.OnDelete(ctx, id)
	}
	telemetry.Info("patient.deleted", map[string]any{"patient_id": id})
	return p, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
