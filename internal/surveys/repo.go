package surveys

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("survey not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrPatientNotFound = errors.New("patient not found")
)

// Repo defines persistence operations for surveys.
type Repo interface {
	Create(ctx context.Context, s Survey) error
	Get(ctx context.Context, id string) (Survey, error)
	List(ctx context.Context, q ListQuery) ([]Survey, error)
	ListByPatient(ctx context.Context, patientID string) ([]Survey, error)
}
