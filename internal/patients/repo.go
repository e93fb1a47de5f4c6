package patients

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("patient not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateNumber = errors.New("patient number already in use")
)

// Repo defines persistence operations for patients.
type Repo interface {
	Create(ctx context.Context, p Patient) error
	Get(ctx context.Context, id string) (Patient, error)
	List(ctx context.Context, q ListQuery) ([]Patient, error)
	Update(ctx context.Context, p Patient) error
	Delete(ctx context.Context, id string) error
}
