package surveys

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Survey
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Survey)}
}

func (r *MemoryRepo) Create(ctx context.Context, s Survey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[s.ID] = s
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Survey, error) {
	if err := ctx.Err(); err != nil {
		return Survey{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.data[id]
	if !ok {
		return Survey{}, ErrNotFound
	}
	return s, nil
}

func (r *MemoryRepo) List(ctx context.Context, q ListQuery) ([]Survey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q = q.Normalize()
	all := r.newestFirst(q.PatientID)
	if q.Offset >= len(all) {
		return []Survey{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[q.Offset:end], nil
}

func (r *MemoryRepo) ListByPatient(ctx context.Context, patientID string) ([]Survey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.newestFirst(patientID), nil
}

// DeleteByPatient drops a patient's surveys, mirroring the storage cascade.
func (r *MemoryRepo) DeleteByPatient(patientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.data {
		if s.PatientID == patientID {
			delete(r.data, id)
		}
	}
}

func (r *MemoryRepo) newestFirst(patientID string) []Survey {
	r.mu.RLock()
	out := make([]Survey, 0, len(r.data))
	for _, s := range r.data {
		if patientID == "" || s.PatientID == patientID {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CompletedAt.Equal(out[j].CompletedAt) {
			return out[i].CompletedAt.After(out[j].CompletedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
