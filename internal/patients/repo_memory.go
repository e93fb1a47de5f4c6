package patients

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Patient
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Patient)}
}

func (r *MemoryRepo) Create(ctx context.Context, p Patient) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.numberTaken(p.PatientNumber, p.ID) {
		return ErrDuplicateNumber
	}
	r.data[p.ID] = p
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Patient, error) {
	if err := ctx.Err(); err != nil {
		return Patient{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[id]
	if !ok {
		return Patient{}, ErrNotFound
	}
	return p, nil
}

// List returns patients newest first, filtered by a case-insensitive substring
// of first name, last name, email or patient number.
func (r *MemoryRepo) List(ctx context.Context, q ListQuery) ([]Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q = q.Normalize()
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	r.mu.RLock()
	all := make([]Patient, 0, len(r.data))
	for _, p := range r.data {
		if needle == "" || matches(p, needle) {
			all = append(all, p)
		}
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	if q.Offset >= len(all) {
		return []Patient{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[q.Offset:end], nil
}

func (r *MemoryRepo) Update(ctx context.Context, p Patient) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[p.ID]; !ok {
		return ErrNotFound
	}
	if r.numberTaken(p.PatientNumber, p.ID) {
		return ErrDuplicateNumber
	}
	r.data[p.ID] = p
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *MemoryRepo) numberTaken(number, exceptID string) bool {
	if number == "" {
		return false
	}
	for id, p := range r.data {
		if id != exceptID && p.PatientNumber == number {
			return true
		}
	}
	return false
}

func matches(p Patient, needle string) bool {
	for _, field := range []string{p.FirstName, p.LastName, p.Email, p.PatientNumber} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
