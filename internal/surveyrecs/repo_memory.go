package surveyrecs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Record)}
}

func (r *MemoryRepo) ReplaceForSurvey(ctx context.Context, surveyID string, recs []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteSurveyLocked(surveyID)
	for _, rec := range recs {
		rec.SurveyID = surveyID
		r.data[rec.ID] = rec
	}
	return nil
}

func (r *MemoryRepo) ListBySurvey(ctx context.Context, surveyID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := []Record{}
	for _, rec := range r.data {
		if rec.SurveyID == surveyID {
			out = append(out, rec)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryRepo) Update(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[rec.ID]; !ok {
		return ErrNotFound
	}
	r.data[rec.ID] = rec
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

// DeleteBySurvey drops a survey's records, mirroring the storage cascade.
func (r *MemoryRepo) DeleteBySurvey(surveyID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteSurveyLocked(surveyID)
}

func (r *MemoryRepo) deleteSurveyLocked(surveyID string) {
	for id, rec := range r.data {
		if rec.SurveyID == surveyID {
			delete(r.data, id)
		}
	}
}
