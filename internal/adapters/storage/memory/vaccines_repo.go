package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"

	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/platform/sentinel"
)

type vaccineRepo struct {
	mu   sync.RWMutex
	byID map[string]vaccines.Vaccine
}

func NewVaccineRepo() vaccines.Repository {
	return &vaccineRepo{
		byID: make(map[string]vaccines.Vaccine),
	}
}

func (r *vaccineRepo) Create(ctx context.Context, v vaccines.Vaccine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("vaccine id required")
	}
	for _, existing := range r.byID {
		if existing.ID == v.ID || strings.EqualFold(existing.Name, v.Name) {
			return sentinel.ErrConflict
		}
	}
	v.Schedule = slices.Clone(v.Schedule)
	r.byID[v.ID] = v
	return nil
}

func (r *vaccineRepo) GetByID(ctx context.Context, id string) (vaccines.Vaccine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return vaccines.Vaccine{}, sentinel.ErrNotFound
	}
	v.Schedule = slices.Clone(v.Schedule)
	return v, nil
}

func (r *vaccineRepo) List(ctx context.Context, f vaccines.ListFilter) ([]vaccines.Vaccine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccines.Vaccine, 0, len(r.byID))
	for _, v := range r.byID {
		if f.Category != nil && v.Category != *f.Category {
			continue
		}
		v.Schedule = slices.Clone(v.Schedule)
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *vaccineRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
