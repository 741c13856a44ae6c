package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vaccination-card/internal/domain/vaccination"
	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/platform/sentinel"
)

type recordKey struct {
	personID  string
	vaccineID string
	dose      vaccines.DoseKind
}

type recordRepo struct {
	mu    sync.RWMutex
	byID  map[string]vaccination.Record
	byKey map[recordKey]string
}

func NewRecordRepo() vaccination.Repository {
	return &recordRepo{
		byID:  make(map[string]vaccination.Record),
		byKey: make(map[recordKey]string),
	}
}

func keyOf(rec vaccination.Record) recordKey {
	return recordKey{rec.PersonID, rec.VaccineID, rec.Dose}
}

func (r *recordRepo) Create(ctx context.Context, rec vaccination.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return sentinel.ErrConflict
	}
	// misma restricción única que la tabla de postgres
	if _, exists := r.byKey[keyOf(rec)]; exists {
		return sentinel.ErrConflict
	}
	r.byID[rec.ID] = rec
	r.byKey[keyOf(rec)] = rec.ID
	return nil
}

func (r *recordRepo) GetByID(ctx context.Context, id string) (vaccination.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return vaccination.Record{}, sentinel.ErrNotFound
	}
	return rec, nil
}

func (r *recordRepo) ListByPerson(ctx context.Context, personID string) ([]vaccination.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccination.Record, 0)
	for _, rec := range r.byID {
		if rec.PersonID == personID {
			out = append(out, rec)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ApplicationDate.Equal(out[j].ApplicationDate) {
			return out[i].ApplicationDate.Before(out[j].ApplicationDate)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *recordRepo) Exists(ctx context.Context, personID, vaccineID string, dose vaccines.DoseKind) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byKey[recordKey{personID, vaccineID, dose}]
	return ok, nil
}

func (r *recordRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byKey, keyOf(rec))
	return nil
}

func (r *recordRepo) DeleteByPerson(ctx context.Context, personID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.byID {
		if rec.PersonID == personID {
			delete(r.byID, id)
			delete(r.byKey, keyOf(rec))
		}
	}
	return nil
}

func (r *recordRepo) ExistsForVaccine(ctx context.Context, vaccineID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.byID {
		if rec.VaccineID == vaccineID {
			return true, nil
		}
	}
	return false, nil
}
