package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vaccination-card/internal/domain/persons"
	"vaccination-card/internal/platform/sentinel"
)

type personRepo struct {
	mu    sync.RWMutex
	byID  map[string]persons.Person
	byCPF map[string]string
}

func NewPersonRepo() persons.Repository {
	return &personRepo{
		byID:  make(map[string]persons.Person),
		byCPF: make(map[string]string),
	}
}

func (r *personRepo) Create(ctx context.Context, p persons.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("person id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := r.byCPF[p.CPF]; exists {
		return sentinel.ErrConflict
	}
	r.byID[p.ID] = p
	r.byCPF[p.CPF] = p.ID
	return nil
}

func (r *personRepo) GetByID(ctx context.Context, id string) (persons.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return persons.Person{}, sentinel.ErrNotFound
	}
	return p, nil
}

func (r *personRepo) GetByCPF(ctx context.Context, cpf string) (persons.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCPF[cpf]
	if !ok {
		return persons.Person{}, sentinel.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *personRepo) List(ctx context.Context) ([]persons.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]persons.Person, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *personRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byCPF, p.CPF)
	return nil
}
