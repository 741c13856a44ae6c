package vaccines

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vaccination-card/internal/platform/logger"
	"vaccination-card/internal/platform/metrics"
	"vaccination-card/internal/platform/sentinel"
)

var (
	ErrInvalidInput  = sentinel.ErrInvalidInput
	ErrNotFound      = fmt.Errorf("vaccine %w", sentinel.ErrNotFound)
	ErrDuplicateName = fmt.Errorf("vaccine name already exists: %w", sentinel.ErrConflict)
	ErrInUse         = fmt.Errorf("vaccine has vaccination records: %w", sentinel.ErrConflict)
)

type Service struct {
	repo    Repository
	usage   UsageChecker
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

// WithUsageChecker habilita el bloqueo de Delete para vacunas con registros.
func WithUsageChecker(u UsageChecker) Option { return func(s *Service) { s.usage = u } }

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		log:  logger.Nop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	Name     string
	Category Category
	Schedule []DoseKind
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Vaccine, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Vaccine{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	category, err := ParseCategory(string(in.Category))
	if err != nil {
		return Vaccine{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	schedule, err := normalizeSchedule(in.Schedule)
	if err != nil {
		return Vaccine{}, err
	}

	v := Vaccine{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		Schedule:  schedule,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Vaccine{}, ErrDuplicateName
		}
		return Vaccine{}, err
	}

	s.metrics.IncVaccinesCreated()
	s.log.Info("vaccine created", logger.Fields{"vaccine_id": v.ID, "name": v.Name, "schedule": v.Schedule})
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Vaccine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Vaccine{}, ErrNotFound
	}
	v, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Vaccine{}, ErrNotFound
	}
	return v, err
}

// List devuelve las vacunas ordenadas por nombre; category nil = todas.
func (s *Service) List(ctx context.Context, category *Category) ([]Vaccine, error) {
	return s.repo.List(ctx, ListFilter{Category: category})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if s.usage != nil {
		inUse, err := s.usage.ExistsForVaccine(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return ErrInUse
		}
	}

	err := s.repo.Delete(ctx, id)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, sentinel.ErrConflict):
		// FK de postgres: alguien registró una dosis entre el check y el delete
		return ErrInUse
	}
	return err
}

type SeedResult struct {
	Created int
	Skipped int
}

// Seed crea las vacunas del catálogo; las que ya existen por nombre se saltean.
func (s *Service) Seed(ctx context.Context, items []CreateInput) (SeedResult, error) {
	var res SeedResult
	for _, in := range items {
		_, err := s.Create(ctx, in)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, ErrDuplicateName):
			res.Skipped++
		default:
			return res, fmt.Errorf("seed %q: %w", in.Name, err)
		}
	}
	return res, nil
}

func normalizeSchedule(in []DoseKind) ([]DoseKind, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: dose schedule is required", ErrInvalidInput)
	}
	seen := make(map[DoseKind]struct{}, len(in))
	out := make([]DoseKind, 0, len(in))
	for _, raw := range in {
		d, err := ParseDoseKind(string(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, dup := seen[d]; dup {
			return nil, fmt.Errorf("%w: dose %s repeated in schedule", ErrInvalidInput, d)
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}
