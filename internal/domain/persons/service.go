package persons

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
	ErrInvalidInput = sentinel.ErrInvalidInput
	ErrNotFound     = fmt.Errorf("person %w", sentinel.ErrNotFound)
	ErrDuplicateCPF = fmt.Errorf("cpf already registered: %w", sentinel.ErrConflict)
)

type Service struct {
	repo    Repository
	purger  RecordsPurger
	tx      TxRunner
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

// WithRecordsPurger hace que Delete borre también los registros de la persona.
func WithRecordsPurger(p RecordsPurger) Option { return func(s *Service) { s.purger = p } }

func WithTxRunner(tx TxRunner) Option { return func(s *Service) { s.tx = tx } }

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
	Name      string
	CPF       string
	BirthDate time.Time
	Sex       string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Person, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Person{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	cpf, err := NormalizeCPF(in.CPF)
	if err != nil {
		return Person{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	sex, err := ParseSex(in.Sex)
	if err != nil {
		return Person{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.BirthDate.IsZero() {
		return Person{}, fmt.Errorf("%w: birth_date is required", ErrInvalidInput)
	}
	now := s.now().UTC()
	if in.BirthDate.After(now) {
		return Person{}, fmt.Errorf("%w: birth_date cannot be in the future", ErrInvalidInput)
	}

	p := Person{
		ID:        uuid.NewString(),
		Name:      name,
		CPF:       cpf,
		BirthDate: in.BirthDate,
		Sex:       sex,
		CreatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Person{}, ErrDuplicateCPF
		}
		return Person{}, err
	}

	s.metrics.IncPersonsCreated()
	s.log.Info("person created", logger.Fields{"person_id": p.ID})
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Person, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Person{}, ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Person{}, ErrNotFound
	}
	return p, err
}

// SearchByCPF acepta el CPF con o sin máscara.
func (s *Service) SearchByCPF(ctx context.Context, raw string) (Person, error) {
	cpf, err := NormalizeCPF(raw)
	if err != nil {
		return Person{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	p, err := s.repo.GetByCPF(ctx, cpf)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Person{}, ErrNotFound
	}
	return p, err
}

func (s *Service) List(ctx context.Context) ([]Person, error) {
	return s.repo.List(ctx)
}

// Delete borra la persona y sus registros de vacunación en una sola unidad.
func (s *Service) Delete(ctx context.Context, id string) error {
	del := func(ctx context.Context) error {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		if s.purger != nil {
			if err := s.purger.DeleteByPerson(ctx, id); err != nil {
				return fmt.Errorf("purge records: %w", err)
			}
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		return nil
	}

	var err error
	if s.tx != nil {
		err = s.tx.WithinTx(ctx, del)
	} else {
		err = del(ctx)
	}
	if err != nil {
		return err
	}

	s.log.Info("person deleted", logger.Fields{"person_id": id})
	return nil
}
