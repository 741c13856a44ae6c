package vaccination

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/platform/logger"
	"vaccination-card/internal/platform/metrics"
	"vaccination-card/internal/platform/sentinel"
)

var (
	ErrInvalidInput    = sentinel.ErrInvalidInput
	ErrRecordNotFound  = fmt.Errorf("vaccination record %w", sentinel.ErrNotFound)
	ErrDuplicateRecord = fmt.Errorf("dose already recorded for this person: %w", sentinel.ErrConflict)
)

type Service struct {
	records  Repository
	persons  PersonReader
	vaccines VaccineReader
	tx       TxRunner
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

func NewService(records Repository, pr PersonReader, vr VaccineReader, tx TxRunner, opts ...Option) *Service {
	s := &Service{
		records:  records,
		persons:  pr,
		vaccines: vr,
		tx:       tx,
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type AddInput struct {
	VaccineID       string
	Dose            vaccines.DoseKind
	ApplicationDate time.Time
	RecordedBy      string
}

// AddVaccination valida y registra la dosis dentro de una transacción y
// devuelve la cartilla actualizada (sin filtro de categoría).
func (s *Service) AddVaccination(ctx context.Context, personID string, in AddInput) (Card, error) {
	personID = strings.TrimSpace(personID)
	vaccineID := strings.TrimSpace(in.VaccineID)
	if vaccineID == "" {
		return Card{}, fmt.Errorf("%w: vaccine_id is required", ErrInvalidInput)
	}
	dose, err := vaccines.ParseDoseKind(string(in.Dose))
	if err != nil {
		return Card{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.ApplicationDate.IsZero() {
		return Card{}, fmt.Errorf("%w: application_date is required", ErrInvalidInput)
	}
	now := s.now().UTC()
	if in.ApplicationDate.After(now) {
		return Card{}, fmt.Errorf("%w: application_date cannot be in the future", ErrInvalidInput)
	}

	rec := Record{
		ID:              uuid.NewString(),
		PersonID:        personID,
		VaccineID:       vaccineID,
		Dose:            dose,
		ApplicationDate: in.ApplicationDate,
		RecordedBy:      strings.TrimSpace(in.RecordedBy),
		CreatedAt:       now,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.persons.GetByID(ctx, personID); err != nil {
			return err
		}
		v, err := s.vaccines.GetByID(ctx, vaccineID)
		if err != nil {
			return err
		}
		if err := ValidateDose(ctx, s.records, personID, v, dose); err != nil {
			return err
		}
		if err := s.records.Create(ctx, rec); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return ErrDuplicateRecord
			}
			return err
		}
		return nil
	})
	if err != nil {
		var rv *RuleViolation
		if errors.As(err, &rv) {
			s.metrics.IncDoseRejected(string(rv.Rule))
			s.log.Info("dose rejected", logger.Fields{
				"person_id": personID, "vaccine_id": vaccineID, "dose": dose, "rule": rv.Rule,
			})
		}
		return Card{}, err
	}

	s.metrics.IncVaccinationRecorded(string(dose))
	s.log.Info("dose recorded", logger.Fields{
		"record_id": rec.ID, "person_id": personID, "vaccine_id": vaccineID, "dose": dose, "recorded_by": rec.RecordedBy,
	})

	return s.GetCard(ctx, personID, nil)
}

// GetCard arma la cartilla de la persona; category nil = todas las vacunas.
func (s *Service) GetCard(ctx context.Context, personID string, category *vaccines.Category) (Card, error) {
	defer s.metrics.ObserveCardBuild(time.Now())

	p, err := s.persons.GetByID(ctx, strings.TrimSpace(personID))
	if err != nil {
		return Card{}, err
	}
	vs, err := s.vaccines.List(ctx, category)
	if err != nil {
		return Card{}, fmt.Errorf("list vaccines: %w", err)
	}
	recs, err := s.records.ListByPerson(ctx, p.ID)
	if err != nil {
		return Card{}, fmt.Errorf("list records: %w", err)
	}
	return BuildGrid(p, vs, recs), nil
}

// DeleteRecord borra un registro solo si pertenece a la persona indicada.
func (s *Service) DeleteRecord(ctx context.Context, personID, recordID string) error {
	personID = strings.TrimSpace(personID)
	if _, err := s.persons.GetByID(ctx, personID); err != nil {
		return err
	}

	rec, err := s.records.GetByID(ctx, strings.TrimSpace(recordID))
	if errors.Is(err, sentinel.ErrNotFound) || (err == nil && rec.PersonID != personID) {
		return ErrRecordNotFound
	}
	if err != nil {
		return err
	}

	if err := s.records.Delete(ctx, rec.ID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}

	s.log.Info("record deleted", logger.Fields{"record_id": rec.ID, "person_id": personID})
	return nil
}

// History lista los registros de la persona con el nombre de la vacuna,
// ordenados por fecha de aplicación.
func (s *Service) History(ctx context.Context, personID string) ([]HistoryEntry, error) {
	p, err := s.persons.GetByID(ctx, strings.TrimSpace(personID))
	if err != nil {
		return nil, err
	}
	recs, err := s.records.ListByPerson(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	vs, err := s.vaccines.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list vaccines: %w", err)
	}

	names := make(map[string]string, len(vs))
	for _, v := range vs {
		names[v.ID] = v.Name
	}

	out := make([]HistoryEntry, 0, len(recs))
	for _, r := range recs {
		out = append(out, HistoryEntry{
			RecordID:        r.ID,
			VaccineID:       r.VaccineID,
			VaccineName:     names[r.VaccineID],
			Dose:            r.Dose,
			ApplicationDate: r.ApplicationDate,
			RecordedBy:      r.RecordedBy,
			CreatedAt:       r.CreatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ApplicationDate.Before(out[j].ApplicationDate)
	})
	return out, nil
}
