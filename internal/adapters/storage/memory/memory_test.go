package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"vaccination-card/internal/domain/persons"
	"vaccination-card/internal/domain/vaccination"
	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	persons  persons.Repository
	vaccines vaccines.Repository
	records  vaccination.Repository
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.persons = NewPersonRepo()
	s.vaccines = NewVaccineRepo()
	s.records = NewRecordRepo()
}

func (s *MemoryStoreSuite) newRecord(personID, vaccineID string, dose vaccines.DoseKind, day int) vaccination.Record {
	return vaccination.Record{
		ID:              uuid.NewString(),
		PersonID:        personID,
		VaccineID:       vaccineID,
		Dose:            dose,
		ApplicationDate: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		CreatedAt:       time.Now(),
	}
}

func (s *MemoryStoreSuite) TestPersons_UniqueCPF() {
	ctx := context.Background()
	p := persons.Person{ID: uuid.NewString(), Name: "Ana", CPF: "12345678909"}
	s.Require().NoError(s.persons.Create(ctx, p))

	dup := persons.Person{ID: uuid.NewString(), Name: "Outra", CPF: "12345678909"}
	s.ErrorIs(s.persons.Create(ctx, dup), sentinel.ErrConflict)

	found, err := s.persons.GetByCPF(ctx, "12345678909")
	s.Require().NoError(err)
	s.Equal(p.ID, found.ID)

	s.Require().NoError(s.persons.Delete(ctx, p.ID))
	_, err = s.persons.GetByCPF(ctx, "12345678909")
	s.ErrorIs(err, sentinel.ErrNotFound)

	// el CPF queda libre después de borrar
	s.NoError(s.persons.Create(ctx, dup))
}

func (s *MemoryStoreSuite) TestVaccines_NameIsCaseInsensitiveAndListSorted() {
	ctx := context.Background()
	s.Require().NoError(s.vaccines.Create(ctx, vaccines.Vaccine{ID: "v2", Name: "Hepatite B", Category: vaccines.CategoryNationalCard}))
	s.Require().NoError(s.vaccines.Create(ctx, vaccines.Vaccine{ID: "v1", Name: "BCG", Category: vaccines.CategoryNationalCard}))
	s.Require().NoError(s.vaccines.Create(ctx, vaccines.Vaccine{ID: "v3", Name: "Febre Amarela", Category: vaccines.CategoryOther}))

	s.ErrorIs(s.vaccines.Create(ctx, vaccines.Vaccine{ID: "v4", Name: "bcg"}), sentinel.ErrConflict)

	all, err := s.vaccines.List(ctx, vaccines.ListFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]string{"BCG", "Febre Amarela", "Hepatite B"}, []string{all[0].Name, all[1].Name, all[2].Name})

	other := vaccines.CategoryOther
	filtered, err := s.vaccines.List(ctx, vaccines.ListFilter{Category: &other})
	s.Require().NoError(err)
	s.Require().Len(filtered, 1)
	s.Equal("v3", filtered[0].ID)
}

func (s *MemoryStoreSuite) TestVaccines_ScheduleIsCopied() {
	ctx := context.Background()
	schedule := []vaccines.DoseKind{vaccines.DoseFirst, vaccines.DoseSecond}
	s.Require().NoError(s.vaccines.Create(ctx, vaccines.Vaccine{ID: "v1", Name: "X", Schedule: schedule}))

	schedule[0] = vaccines.DoseBooster
	got, err := s.vaccines.GetByID(ctx, "v1")
	s.Require().NoError(err)
	s.Equal(vaccines.DoseFirst, got.Schedule[0])
}

func (s *MemoryStoreSuite) TestRecords_UniqueTripleAndLookups() {
	ctx := context.Background()
	first := s.newRecord("p1", "v1", vaccines.DoseFirst, 10)
	s.Require().NoError(s.records.Create(ctx, first))

	s.ErrorIs(s.records.Create(ctx, s.newRecord("p1", "v1", vaccines.DoseFirst, 11)), sentinel.ErrConflict)
	s.NoError(s.records.Create(ctx, s.newRecord("p2", "v1", vaccines.DoseFirst, 11)))

	ok, err := s.records.Exists(ctx, "p1", "v1", vaccines.DoseFirst)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.records.Exists(ctx, "p1", "v1", vaccines.DoseSecond)
	s.Require().NoError(err)
	s.False(ok)

	inUse, err := s.records.ExistsForVaccine(ctx, "v1")
	s.Require().NoError(err)
	s.True(inUse)

	s.Require().NoError(s.records.Delete(ctx, first.ID))
	ok, err = s.records.Exists(ctx, "p1", "v1", vaccines.DoseFirst)
	s.Require().NoError(err)
	s.False(ok)
	s.ErrorIs(s.records.Delete(ctx, first.ID), sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestRecords_ListByPersonOrderedAndPurge() {
	ctx := context.Background()
	s.Require().NoError(s.records.Create(ctx, s.newRecord("p1", "v1", vaccines.DoseSecond, 20)))
	s.Require().NoError(s.records.Create(ctx, s.newRecord("p1", "v1", vaccines.DoseFirst, 5)))
	s.Require().NoError(s.records.Create(ctx, s.newRecord("p2", "v1", vaccines.DoseFirst, 1)))

	list, err := s.records.ListByPerson(ctx, "p1")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(vaccines.DoseFirst, list[0].Dose)
	s.Equal(vaccines.DoseSecond, list[1].Dose)

	s.Require().NoError(s.records.DeleteByPerson(ctx, "p1"))
	list, err = s.records.ListByPerson(ctx, "p1")
	s.Require().NoError(err)
	s.Empty(list)

	list, err = s.records.ListByPerson(ctx, "p2")
	s.Require().NoError(err)
	s.Len(list, 1)
}

// TestTxRunner_SerializesCheckThenInsert verifies that concurrent
// check-then-insert units for the same triple produce exactly one record.
func (s *MemoryStoreSuite) TestTxRunner_SerializesCheckThenInsert() {
	ctx := context.Background()
	tx := NewTxRunner()
	const goroutines = 50

	var wg sync.WaitGroup
	var created atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tx.WithinTx(ctx, func(ctx context.Context) error {
				exists, err := s.records.Exists(ctx, "p1", "v1", vaccines.DoseFirst)
				if err != nil || exists {
					return err
				}
				if err := s.records.Create(ctx, s.newRecord("p1", "v1", vaccines.DoseFirst, 1)); err != nil {
					return err
				}
				created.Add(1)
				return nil
			})
		}()
	}
	wg.Wait()

	s.Equal(int32(1), created.Load())
}
