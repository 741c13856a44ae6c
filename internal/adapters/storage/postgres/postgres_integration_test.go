//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"vaccination-card/internal/adapters/storage/postgres"
	"vaccination-card/internal/domain/persons"
	"vaccination-card/internal/domain/vaccination"
	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/platform/sentinel"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *sql.DB

	persons  *postgres.PersonsRepo
	vaccines *postgres.VaccinesRepo
	records  *postgres.RecordsRepo
	tx       *postgres.TxRunner
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()

	c, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("vaccination"),
		tcpostgres.WithUsername("vaccination"),
		tcpostgres.WithPassword("vaccination"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = c

	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = postgres.Open(dsn)
	s.Require().NoError(err)
	s.Require().NoError(postgres.Migrate(s.db))

	s.persons = postgres.NewPersonsRepo(s.db)
	s.vaccines = postgres.NewVaccinesRepo(s.db)
	s.records = postgres.NewRecordsRepo(s.db)
	s.tx = postgres.NewTxRunner(s.db)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.container != nil {
		s.NoError(testcontainers.TerminateContainer(s.container))
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.db.ExecContext(context.Background(),
		`TRUNCATE vaccination_records, vaccines, persons CASCADE`)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) seed() (persons.Person, vaccines.Vaccine) {
	ctx := context.Background()
	p := persons.Person{
		ID:        uuid.NewString(),
		Name:      "Maria Silva",
		CPF:       "12345678909",
		BirthDate: time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		Sex:       persons.SexFemale,
		CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.persons.Create(ctx, p))

	v := vaccines.Vaccine{
		ID:        uuid.NewString(),
		Name:      "Hepatite B",
		Category:  vaccines.CategoryNationalCard,
		Schedule:  []vaccines.DoseKind{vaccines.DoseFirst, vaccines.DoseSecond, vaccines.DoseFirstBooster, vaccines.DoseSecondBooster},
		CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.vaccines.Create(ctx, v))
	return p, v
}

func (s *PostgresStoreSuite) record(p persons.Person, v vaccines.Vaccine, dose vaccines.DoseKind) vaccination.Record {
	return vaccination.Record{
		ID:              uuid.NewString(),
		PersonID:        p.ID,
		VaccineID:       v.ID,
		Dose:            dose,
		ApplicationDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		RecordedBy:      "nurse-1",
		CreatedAt:       time.Now().UTC(),
	}
}

func (s *PostgresStoreSuite) TestPersons_RoundTripAndUniqueCPF() {
	ctx := context.Background()
	p, _ := s.seed()

	got, err := s.persons.GetByCPF(ctx, p.CPF)
	s.Require().NoError(err)
	s.Equal(p.ID, got.ID)
	s.Equal(persons.SexFemale, got.Sex)
	s.True(p.BirthDate.Equal(got.BirthDate))

	dup := p
	dup.ID = uuid.NewString()
	s.ErrorIs(s.persons.Create(ctx, dup), sentinel.ErrConflict)

	_, err = s.persons.GetByID(ctx, uuid.NewString())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestVaccines_ScheduleAndCategoryFilter() {
	ctx := context.Background()
	_, v := s.seed()

	got, err := s.vaccines.GetByID(ctx, v.ID)
	s.Require().NoError(err)
	s.Equal(v.Schedule, got.Schedule)

	dup := v
	dup.ID = uuid.NewString()
	dup.Name = "HEPATITE B"
	s.ErrorIs(s.vaccines.Create(ctx, dup), sentinel.ErrConflict)

	other := vaccines.CategoryOther
	list, err := s.vaccines.List(ctx, vaccines.ListFilter{Category: &other})
	s.Require().NoError(err)
	s.Empty(list)

	list, err = s.vaccines.List(ctx, vaccines.ListFilter{})
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *PostgresStoreSuite) TestRecords_UniqueTripleCascadeAndRestrict() {
	ctx := context.Background()
	p, v := s.seed()

	first := s.record(p, v, vaccines.DoseFirst)
	s.Require().NoError(s.records.Create(ctx, first))
	s.ErrorIs(s.records.Create(ctx, s.record(p, v, vaccines.DoseFirst)), sentinel.ErrConflict)

	ok, err := s.records.Exists(ctx, p.ID, v.ID, vaccines.DoseFirst)
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.records.GetByID(ctx, first.ID)
	s.Require().NoError(err)
	s.Equal("nurse-1", got.RecordedBy)

	// la vacuna no se puede borrar mientras haya registros
	s.ErrorIs(s.vaccines.Delete(ctx, v.ID), sentinel.ErrConflict)

	// borrar la persona arrastra sus registros
	s.Require().NoError(s.persons.Delete(ctx, p.ID))
	inUse, err := s.records.ExistsForVaccine(ctx, v.ID)
	s.Require().NoError(err)
	s.False(inUse)
	s.NoError(s.vaccines.Delete(ctx, v.ID))
}

func (s *PostgresStoreSuite) TestTxRunner_RollbackOnError() {
	ctx := context.Background()
	p, v := s.seed()

	boom := errors.New("boom")
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		s.Require().NoError(s.records.Create(ctx, s.record(p, v, vaccines.DoseFirst)))
		return boom
	})
	s.ErrorIs(err, boom)

	ok, err := s.records.Exists(ctx, p.ID, v.ID, vaccines.DoseFirst)
	s.Require().NoError(err)
	s.False(ok)
}

// TestConcurrentDoseCollision verifies that concurrent check-then-insert
// units for the same (person, vaccine, dose) produce exactly one record.
func (s *PostgresStoreSuite) TestConcurrentDoseCollision() {
	ctx := context.Background()
	p, v := s.seed()
	const goroutines = 20

	var wg sync.WaitGroup
	var created, conflicts atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
				exists, err := s.records.Exists(ctx, p.ID, v.ID, vaccines.DoseFirst)
				if err != nil || exists {
					return err
				}
				return s.records.Create(ctx, s.record(p, v, vaccines.DoseFirst))
			})
			switch {
			case errors.Is(err, sentinel.ErrConflict):
				conflicts.Add(1)
			case err == nil:
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	list, err := s.records.ListByPerson(ctx, p.ID)
	s.Require().NoError(err)
	s.Len(list, 1)
	s.Equal(int32(goroutines), created.Load()+conflicts.Load())
}
