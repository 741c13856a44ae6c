package vaccination

import (
	"context"

	"vaccination-card/internal/domain/persons"
	"vaccination-card/internal/domain/vaccines"
)

type Repository interface {
	// Create devuelve sentinel.ErrConflict si ya existe (persona, vacuna, dosis).
	Create(ctx context.Context, r Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	// ListByPerson ordena por fecha de aplicación y luego por alta.
	ListByPerson(ctx context.Context, personID string) ([]Record, error)
	Exists(ctx context.Context, personID, vaccineID string, dose vaccines.DoseKind) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteByPerson(ctx context.Context, personID string) error
	ExistsForVaccine(ctx context.Context, vaccineID string) (bool, error)
}

// TxRunner ejecuta fn como una unidad atómica (validar + insertar).
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type PersonReader interface {
	GetByID(ctx context.Context, id string) (persons.Person, error)
}

type VaccineReader interface {
	GetByID(ctx context.Context, id string) (vaccines.Vaccine, error)
	List(ctx context.Context, category *vaccines.Category) ([]vaccines.Vaccine, error)
}
