package vaccines

import "context"

type Repository interface {
	// Create devuelve sentinel.ErrConflict si el nombre ya existe (case-insensitive).
	Create(ctx context.Context, v Vaccine) error
	GetByID(ctx context.Context, id string) (Vaccine, error)
	// List ordena por nombre ascendente.
	List(ctx context.Context, filter ListFilter) ([]Vaccine, error)
	Delete(ctx context.Context, id string) error
}

type ListFilter struct {
	Category *Category
}

// UsageChecker responde si hay registros de vacunación que referencian la vacuna.
type UsageChecker interface {
	ExistsForVaccine(ctx context.Context, vaccineID string) (bool, error)
}
