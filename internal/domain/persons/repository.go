package persons

import "context"

type Repository interface {
	// Create devuelve sentinel.ErrConflict si el CPF ya existe.
	Create(ctx context.Context, p Person) error
	GetByID(ctx context.Context, id string) (Person, error)
	GetByCPF(ctx context.Context, cpf string) (Person, error)
	// List ordena por nombre ascendente.
	List(ctx context.Context) ([]Person, error)
	Delete(ctx context.Context, id string) error
}

// RecordsPurger borra los registros de vacunación de una persona.
type RecordsPurger interface {
	DeleteByPerson(ctx context.Context, personID string) error
}

// TxRunner ejecuta fn como una unidad atómica.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
