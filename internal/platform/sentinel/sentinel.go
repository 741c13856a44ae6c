package sentinel

import "errors"

// Categorías de error compartidas. Repos (memory/postgres) devuelven NotFound y
// Conflict; los dominios envuelven estas categorías con %w en sus propios
// errores, y la capa HTTP mapea status por categoría.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	// ErrBusinessRule marca rechazos de reglas de negocio; el mensaje del
	// error concreto se devuelve tal cual al cliente.
	ErrBusinessRule = errors.New("business rule violation")
)
