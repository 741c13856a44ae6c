package tx

import (
	"context"
	"database/sql"
)

type ctxKey struct{}

// WithTx guarda la transacción en el contexto para que los repos la usen.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, tx)
}

// From devuelve la transacción del contexto, si existe.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(ctxKey{}).(*sql.Tx)
	return tx, ok
}
