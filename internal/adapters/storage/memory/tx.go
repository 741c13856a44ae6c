package memory

import (
	"context"
	"sync"
)

// TxRunner serializa las unidades de escritura. No hay rollback: cada repo
// aplica sus cambios de inmediato, pero ninguna otra unidad corre en paralelo,
// así validar + insertar no compite con otro AddVaccination.
type TxRunner struct {
	mu sync.Mutex
}

func NewTxRunner() *TxRunner { return &TxRunner{} }

func (t *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
