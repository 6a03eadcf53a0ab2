package memory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner gobierna el aislamiento sobre el store en memoria con un RWMutex:
// un registro (Run) toma el lado de escritor y excluye a todo el mundo; una
// vista (View) toma el lado de lector, convive con otras vistas y nunca
// observa un registro aplicado a medias.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con exclusión total frente a otros registros y vistas. No hay
// rollback: el caso de uso valida todo antes de la primera escritura.
func (r *TxRunner) Run(ctx context.Context, fn func(store repository.LedgerStore) error) error {
	r.store.writerMu.Lock()
	defer r.store.writerMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r.store)
}

// View ejecuta fn sobre un snapshot estable: bloquea solo frente a registros
// en curso, no frente a otras vistas.
func (r *TxRunner) View(ctx context.Context, fn func(store repository.LedgerStore) error) error {
	r.store.writerMu.RLock()
	defer r.store.writerMu.RUnlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r.store)
}
