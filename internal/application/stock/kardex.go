package stock

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// KardexUseCase genera el kardex de un producto: su historial completo de
// movimientos en PDF, con el saldo final calculado desde el log.
type KardexUseCase struct {
	runner    TxRunner
	generator KardexPDFGenerator
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(runner TxRunner, generator KardexPDFGenerator) *KardexUseCase {
	return &KardexUseCase{runner: runner, generator: generator}
}

// GenerateKardex retorna los bytes del PDF o domain.ErrProductNotFound.
// Producto e historial se leen en una sola vista; el saldo se pliega sobre ese
// mismo snapshot, así el PDF nunca mezcla estados. El render queda fuera de la
// vista para no retener el lock durante la generación.
func (uc *KardexUseCase) GenerateKardex(ctx context.Context, productID string) ([]byte, error) {
	var (
		product   *entity.Product
		movements []*entity.StockMovement
	)
	err := uc.runner.View(ctx, func(store repository.LedgerStore) error {
		p, err := store.GetProduct(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		product = p
		movements, err = store.MovementsByProduct(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateKardexPDF(ctx, product, movements, foldBalance(movements))
}
