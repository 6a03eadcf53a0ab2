package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TxRunner da acceso al LedgerStore con las garantías de aislamiento que el
// libro exige: cada registro es una secuencia leer-luego-escribir que debe ser
// atómica, y ninguna lectura puede observar una escritura a medias.
type TxRunner interface {
	// Run ejecuta fn con acceso exclusivo de escritura. La implementación en
	// memoria toma el lock de escritor; la de PostgreSQL abre una transacción
	// SERIALIZABLE.
	Run(ctx context.Context, fn func(store repository.LedgerStore) error) error

	// View ejecuta fn sobre una vista consistente del store: todo lo que fn
	// lee pertenece al mismo snapshot, sin escrituras en curso visibles a
	// medias. Varias vistas pueden correr en paralelo.
	View(ctx context.Context, fn func(store repository.LedgerStore) error) error
}

// KardexPDFGenerator genera la representación PDF del kardex (historial de
// movimientos) de un producto.
type KardexPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, product *entity.Product, movements []*entity.StockMovement, balance decimal.Decimal) ([]byte, error)
}
