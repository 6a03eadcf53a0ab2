package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// LedgerStore define el puerto de persistencia del libro de inventario (DIP).
// Es el dueño exclusivo de productos y movimientos; no aplica reglas de
// negocio. Implementaciones: memoria (referencia) y PostgreSQL (durable).
type LedgerStore interface {
	// AddProduct inserta el producto e indexa su SKU.
	// Retorna domain.ErrDuplicateSKU si el SKU ya está indexado.
	AddProduct(ctx context.Context, product *entity.Product) error

	// GetProduct retorna el producto o (nil, nil) si no existe.
	GetProduct(ctx context.Context, id string) (*entity.Product, error)

	// SKUExists verifica existencia del SKU (incluye productos inactivos).
	SKUExists(ctx context.Context, sku string) (bool, error)

	// UpdateProductStatus cambia el estado y actualiza DateModified.
	// No-op si el producto no existe.
	UpdateProductStatus(ctx context.Context, id, status string) error

	// AddMovement agrega al log append-only. Sin validación.
	AddMovement(ctx context.Context, movement *entity.StockMovement) error

	// MovementsByProduct retorna los movimientos del producto en orden de
	// inserción original (define el orden del fold de saldo y del historial).
	MovementsByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
}
