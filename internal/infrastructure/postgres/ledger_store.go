package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.LedgerStore = (*LedgerStore)(nil)

// LedgerStore implementación del puerto sobre PostgreSQL (usable con pool o tx).
// La columna seq (bigserial) de stock_movements preserva el orden de inserción
// que define el fold del saldo y el orden del historial.
type LedgerStore struct {
	q Querier
}

// NewLedgerStore construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerStore(q Querier) *LedgerStore {
	return &LedgerStore{q: q}
}

// AddProduct inserta el producto. El índice único sobre sku traduce la
// violación 23505 a domain.ErrDuplicateSKU.
func (s *LedgerStore) AddProduct(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, sku, description, unit_of_measure, status, date_created, date_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.q.Exec(ctx, query,
		product.ID, product.Name, product.SKU, product.Description,
		product.UnitOfMeasure, product.Status, product.DateCreated, product.DateModified,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetProduct obtiene un producto por ID, o (nil, nil) si no existe.
func (s *LedgerStore) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, name, sku, description, unit_of_measure, status, date_created, date_modified
		FROM products WHERE id = $1`
	var p entity.Product
	err := s.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.SKU, &p.Description, &p.UnitOfMeasure,
		&p.Status, &p.DateCreated, &p.DateModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// SKUExists verifica existencia del SKU, incluyendo productos inactivos.
func (s *LedgerStore) SKUExists(ctx context.Context, sku string) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1)`, sku,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sku exists: %w", err)
	}
	return exists, nil
}

// UpdateProductStatus cambia estado y date_modified. No-op si no existe.
func (s *LedgerStore) UpdateProductStatus(ctx context.Context, id, status string) error {
	_, err := s.q.Exec(ctx,
		`UPDATE products SET status = $2, date_modified = now() WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("update product status: %w", err)
	}
	return nil
}

// AddMovement agrega al log append-only; seq lo asigna la secuencia.
func (s *LedgerStore) AddMovement(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, user_id, type, quantity_change, reason, document_reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.UserID, movement.Type,
		movement.QuantityChange, movement.Reason, movement.DocumentReference, movement.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// MovementsByProduct lista los movimientos del producto en orden de inserción.
func (s *LedgerStore) MovementsByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, user_id, type, quantity_change, reason, document_reference, created_at
		FROM stock_movements WHERE product_id = $1 ORDER BY seq ASC`
	rows, err := s.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.UserID, &m.Type,
			&m.QuantityChange, &m.Reason, &m.DocumentReference, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
