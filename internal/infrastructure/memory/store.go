// Package memory implementa el LedgerStore de referencia sobre mapas en
// memoria. Es el stand-in del backend durable: misma interfaz, sin I/O.
// El aislamiento entre tests se logra construyendo un Store nuevo por test,
// no con un escape hatch de limpieza.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.LedgerStore = (*Store)(nil)

// Store guarda productos (mapa por id), índice de SKU y el log append-only de
// movimientos. Las lecturas devuelven copias: los llamadores nunca comparten
// referencias con el estado interno. El aislamiento entre registros completos
// y vistas de lectura lo gobierna el TxRunner sobre writerMu; mu protege cada
// acceso individual a los mapas y al log.
type Store struct {
	// writerMu: Lock para un registro completo (leer-luego-escribir),
	// RLock para una vista de lectura consistente (TxRunner.View). Una vista
	// nunca observa un registro aplicado a medias.
	writerMu  sync.RWMutex
	mu        sync.RWMutex
	products  map[string]*entity.Product
	skuIndex  map[string]string // SKU -> ProductID; nunca se libera una entrada
	movements []*entity.StockMovement
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		skuIndex: make(map[string]string),
	}
}

// AddProduct inserta el producto e indexa su SKU.
func (s *Store) AddProduct(_ context.Context, product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.skuIndex[product.SKU]; ok {
		return domain.ErrDuplicateSKU
	}
	p := *product
	s.products[p.ID] = &p
	s.skuIndex[p.SKU] = p.ID
	return nil
}

// GetProduct retorna una copia del producto o (nil, nil) si no existe.
func (s *Store) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	p := *product
	return &p, nil
}

// SKUExists verifica el índice de SKU (incluye productos inactivos).
func (s *Store) SKUExists(_ context.Context, sku string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.skuIndex[sku]
	return ok, nil
}

// UpdateProductStatus muta estado y DateModified in place. No-op si no existe.
func (s *Store) UpdateProductStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return nil
	}
	product.Status = status
	product.DateModified = time.Now().UTC()
	return nil
}

// AddMovement agrega al log. Sin validación: eso es responsabilidad del
// caso de uso.
func (s *Store) AddMovement(_ context.Context, movement *entity.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := *movement
	s.movements = append(s.movements, &m)
	return nil
}

// MovementsByProduct retorna copias de los movimientos del producto en el
// orden de inserción original.
func (s *Store) MovementsByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.StockMovement
	for _, movement := range s.movements {
		if movement.ProductID == productID {
			m := *movement
			list = append(list, &m)
		}
	}
	return list, nil
}
