package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// MovementUseCase gobierna cómo una petición cruda se convierte en un asiento
// validado del libro: valida forma por tipo, aplica reglas de negocio contra
// el estado actual, deriva el delta con signo y agrega el movimiento
// (y, para CREATION, el producto) de forma atómica vía TxRunner. Las lecturas
// (saldo, historial) corren dentro de una vista consistente del mismo runner.
type MovementUseCase struct {
	runner TxRunner
}

// NewMovementUseCase construye el caso de uso sobre el runner.
func NewMovementUseCase(runner TxRunner) *MovementUseCase {
	return &MovementUseCase{runner: runner}
}

// RegisterMovement registra un movimiento de stock. Orden estricto
// validate-then-commit: todo error de forma o de regla de negocio se detecta
// antes de cualquier mutación, por lo que no hay rollback parcial.
func (uc *MovementUseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	input, verr := parseMovementRequest(in)
	if verr != nil {
		return nil, verr
	}

	now := time.Now().UTC()
	movementID := uuid.New().String()

	var movement *entity.StockMovement
	err := uc.runner.Run(ctx, func(store repository.LedgerStore) error {
		switch v := input.(type) {
		case creationInput:
			m, err := registerCreation(ctx, store, v, userID, movementID, now)
			if err != nil {
				return err
			}
			movement = m
			return nil
		case inboundInput:
			return withActiveProduct(ctx, store, v.ProductID, func(product *entity.Product, balance decimal.Decimal) error {
				movement = &entity.StockMovement{
					ID:                movementID,
					ProductID:         product.ID,
					UserID:            userID,
					Type:              entity.MovementTypeInbound,
					QuantityChange:    v.QuantityChange,
					DocumentReference: v.DocumentReference,
					Timestamp:         now,
				}
				return store.AddMovement(ctx, movement)
			})
		case outboundInput:
			return withActiveProduct(ctx, store, v.ProductID, func(product *entity.Product, balance decimal.Decimal) error {
				if balance.Sub(v.QuantityChange).IsNegative() {
					return &domain.InsufficientStockError{Current: balance}
				}
				// El cliente envía magnitud; el libro guarda el delta negado.
				movement = &entity.StockMovement{
					ID:                movementID,
					ProductID:         product.ID,
					UserID:            userID,
					Type:              entity.MovementTypeOutbound,
					QuantityChange:    v.QuantityChange.Neg(),
					DocumentReference: v.DocumentReference,
					Timestamp:         now,
				}
				return store.AddMovement(ctx, movement)
			})
		case adjustmentInput:
			return withActiveProduct(ctx, store, v.ProductID, func(product *entity.Product, balance decimal.Decimal) error {
				if v.QuantityChange.IsNegative() && balance.Add(v.QuantityChange).IsNegative() {
					return &domain.NegativeStockError{Current: balance}
				}
				movement = &entity.StockMovement{
					ID:             movementID,
					ProductID:      product.ID,
					UserID:         userID,
					Type:           entity.MovementTypeAdjustment,
					QuantityChange: v.QuantityChange,
					Reason:         v.Reason,
					Timestamp:      now,
				}
				return store.AddMovement(ctx, movement)
			})
		case deletionInput:
			return withActiveProduct(ctx, store, v.ProductID, func(product *entity.Product, balance decimal.Decimal) error {
				// Baja lógica: bloquea movimientos futuros pero no borra el
				// historial ni pone el saldo en cero.
				if err := store.UpdateProductStatus(ctx, product.ID, entity.ProductStatusInactive); err != nil {
					return err
				}
				movement = &entity.StockMovement{
					ID:             movementID,
					ProductID:      product.ID,
					UserID:         userID,
					Type:           entity.MovementTypeDeletion,
					QuantityChange: decimal.Zero,
					Reason:         v.Reason,
					Timestamp:      now,
				}
				return store.AddMovement(ctx, movement)
			})
		}
		return domain.ErrInvalidInput
	})
	if err != nil {
		return nil, err
	}
	return dto.ToMovementResponse(movement), nil
}

// registerCreation crea producto y primer movimiento de forma atómica.
func registerCreation(ctx context.Context, store repository.LedgerStore, in creationInput, userID, movementID string, now time.Time) (*entity.StockMovement, error) {
	exists, err := store.SKUExists(ctx, in.ProductSKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateSKU
	}
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.ProductName,
		SKU:           in.ProductSKU,
		Description:   in.ProductDescription,
		UnitOfMeasure: in.UnitOfMeasure,
		Status:        entity.ProductStatusActive,
		DateCreated:   now,
		DateModified:  now,
	}
	if err := store.AddProduct(ctx, product); err != nil {
		return nil, err
	}
	movement := &entity.StockMovement{
		ID:             movementID,
		ProductID:      product.ID,
		UserID:         userID,
		Type:           entity.MovementTypeCreation,
		QuantityChange: in.QuantityChange,
		Timestamp:      now,
	}
	if err := store.AddMovement(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// withActiveProduct resuelve el producto, exige que exista y esté ACTIVE,
// calcula el saldo actual y delega en fn.
func withActiveProduct(ctx context.Context, store repository.LedgerStore, productID string, fn func(product *entity.Product, balance decimal.Decimal) error) error {
	product, err := store.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	if !product.IsActive() {
		return domain.ErrProductInactive
	}
	movements, err := store.MovementsByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	return fn(product, foldBalance(movements))
}

// foldBalance pliega el log completo del producto. El saldo nunca se cachea:
// recalcular desde los movimientos es la fuente de verdad.
func foldBalance(movements []*entity.StockMovement) decimal.Decimal {
	balance := decimal.Zero
	for _, m := range movements {
		balance = balance.Add(m.QuantityChange)
	}
	return balance
}

// GetBalance retorna el saldo actual del producto (fold sobre el historial),
// leído dentro de una vista consistente.
func (uc *MovementUseCase) GetBalance(ctx context.Context, productID string) (*dto.BalanceResponse, error) {
	var resp *dto.BalanceResponse
	err := uc.runner.View(ctx, func(store repository.LedgerStore) error {
		product, err := store.GetProduct(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		movements, err := store.MovementsByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		resp = &dto.BalanceResponse{
			ProductID:   product.ID,
			Balance:     foldBalance(movements),
			LastUpdated: time.Now().UTC(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetHistory retorna todos los movimientos del producto en orden de inserción,
// leídos dentro de una vista consistente.
func (uc *MovementUseCase) GetHistory(ctx context.Context, productID string) (*dto.HistoryResponse, error) {
	var resp *dto.HistoryResponse
	err := uc.runner.View(ctx, func(store repository.LedgerStore) error {
		product, err := store.GetProduct(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		movements, err := store.MovementsByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		items := make([]dto.MovementResponse, 0, len(movements))
		for _, m := range movements {
			items = append(items, *dto.ToMovementResponse(m))
		}
		resp = &dto.HistoryResponse{
			Movements:  items,
			TotalCount: len(items),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
