package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/stock/movements. Los campos
// presentes dependen de movement_type (unión discriminada); la validación de
// forma por tipo vive en application/stock.
type RegisterMovementRequest struct {
	MovementType string `json:"movement_type"`

	// CREATION
	ProductName        string  `json:"product_name,omitempty"`
	ProductSKU         string  `json:"product_sku,omitempty"`
	ProductDescription *string `json:"product_description,omitempty"`
	UnitOfMeasure      string  `json:"unit_of_measure,omitempty"`

	// INBOUND / OUTBOUND / ADJUSTMENT / DELETION
	ProductID string `json:"product_id,omitempty"`

	// Puntero para distinguir ausente de cero: CREATION acepta 0 y DELETION
	// ignora cualquier cantidad.
	QuantityChange *decimal.Decimal `json:"quantity_change,omitempty"`

	// INBOUND / OUTBOUND
	DocumentReference *string `json:"document_reference,omitempty"`

	// ADJUSTMENT / DELETION
	Reason *string `json:"reason,omitempty"`
}

// MovementResponse salida de un movimiento registrado.
type MovementResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"productId"`
	UserID            string          `json:"userId"`
	Type              string          `json:"type"`
	QuantityChange    decimal.Decimal `json:"quantityChange"`
	Reason            *string         `json:"reason"`
	DocumentReference *string         `json:"documentReference"`
	Timestamp         time.Time       `json:"timestamp"`
}

// ToMovementResponse mapea la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:                m.ID,
		ProductID:         m.ProductID,
		UserID:            m.UserID,
		Type:              m.Type,
		QuantityChange:    m.QuantityChange,
		Reason:            m.Reason,
		DocumentReference: m.DocumentReference,
		Timestamp:         m.Timestamp,
	}
}

// BalanceResponse salida de GET /api/stock/products/:id/balance.
// El saldo se recalcula siempre plegando el log completo de movimientos.
type BalanceResponse struct {
	ProductID   string          `json:"productId"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// HistoryResponse salida de GET /api/stock/products/:id/history.
type HistoryResponse struct {
	Movements  []MovementResponse `json:"movements"`
	TotalCount int                `json:"totalCount"`
}
