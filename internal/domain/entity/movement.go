package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeCreation   = "CREATION"   // alta de producto + stock inicial
	MovementTypeInbound    = "INBOUND"    // entrada
	MovementTypeOutbound   = "OUTBOUND"   // salida
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste manual con justificación
	MovementTypeDeletion   = "DELETION"   // baja lógica del producto (delta 0)
)

// StockMovement es un registro inmutable del libro: nunca se modifica ni se
// borra. El saldo de un producto es la suma de QuantityChange de todos sus
// movimientos en orden de inserción.
type StockMovement struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"productId"`
	UserID            string          `json:"userId"`
	Type              string          `json:"type"`
	QuantityChange    decimal.Decimal `json:"quantityChange"`
	Reason            *string         `json:"reason"`
	DocumentReference *string         `json:"documentReference"`
	Timestamp         time.Time       `json:"timestamp"`
}
