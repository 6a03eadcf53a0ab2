package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas). Todos se detectan antes de
// mutar estado: validate-then-commit, sin rollback parcial.
var (
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrDuplicateSKU      = errors.New("el SKU ya está registrado")
	ErrProductInactive   = errors.New("el producto está inactivo y no acepta movimientos")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNegativeStock     = errors.New("el ajuste dejaría el stock en negativo")
	ErrInvalidInput      = errors.New("entrada inválida")
)

// InsufficientStockError detalla un OUTBOUND rechazado: el saldo actual viaja
// en el mensaje para guiar al operador. Unwrap permite errors.Is(ErrInsufficientStock).
type InsufficientStockError struct {
	Current decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: saldo actual %s", e.Current.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NegativeStockError detalla un ADJUSTMENT negativo rechazado.
type NegativeStockError struct {
	Current decimal.Decimal
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("el ajuste deja el stock en negativo: saldo actual %s", e.Current.String())
}

func (e *NegativeStockError) Unwrap() error { return ErrNegativeStock }
