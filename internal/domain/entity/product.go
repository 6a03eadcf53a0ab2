package entity

import "time"

// Unidades de medida permitidas para un producto.
const (
	UnitUN = "UN" // unidad
	UnitCX = "CX" // caja
	UnitKG = "KG" // kilogramo
	UnitL  = "L"  // litro
	UnitM  = "M"  // metro
)

// Units lista las unidades válidas en orden estable (validación y documentación).
var Units = []string{UnitUN, UnitCX, UnitKG, UnitL, UnitM}

// Estados del ciclo de vida de un producto. Un producto nace ACTIVE y solo
// pasa a INACTIVE mediante un movimiento DELETION; nunca vuelve a ACTIVE.
const (
	ProductStatusActive   = "ACTIVE"
	ProductStatusInactive = "INACTIVE"
)

// Product representa un producto del libro de inventario. El SKU es único
// globalmente y la unicidad no se libera aunque el producto quede inactivo.
// No guarda stock: el saldo se deriva siempre de los movimientos.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	Description   *string   `json:"description"`
	UnitOfMeasure string    `json:"unitOfMeasure"`
	Status        string    `json:"status"`
	DateCreated   time.Time `json:"dateCreated"`
	DateModified  time.Time `json:"dateModified"`
}

// IsActive indica si el producto acepta nuevos movimientos.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
