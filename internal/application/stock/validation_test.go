package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Validación de forma por tipo de movimiento. Toda petición mal formada debe
// producir un ValidationError con detalles de campo, sin tocar el estado.
// ──────────────────────────────────────────────────────────────────────────────

// requireValidationError exige que err sea un ValidationError y retorna sus
// detalles para inspección.
func requireValidationError(t *testing.T, err error) []dto.FieldDetail {
	t.Helper()
	require.Error(t, err)
	var verr *stock.ValidationError
	require.ErrorAs(t, err, &verr, "el error debe ser de validación: %v", err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	require.NotEmpty(t, verr.Details)
	return verr.Details
}

// fieldsOf extrae los nombres de campo reportados.
func fieldsOf(details []dto.FieldDetail) []string {
	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.Field)
	}
	return fields
}

func TestValidacion_MovementTypeDesconocido(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.RegisterMovement(context.Background(), testUserID, dto.RegisterMovementRequest{
		MovementType:   "TRANSFER",
		ProductID:      "8f14e45f-ceea-467f-a8d4-9f1a0c3b2e01",
		QuantityChange: dec("5"),
	})

	details := requireValidationError(t, err)
	assert.Contains(t, fieldsOf(details), "movement_type")
}

func TestValidacion_QuantityChangeAusente(t *testing.T) {
	uc, _ := newUseCase()

	// Ausente (nil) no es lo mismo que cero: la petición sin cantidad se
	// rechaza incluso para CREATION, que sí acepta un 0 explícito.
	_, err := uc.RegisterMovement(context.Background(), testUserID, dto.RegisterMovementRequest{
		MovementType:  entity.MovementTypeCreation,
		ProductName:   "Producto sin cantidad",
		ProductSKU:    "SINQTY-001",
		UnitOfMeasure: entity.UnitUN,
	})

	details := requireValidationError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "quantity_change", details[0].Field)
	assert.Equal(t, "required", details[0].Rule)
}

func TestValidacion_CreationCamposInvalidos(t *testing.T) {
	uc, store := newUseCase()

	_, err := uc.RegisterMovement(context.Background(), testUserID, dto.RegisterMovementRequest{
		MovementType:   entity.MovementTypeCreation,
		ProductName:    "ab", // menos de 3 caracteres
		ProductSKU:     "SKU CON ESPACIOS",
		UnitOfMeasure:  "TONELADA",
		QuantityChange: dec("-1"),
	})

	details := requireValidationError(t, err)
	fields := fieldsOf(details)
	assert.Contains(t, fields, "product_name")
	assert.Contains(t, fields, "product_sku")
	assert.Contains(t, fields, "unit_of_measure")
	assert.Contains(t, fields, "quantity_change")

	// Nada llegó al store.
	exists, serr := store.SKUExists(context.Background(), "SKU CON ESPACIOS")
	require.NoError(t, serr)
	assert.False(t, exists, "una petición inválida no debe dejar rastro")
}

func TestValidacion_SKUConTabulacion(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.RegisterMovement(context.Background(), testUserID, dto.RegisterMovementRequest{
		MovementType:   entity.MovementTypeCreation,
		ProductName:    "Producto con SKU inválido",
		ProductSKU:     "ABC\t123",
		UnitOfMeasure:  entity.UnitUN,
		QuantityChange: dec("1"),
	})

	details := requireValidationError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "product_sku", details[0].Field)
	assert.Equal(t, "sku", details[0].Rule)
}

// El rechazo de espacios en el SKU cubre todo espacio Unicode, no solo los
// ASCII: NBSP, espacios tipográficos y NEL también invalidan.
func TestValidacion_SKUConEspacioUnicode(t *testing.T) {
	uc, store := newUseCase()

	for _, sku := range []string{
		"ABC\u00a0123", // no-break space
		"ABC\u2002123", // en space
		"ABC\u3000123", // ideographic space
		"ABC\u0085123", // next line
	} {
		_, err := uc.RegisterMovement(context.Background(), testUserID, dto.RegisterMovementRequest{
			MovementType:   entity.MovementTypeCreation,
			ProductName:    "Producto con espacio Unicode en el SKU",
			ProductSKU:     sku,
			UnitOfMeasure:  entity.UnitUN,
			QuantityChange: dec("1"),
		})

		details := requireValidationError(t, err)
		require.Len(t, details, 1, "SKU %q debe fallar solo por la regla sku", sku)
		assert.Equal(t, "product_sku", details[0].Field)
		assert.Equal(t, "sku", details[0].Rule)

		exists, serr := store.SKUExists(context.Background(), sku)
		require.NoError(t, serr)
		assert.False(t, exists, "el SKU %q rechazado no debe quedar indexado", sku)
	}
}

func TestValidacion_InboundCantidadNoPositiva(t *testing.T) {
	uc, _ := newUseCase()
	productID := mustCreate(t, uc, "VAL-IN-001", "10")

	for _, qty := range []string{"0", "-3"} {
		_, err := uc.RegisterMovement(context.Background(), testUserID, dto.RegisterMovementRequest{
			MovementType:   entity.MovementTypeInbound,
			ProductID:      productID,
			QuantityChange: dec(qty),
		})
		details := requireValidationError(t, err)
		assert.Contains(t, fieldsOf(details), "quantity_change",
			"INBOUND con cantidad %s debe rechazarse", qty)
	}
}

func TestValidacion_OutboundProductIDNoUUID(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.RegisterMovement(context.Background(), testUserID, dto.RegisterMovementRequest{
		MovementType:   entity.MovementTypeOutbound,
		ProductID:      "esto-no-es-un-uuid",
		QuantityChange: dec("1"),
	})

	details := requireValidationError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "product_id", details[0].Field)
	assert.Equal(t, "uuid", details[0].Rule)
}

func TestValidacion_DocumentReferenceMuyLargo(t *testing.T) {
	uc, _ := newUseCase()
	productID := mustCreate(t, uc, "VAL-DOC-001", "10")

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'X'
	}
	ref := string(long)

	_, err := uc.RegisterMovement(context.Background(), testUserID, dto.RegisterMovementRequest{
		MovementType:      entity.MovementTypeInbound,
		ProductID:         productID,
		QuantityChange:    dec("1"),
		DocumentReference: &ref,
	})

	details := requireValidationError(t, err)
	assert.Contains(t, fieldsOf(details), "document_reference")
}

func TestValidacion_AdjustmentCantidadCero(t *testing.T) {
	uc, _ := newUseCase()
	productID := mustCreate(t, uc, "VAL-ADJ-001", "10")

	// Un ajuste de cero no ajusta nada: se rechaza.
	_, err := uc.RegisterMovement(context.Background(), testUserID, dto.RegisterMovementRequest{
		MovementType:   entity.MovementTypeAdjustment,
		ProductID:      productID,
		QuantityChange: dec("0"),
		Reason:         strPtr("razón suficientemente larga para pasar"),
	})

	details := requireValidationError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "quantity_change", details[0].Field)
	assert.Equal(t, "ne", details[0].Rule)
}

func TestValidacion_RazonRequeridaYConLimites(t *testing.T) {
	uc, _ := newUseCase()
	productID := mustCreate(t, uc, "VAL-RZN-001", "10")

	// Sin razón.
	_, err := uc.RegisterMovement(context.Background(), testUserID, dto.RegisterMovementRequest{
		MovementType:   entity.MovementTypeAdjustment,
		ProductID:      productID,
		QuantityChange: dec("1"),
	})
	details := requireValidationError(t, err)
	assert.Contains(t, fieldsOf(details), "reason")

	// Razón demasiado corta (menos de 10 caracteres).
	_, err = uc.RegisterMovement(context.Background(), testUserID, dto.RegisterMovementRequest{
		MovementType:   entity.MovementTypeAdjustment,
		ProductID:      productID,
		QuantityChange: dec("1"),
		Reason:         strPtr("corta"),
	})
	details = requireValidationError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "reason", details[0].Field)
	assert.Equal(t, "min", details[0].Rule)

	// DELETION también la exige.
	_, err = uc.RegisterMovement(context.Background(), testUserID, dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeDeletion,
		ProductID:    productID,
	})
	details = requireValidationError(t, err)
	assert.Contains(t, fieldsOf(details), "reason")
}

// El SKU se normaliza a NFC antes de validar y de consultar unicidad: la misma
// palabra compuesta de dos formas Unicode distintas es el mismo SKU.
func TestValidacion_SKUNormalizadoNFC(t *testing.T) {
	uc, _ := newUseCase()

	// É precompuesto (U+00C9) vs E + acento combinante (U+0045 U+0301).
	mustCreate(t, uc, "CAF\u00c9-1", "10")

	_, err := uc.RegisterMovement(context.Background(), testUserID, dto.RegisterMovementRequest{
		MovementType:   entity.MovementTypeCreation,
		ProductName:    "Mismo SKU en forma descompuesta",
		ProductSKU:     "CAFE\u0301-1",
		UnitOfMeasure:  entity.UnitUN,
		QuantityChange: dec("5"),
	})

	assert.True(t, errors.Is(err, domain.ErrDuplicateSKU),
		"formas NFC y NFD del mismo SKU deben colisionar")
}
