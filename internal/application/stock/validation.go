package stock

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Límites de validación del libro de inventario.
const (
	ProductNameMin = 3
	ProductNameMax = 100
	SKUMin         = 1
	SKUMax         = 100
	DescriptionMax = 500
	ReasonMin      = 10
	ReasonMax      = 200
	DocRefMax      = 50
)

// skuHasWhitespace detecta cualquier espacio en blanco Unicode en el SKU.
// unicode.IsSpace cubre también NBSP y los espacios tipográficos, que la clase
// \S de regexp dejaría pasar.
func skuHasWhitespace(sku string) bool {
	return strings.ContainsFunc(sku, unicode.IsSpace)
}

// ValidationError acumula los detalles de campo de una petición mal formada.
// Se produce antes de tocar cualquier estado.
type ValidationError struct {
	Details []dto.FieldDetail
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación fallida: %d campo(s) inválido(s)", len(e.Details))
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// movementInput es la unión discriminada ya validada. Cada tipo de movimiento
// tiene su propia forma; el caso de uso hace switch sobre el tipo concreto.
type movementInput interface {
	movementType() string
}

type creationInput struct {
	ProductName        string          `json:"product_name" validate:"min=3,max=100"`
	ProductSKU         string          `json:"product_sku" validate:"min=1,max=100,sku"`
	ProductDescription *string         `json:"product_description" validate:"omitempty,max=500"`
	UnitOfMeasure      string          `json:"unit_of_measure" validate:"oneof=UN CX KG L M"`
	QuantityChange     decimal.Decimal `json:"quantity_change" validate:"gte=0"`
}

func (creationInput) movementType() string { return entity.MovementTypeCreation }

type inboundInput struct {
	ProductID         string          `json:"product_id" validate:"uuid"`
	QuantityChange    decimal.Decimal `json:"quantity_change" validate:"gt=0"`
	DocumentReference *string         `json:"document_reference" validate:"omitempty,max=50"`
}

func (inboundInput) movementType() string { return entity.MovementTypeInbound }

type outboundInput struct {
	ProductID string `json:"product_id" validate:"uuid"`
	// El cliente envía la magnitud en positivo; el libro guarda el delta en
	// negativo (el caso de uso aplica el cambio de signo).
	QuantityChange    decimal.Decimal `json:"quantity_change" validate:"gt=0"`
	DocumentReference *string         `json:"document_reference" validate:"omitempty,max=50"`
}

func (outboundInput) movementType() string { return entity.MovementTypeOutbound }

type adjustmentInput struct {
	ProductID      string          `json:"product_id" validate:"uuid"`
	QuantityChange decimal.Decimal `json:"quantity_change" validate:"ne=0"`
	Reason         *string         `json:"reason" validate:"required,min=10,max=200"`
}

func (adjustmentInput) movementType() string { return entity.MovementTypeAdjustment }

type deletionInput struct {
	ProductID string  `json:"product_id" validate:"uuid"`
	Reason    *string `json:"reason" validate:"required,min=10,max=200"`
}

func (deletionInput) movementType() string { return entity.MovementTypeDeletion }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Reportar los campos con su nombre de wire (tag json), no el de Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})

	// decimal.Decimal -> float64 para que apliquen gt/gte/ne numéricos.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
		return !skuHasWhitespace(fl.Field().String())
	})

	return v
}

// parseMovementRequest valida la forma de la petición contra la variante que
// corresponde a movement_type y retorna la unión discriminada ya tipada.
// Nunca toca el store: en caso de error el estado queda intacto.
func parseMovementRequest(in dto.RegisterMovementRequest) (movementInput, *ValidationError) {
	switch in.MovementType {
	case entity.MovementTypeCreation:
		if verr := requireQuantity(in); verr != nil {
			return nil, verr
		}
		input := creationInput{
			ProductName:        in.ProductName,
			ProductSKU:         normalizeSKU(in.ProductSKU),
			ProductDescription: in.ProductDescription,
			UnitOfMeasure:      in.UnitOfMeasure,
			QuantityChange:     *in.QuantityChange,
		}
		return checkShape(input)

	case entity.MovementTypeInbound:
		if verr := requireQuantity(in); verr != nil {
			return nil, verr
		}
		input := inboundInput{
			ProductID:         in.ProductID,
			QuantityChange:    *in.QuantityChange,
			DocumentReference: in.DocumentReference,
		}
		return checkShape(input)

	case entity.MovementTypeOutbound:
		if verr := requireQuantity(in); verr != nil {
			return nil, verr
		}
		input := outboundInput{
			ProductID:         in.ProductID,
			QuantityChange:    *in.QuantityChange,
			DocumentReference: in.DocumentReference,
		}
		return checkShape(input)

	case entity.MovementTypeAdjustment:
		if verr := requireQuantity(in); verr != nil {
			return nil, verr
		}
		input := adjustmentInput{
			ProductID:      in.ProductID,
			QuantityChange: *in.QuantityChange,
			Reason:         in.Reason,
		}
		return checkShape(input)

	case entity.MovementTypeDeletion:
		// DELETION ignora cualquier cantidad enviada: el delta siempre es 0.
		input := deletionInput{
			ProductID: in.ProductID,
			Reason:    in.Reason,
		}
		return checkShape(input)

	default:
		return nil, &ValidationError{Details: []dto.FieldDetail{{
			Field:   "movement_type",
			Rule:    "oneof",
			Message: "debe ser CREATION, INBOUND, OUTBOUND, ADJUSTMENT o DELETION",
		}}}
	}
}

// requireQuantity exige la presencia de quantity_change (puntero nil = ausente;
// no confundir con un cero explícito, que sí es forma válida para CREATION).
func requireQuantity(in dto.RegisterMovementRequest) *ValidationError {
	if in.QuantityChange == nil {
		return &ValidationError{Details: []dto.FieldDetail{{
			Field:   "quantity_change",
			Rule:    "required",
			Message: "es requerido",
		}}}
	}
	return nil
}

// checkShape corre el validador sobre la variante y traduce cada violación a
// un detalle de campo con mensaje legible.
func checkShape[T movementInput](input T) (movementInput, *ValidationError) {
	err := validate.Struct(input)
	if err == nil {
		return input, nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, &ValidationError{Details: []dto.FieldDetail{{
			Field:   "body",
			Rule:    "invalid",
			Message: err.Error(),
		}}}
	}
	details := make([]dto.FieldDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, dto.FieldDetail{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: messageForTag(fe),
		})
	}
	return nil, &ValidationError{Details: details}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("no debe superar %s caracteres", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual que %s", fe.Param())
	case "ne":
		return fmt.Sprintf("no puede ser %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	case "uuid":
		return "debe ser un UUID válido"
	case "sku":
		return "no puede contener espacios en blanco"
	default:
		return fmt.Sprintf("no cumple la regla %s", fe.Tag())
	}
}

// normalizeSKU lleva el SKU a NFC para que la unicidad no dependa de la forma
// Unicode en que el cliente compuso los caracteres.
func normalizeSKU(sku string) string {
	return norm.NFC.String(sku)
}
