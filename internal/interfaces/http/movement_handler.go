package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// placeholderUserID actor fijo mientras no hay autenticación (fuera de
// alcance): toda mutación queda atribuida a este principal.
const placeholderUserID = "00000000-0000-0000-0000-000000000000"

// MovementHandler maneja las peticiones HTTP del libro de stock.
type MovementHandler struct {
	uc     *stock.MovementUseCase
	kardex *stock.KardexUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *stock.MovementUseCase, kardex *stock.KardexUseCase) *MovementHandler {
	return &MovementHandler{uc: uc, kardex: kardex}
}

// Register godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "movement_type discrimina la forma: CREATION, INBOUND, OUTBOUND, ADJUSTMENT o DELETION"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterMovement(c.Context(), placeholderUserID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Balance godoc
// @Summary      Saldo actual de un producto
// @Tags         stock
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/balance [get]
func (h *MovementHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.GetBalance(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Tags         stock
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.HistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/history [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.GetHistory(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Kardex godoc
// @Summary      Kardex del producto en PDF
// @Tags         stock
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/kardex [get]
func (h *MovementHandler) Kardex(c *fiber.Ctx) error {
	pdfBytes, err := h.kardex.GenerateKardex(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="kardex.pdf"`)
	return c.Send(pdfBytes)
}

// writeDomainError traduce el error de dominio al status y cuerpo HTTP:
// validación de forma → 400, no encontrado → 404, producto inactivo → 400,
// conflictos de regla de negocio (SKU duplicado, stock) → 409.
func writeDomainError(c *fiber.Ctx, err error) error {
	var verr *stock.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "validación fallida",
			Details: verr.Details,
		})
	}
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrDuplicateSKU):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_SKU", Message: "el SKU ya está registrado"})
	case errors.Is(err, domain.ErrProductInactive):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PRODUCT_INACTIVE", Message: "el producto está inactivo y no acepta movimientos"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrNegativeStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NEGATIVE_STOCK_RESULT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
