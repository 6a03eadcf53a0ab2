package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovementUC *stock.MovementUseCase
	KardexUC   *stock.KardexUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Stock ledger
	stockGroup := api.Group("/stock")
	handler := NewMovementHandler(deps.MovementUC, deps.KardexUC)
	stockGroup.Post("/movements", handler.Register)
	stockGroup.Get("/products/:id/balance", handler.Balance)
	stockGroup.Get("/products/:id/history", handler.History)
	stockGroup.Get("/products/:id/kardex", handler.Kardex)
}
