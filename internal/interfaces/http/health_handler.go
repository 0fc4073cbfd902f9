package http

import (
	"github.com/gofiber/fiber/v2"
)

// missingSourceCounter lo implementa *inventory.StockLedger.
type missingSourceCounter interface {
	MissingSourceCount() int64
}

// HealthHandler estado del servicio.
type HealthHandler struct {
	service string
	ledger  missingSourceCounter
}

// NewHealthHandler construye el handler.
func NewHealthHandler(service string, ledger missingSourceCounter) *HealthHandler {
	return &HealthHandler{service: service, ledger: ledger}
}

// Get godoc
// @Summary      Estado del servicio
// @Description  ledger_missing_source: descuentos ignorados por falta de stock de origen desde el arranque.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Get(c *fiber.Ctx) error {
	body := fiber.Map{"status": "ok", "service": h.service}
	if h.ledger != nil {
		body["ledger_missing_source"] = h.ledger.MissingSourceCount()
	}
	return c.JSON(body)
}
