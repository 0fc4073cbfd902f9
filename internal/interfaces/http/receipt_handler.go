package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-sync/internal/application/dto"
	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/pkg/logger"
)

// ReceiptHandler maneja las recepciones de mercancía.
type ReceiptHandler struct {
	uc  *inventory.ReceiptProcessor
	log *logger.Logger
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *inventory.ReceiptProcessor, log *logger.Logger) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar recepción de mercancía
// @Description  Crea la recepción, acredita cada línea en la rampa de recepción y cierra la
// @Description  orden de compra si quedó completa. Idempotency-Key opcional.
// @Tags         goods-receipts
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                    false  "Clave de idempotencia"
// @Param        body             body    dto.CreateReceiptRequest  true   "header + items"
// @Success      201   {object}  dto.CreateReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /v1/goods-receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	in, err := inventory.ReceiptInputFromRequest(req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	in.IdempotencyKey = c.Get("Idempotency-Key")

	out, err := h.uc.CreateReceipt(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateReceiptResponse{
		ReceiptID:      out.ReceiptID,
		Status:         "success",
		OrderCompleted: out.OrderCompleted,
	})
}
