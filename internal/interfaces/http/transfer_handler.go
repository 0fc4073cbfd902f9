package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-sync/internal/application/dto"
	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/pkg/logger"
)

// TransferHandler maneja los traslados entre ubicaciones.
type TransferHandler struct {
	uc  *inventory.TransferProcessor
	log *logger.Logger
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *inventory.TransferProcessor, log *logger.Logger) *TransferHandler {
	return &TransferHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar traslado
// @Description  operation_type: container_move (pallet_transfer), loose_move (box_transfer)
// @Description  o split_from_container (box_from_pallet). Vacío = loose_move.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                     false  "Clave de idempotencia"
// @Param        body             body    dto.CreateTransferRequest  true   "header + items"
// @Success      200   {object}  dto.CreateTransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /v1/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	in, err := inventory.TransferInputFromRequest(req, "")
	if err != nil {
		return writeError(c, h.log, err)
	}
	in.IdempotencyKey = c.Get("Idempotency-Key")

	out, err := h.uc.CreateTransfer(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.CreateTransferResponse{
		Status:             out.Status,
		TransferRef:        out.TransferRef,
		MissingSourceLines: out.MissingSourceLines,
	})
}
