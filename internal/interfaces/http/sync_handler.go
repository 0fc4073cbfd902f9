package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-sync/internal/application/devicesync"
	"github.com/jhoicas/wms-sync/internal/application/dto"
	"github.com/jhoicas/wms-sync/pkg/logger"
)

// SyncHandler endpoints de sincronización de terminales.
type SyncHandler struct {
	coord *devicesync.Coordinator
	log   *logger.Logger
}

// NewSyncHandler construye el handler.
func NewSyncHandler(coord *devicesync.Coordinator, log *logger.Logger) *SyncHandler {
	return &SyncHandler{coord: coord, log: log}
}

// Download godoc
// @Summary      Descarga delta
// @Description  Sin last_sync devuelve todas las tablas. timestamp es la marca para la próxima descarga.
// @Description  Aplicar stock_removals antes que inventory_stock.
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SyncDownloadRequest  false  "last_sync"
// @Success      200   {object}  dto.SyncDownloadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/sync/download [post]
func (h *SyncHandler) Download(c *fiber.Ctx) error {
	var req dto.SyncDownloadRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.coord.DownloadSince(c.UserContext(), req.LastSync)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Upload godoc
// @Summary      Subida de operaciones
// @Description  Aplica las operaciones en orden, cada una en su transacción. Un fallo no detiene el lote;
// @Description  el resultado de cada operación indica success o el código de error.
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SyncUploadRequest  true  "operations"
// @Success      200   {object}  dto.SyncUploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sync/upload [post]
func (h *SyncHandler) Upload(c *fiber.Ctx) error {
	var req dto.SyncUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	results := h.coord.Upload(c.UserContext(), req.Operations)
	return c.JSON(dto.SyncUploadResponse{Success: true, Results: results})
}
