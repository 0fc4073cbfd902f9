package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-sync/pkg/logger"
)

// RequestLogger registra método, ruta, estado y duración de cada petición.
// Los terminales envían X-Device-ID; se incluye para rastrear lotes por dispositivo.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start))
		if device := c.Get("X-Device-ID"); device != "" {
			ev.Str("device_id", device)
		}
		ev.Msg("petición HTTP")
		return err
	}
}
