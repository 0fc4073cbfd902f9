package repository

import (
	"context"

	"github.com/jhoicas/wms-sync/internal/domain/entity"
)

// ProcessedRequestRepository registro de idempotencia de operaciones de dispositivos.
type ProcessedRequestRepository interface {
	// Get devuelve nil si la clave no fue registrada.
	Get(ctx context.Context, key string) (*entity.ProcessedRequest, error)
	// Save falla con domain.ErrDuplicate si la clave ya existe.
	Save(ctx context.Context, req *entity.ProcessedRequest) error
}
