package repository

import (
	"context"

	"github.com/jhoicas/wms-sync/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del log de traslados (solo inserción).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
}
