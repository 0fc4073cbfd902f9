package repository

import (
	"context"

	"github.com/jhoicas/wms-sync/internal/domain/entity"
)

// LocationRepository resuelve ubicaciones. Devuelve nil si no existe.
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
}
