package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sync/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto sobre órdenes de compra (propiedad del sistema externo).
type PurchaseOrderRepository interface {
	// GetForUpdate obtiene la orden y bloquea la fila. Devuelve nil si no existe.
	GetForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	// OrderedByItem suma la cantidad pedida por artículo.
	OrderedByItem(ctx context.Context, id int64) (map[int64]decimal.Decimal, error)
	// MarkCompleted pasa la orden de OPEN a COMPLETED; devuelve false si ya estaba completada.
	MarkCompleted(ctx context.Context, id int64) (bool, error)
}
