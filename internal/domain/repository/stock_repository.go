package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sync/internal/domain/entity"
)

// StockRepository define el puerto sobre la tabla de saldos (inventory_stock).
// Solo StockLedger lo usa para escribir; siempre dentro de una transacción.
type StockRepository interface {
	// GetForUpdate obtiene la fila por clave exacta y la bloquea (SELECT FOR UPDATE).
	// Devuelve nil si no existe.
	GetForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockRow, error)
	// Insert crea la fila; si otra transacción la creó en paralelo suma la cantidad.
	Insert(ctx context.Context, key entity.StockKey, quantity decimal.Decimal) error
	UpdateQuantity(ctx context.Context, id int64, quantity decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
}
