package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sync/internal/domain/entity"
)

// ReceiptRepository define el puerto de persistencia de recepciones de mercancía.
type ReceiptRepository interface {
	// Create inserta la cabecera y asigna receipt.ID.
	Create(ctx context.Context, receipt *entity.Receipt) error
	// AddLine inserta una línea y asigna line.ID.
	AddLine(ctx context.Context, line *entity.ReceiptLine) error
	// ReceivedByOrder suma la cantidad recibida por artículo en todas las recepciones de la orden.
	ReceivedByOrder(ctx context.Context, purchaseOrderID int64) (map[int64]decimal.Decimal, error)
}
