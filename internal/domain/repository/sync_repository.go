package repository

import (
	"context"
	"time"

	"github.com/jhoicas/wms-sync/internal/domain/entity"
)

// SyncRepository lecturas delta para la sincronización de dispositivos.
// since == nil devuelve la tabla completa. Las entidades hijas (líneas) se incluyen
// cuando su cabecera califica.
type SyncRepository interface {
	// Horizon devuelve la hora más reciente tal que toda escritura sellada antes de ella ya
	// es visible en el snapshot. La próxima marca de agua no puede superarla.
	Horizon(ctx context.Context) (time.Time, error)
	Locations(ctx context.Context, since *time.Time) ([]entity.Location, error)
	PurchaseOrders(ctx context.Context, since *time.Time) ([]entity.PurchaseOrder, error)
	PurchaseOrderLines(ctx context.Context, since *time.Time) ([]entity.PurchaseOrderLine, error)
	Stock(ctx context.Context, since *time.Time) ([]entity.StockRow, error)
	StockRemovals(ctx context.Context, since *time.Time) ([]entity.StockRemoval, error)
	Receipts(ctx context.Context, since *time.Time) ([]entity.Receipt, error)
	ReceiptLines(ctx context.Context, since *time.Time) ([]entity.ReceiptLine, error)
	Movements(ctx context.Context, since *time.Time) ([]entity.Movement, error)
}
