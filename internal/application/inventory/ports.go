package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sync/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Stock     repository.StockRepository
	Movements repository.MovementRepository
	Receipts  repository.ReceiptRepository
	Orders    repository.PurchaseOrderRepository
	Locations repository.LocationRepository
	Requests  repository.ProcessedRequestRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// OrderCompletion evento emitido cuando una recepción completa una orden de compra.
type OrderCompletion struct {
	PurchaseOrderID int64
	ReceiptID       int64
	Actor           string
	CompletedAt     time.Time
}

// LargeTransfer evento emitido cuando un traslado supera el umbral configurado.
type LargeTransfer struct {
	TransferRef      string
	Mode             string
	SourceLocationID int64
	TargetLocationID int64
	Container        string
	TotalQuantity    decimal.Decimal
	Lines            int
	Actor            string
}

// Notifier avisos posteriores al commit. Un error de notificación nunca revierte la operación.
type Notifier interface {
	OrderCompleted(ctx context.Context, ev OrderCompletion) error
	LargeTransfer(ctx context.Context, ev LargeTransfer) error
}

// NopNotifier descarta los avisos.
type NopNotifier struct{}

func (NopNotifier) OrderCompleted(context.Context, OrderCompletion) error { return nil }
func (NopNotifier) LargeTransfer(context.Context, LargeTransfer) error    { return nil }
