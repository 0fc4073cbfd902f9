package devicesync

import (
	"context"

	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/internal/domain/repository"
)

// SnapshotRunner ejecuta lecturas de sincronización sobre un snapshot consistente
// (transacción de solo lectura).
type SnapshotRunner interface {
	RunReadOnly(ctx context.Context, fn func(repo repository.SyncRepository) error) error
}

// ReceiptCreator caso de uso de recepciones (inventory.ReceiptProcessor).
type ReceiptCreator interface {
	CreateReceipt(ctx context.Context, in inventory.ReceiptInput) (inventory.ReceiptResult, error)
}

// TransferCreator caso de uso de traslados (inventory.TransferProcessor).
type TransferCreator interface {
	CreateTransfer(ctx context.Context, in inventory.TransferInput) (inventory.TransferResult, error)
}

// FailureNotifier aviso de operaciones de dispositivos que fallaron.
type FailureNotifier interface {
	OperationFailed(ctx context.Context, ev OperationFailure) error
}

// OperationFailure datos del aviso de fallo.
type OperationFailure struct {
	LocalID   int64
	Type      string
	Actor     string
	ErrorCode string
	Message   string
}

type nopFailureNotifier struct{}

func (nopFailureNotifier) OperationFailed(context.Context, OperationFailure) error { return nil }
