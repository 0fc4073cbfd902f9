package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/wms-sync/internal/application/devicesync"
	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and devicesync.SnapshotRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ devicesync.SnapshotRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventory.Repos{
		Stock:     NewStockRepository(tx),
		Movements: NewMovementRepository(tx),
		Receipts:  NewReceiptRepository(tx),
		Orders:    NewPurchaseOrderRepository(tx),
		Locations: NewLocationRepository(tx),
		Requests:  NewProcessedRequestRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReadOnly ejecuta fn en una transacción REPEATABLE READ de solo lectura: todas las
// consultas de la descarga ven el mismo snapshot. El horizonte de escritura se lee antes de
// abrir la tx, así lo confirmado entre ambas lecturas queda dentro del snapshot.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(repo repository.SyncRepository) error) error {
	horizon, err := WriteHorizon(ctx, r.pool)
	if err != nil {
		return err
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin read-only transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSyncRepository(tx, horizon)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit read-only transaction: %w", err)
	}
	return nil
}
