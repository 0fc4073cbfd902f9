package main

import (
	"context"
	"os"

	"github.com/jhoicas/wms-sync/internal/application/devicesync"
	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/internal/infrastructure/notify"
	"github.com/jhoicas/wms-sync/internal/infrastructure/postgres"
	"github.com/jhoicas/wms-sync/pkg/config"
	"github.com/jhoicas/wms-sync/pkg/logger"
)

// connectPostgres arma el mismo grafo que cmd/api sobre la base configurada.
// Los logs van a stderr vía zerolog; stdout queda para la salida del comando.
func connectPostgres(ctx context.Context) (*backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Writer: os.Stderr})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	var (
		notifier        inventory.Notifier
		failureNotifier devicesync.FailureNotifier
	)
	if cfg.Notify.Enabled() {
		tg, err := notify.NewTelegram(cfg.Notify, log)
		if err != nil {
			pool.Close()
			return nil, err
		}
		notifier, failureNotifier = tg, tg
	}

	txRunner := postgres.NewTxRunner(pool)
	ledger := inventory.NewStockLedger(cfg.Warehouse.StrictDecrement, log)
	coord := devicesync.NewCoordinator(
		txRunner,
		inventory.NewReceiptProcessor(txRunner, ledger, notifier, log, cfg.Warehouse.ReceivingLocationID),
		inventory.NewTransferProcessor(txRunner, ledger, notifier, log, cfg.Notify.LargeTransferQty),
		postgres.NewProcessedRequestRepository(pool),
		failureNotifier, log, cfg.Sync.WatermarkLag,
	)
	return &backend{
		coord:   coord,
		migrate: func(ctx context.Context) ([]string, error) { return postgres.Migrate(ctx, pool) },
		close:   pool.Close,
	}, nil
}
