package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/wms-sync/internal/application/devicesync"
	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/internal/infrastructure/notify"
	"github.com/jhoicas/wms-sync/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/wms-sync/internal/interfaces/http"
	"github.com/jhoicas/wms-sync/pkg/config"
	"github.com/jhoicas/wms-sync/pkg/logger"

	_ "github.com/jhoicas/wms-sync/docs"
)

// @title        WMS Sync API
// @version      1.0
// @description  Ledger de stock por ubicación y pallet, recepciones, traslados y sincronización de terminales.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int64("receiving_location_id", cfg.Warehouse.ReceivingLocationID).
		Bool("strict_decrement", cfg.Warehouse.StrictDecrement).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Avisos por Telegram solo si hay token y chat configurados
	var (
		notifier        inventory.Notifier
		failureNotifier devicesync.FailureNotifier
	)
	if cfg.Notify.Enabled() {
		tg, err := notify.NewTelegram(cfg.Notify, log)
		if err != nil {
			log.Fatal().Err(err).Msg("notificador Telegram")
		}
		notifier, failureNotifier = tg, tg
	} else {
		log.Info().Msg("notificaciones deshabilitadas (TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID vacíos)")
	}

	txRunner := postgres.NewTxRunner(pool)
	ledger := inventory.NewStockLedger(cfg.Warehouse.StrictDecrement, log)
	receiptUC := inventory.NewReceiptProcessor(txRunner, ledger, notifier, log, cfg.Warehouse.ReceivingLocationID)
	transferUC := inventory.NewTransferProcessor(txRunner, ledger, notifier, log, cfg.Notify.LargeTransferQty)
	syncCoord := devicesync.NewCoordinator(
		txRunner, receiptUC, transferUC,
		postgres.NewProcessedRequestRepository(pool),
		failureNotifier, log, cfg.Sync.WatermarkLag,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "WMS Sync API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		Receipts:  receiptUC,
		Transfers: transferUC,
		Sync:      syncCoord,
		Ledger:    ledger,
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
