package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-sync/internal/application/devicesync"
	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	Receipts  *inventory.ReceiptProcessor
	Transfers *inventory.TransferProcessor
	Sync      *devicesync.Coordinator
	Ledger    *inventory.StockLedger
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.NewNop()
	}
	app.Use(RequestLogger(log))

	// Un *StockLedger nil dentro de la interfaz no sería nil.
	var ledger missingSourceCounter
	if deps.Ledger != nil {
		ledger = deps.Ledger
	}
	app.Get("/health", NewHealthHandler(deps.AppName, ledger).Get)

	// Operaciones en línea
	v1 := app.Group("/v1")
	v1.Post("/goods-receipts", NewReceiptHandler(deps.Receipts, log).Create)
	v1.Post("/transfers", NewTransferHandler(deps.Transfers, log).Create)

	// Terminales desconectados
	sync := app.Group("/api/sync")
	syncHandler := NewSyncHandler(deps.Sync, log)
	sync.Post("/download", syncHandler.Download)
	sync.Post("/upload", syncHandler.Upload)
}
