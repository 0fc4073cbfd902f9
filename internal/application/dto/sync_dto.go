package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sync/internal/domain/entity"
)

// SyncDownloadRequest body para POST /api/sync/download. Sin last_sync = bootstrap completo.
type SyncDownloadRequest struct {
	LastSync *string `json:"last_sync,omitempty"`
}

// SyncDownloadResponse filas modificadas desde la marca de agua, por entidad.
// Timestamp es la marca de agua que el cliente debe enviar en la próxima descarga.
type SyncDownloadResponse struct {
	Success   bool     `json:"success"`
	Bootstrap bool     `json:"bootstrap"`
	Data      SyncData `json:"data"`
	Timestamp string   `json:"timestamp"`
}

// SyncData entidades sincronizadas. Nunca son nil: una entidad sin cambios es una lista vacía.
type SyncData struct {
	Locations          []LocationRow          `json:"locations"`
	PurchaseOrders     []PurchaseOrderRow     `json:"purchase_orders"`
	PurchaseOrderLines []PurchaseOrderLineRow `json:"purchase_order_lines"`
	InventoryStock     []StockRow             `json:"inventory_stock"`
	StockRemovals      []StockRemovalRow      `json:"stock_removals"`
	GoodsReceipts      []ReceiptRow           `json:"goods_receipts"`
	GoodsReceiptItems  []ReceiptLineRow       `json:"goods_receipt_items"`
	InventoryTransfers []MovementRow          `json:"inventory_transfers"`
}

// Counts número de filas por entidad (logs).
func (d SyncData) Counts() map[string]int {
	return map[string]int{
		"locations":            len(d.Locations),
		"purchase_orders":      len(d.PurchaseOrders),
		"purchase_order_lines": len(d.PurchaseOrderLines),
		"inventory_stock":      len(d.InventoryStock),
		"stock_removals":       len(d.StockRemovals),
		"goods_receipts":       len(d.GoodsReceipts),
		"goods_receipt_items":  len(d.GoodsReceiptItems),
		"inventory_transfers":  len(d.InventoryTransfers),
	}
}

type LocationRow struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PurchaseOrderRow struct {
	ID        int64     `json:"id"`
	Number    string    `json:"po_number"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PurchaseOrderLineRow struct {
	ID              int64           `json:"id"`
	PurchaseOrderID int64           `json:"purchase_order_id"`
	ItemID          int64           `json:"item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit,omitempty"`
}

type StockRow struct {
	ID          int64              `json:"id"`
	ItemID      int64              `json:"item_id"`
	LocationID  int64              `json:"location_id"`
	ContainerID entity.ContainerID `json:"container_id"`
	Quantity    decimal.Decimal    `json:"quantity"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type StockRemovalRow struct {
	ItemID      int64              `json:"item_id"`
	LocationID  int64              `json:"location_id"`
	ContainerID entity.ContainerID `json:"container_id"`
	DeletedAt   time.Time          `json:"deleted_at"`
}

type ReceiptRow struct {
	ID              int64     `json:"id"`
	PurchaseOrderID *int64    `json:"purchase_order_id"`
	InvoiceNumber   string    `json:"invoice_number,omitempty"`
	Actor           string    `json:"actor"`
	ReceiptDate     time.Time `json:"receipt_date"`
	CreatedAt       time.Time `json:"created_at"`
}

type ReceiptLineRow struct {
	ID          int64              `json:"id"`
	ReceiptID   int64              `json:"receipt_id"`
	ItemID      int64              `json:"item_id"`
	Quantity    decimal.Decimal    `json:"quantity"`
	ContainerID entity.ContainerID `json:"container_id"`
}

type MovementRow struct {
	ID             int64              `json:"id"`
	TransferRef    string             `json:"transfer_ref"`
	ItemID         int64              `json:"item_id"`
	FromLocationID int64              `json:"from_location_id"`
	ToLocationID   int64              `json:"to_location_id"`
	Quantity       decimal.Decimal    `json:"quantity"`
	ContainerID    entity.ContainerID `json:"container_id"`
	OperationType  string             `json:"operation_type"`
	Actor          string             `json:"actor"`
	TransferDate   time.Time          `json:"transfer_date"`
	CreatedAt      time.Time          `json:"created_at"`
}

// SyncOperation operación pendiente enviada por un dispositivo.
// Data tiene la forma de CreateReceiptRequest o CreateTransferRequest según Type.
type SyncOperation struct {
	LocalID        int64           `json:"local_id"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
	Type           string          `json:"type"`
	Data           json.RawMessage `json:"data"`
}

// SyncUploadRequest body para POST /api/sync/upload.
type SyncUploadRequest struct {
	Operations []SyncOperation `json:"operations"`
}

// SyncOperationResult resultado de una operación, en el mismo orden del lote.
type SyncOperationResult struct {
	LocalID        int64  `json:"local_id"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
	Type           string `json:"type"`
	Success        bool   `json:"success"`
	Replayed       bool   `json:"replayed,omitempty"` // respondido desde el registro de idempotencia
	ReceiptID      int64  `json:"receipt_id,omitempty"`
	TransferRef    string `json:"transfer_ref,omitempty"`
	ErrorCode      string `json:"error_code,omitempty"`
	Message        string `json:"message,omitempty"`
}

// SyncUploadResponse resultados por operación. Success indica que el lote fue procesado,
// no que todas las operaciones se aplicaron.
type SyncUploadResponse struct {
	Success bool                  `json:"success"`
	Results []SyncOperationResult `json:"results"`
}
