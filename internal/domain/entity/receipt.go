package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt cabecera de una recepción de mercancía (tabla goods_receipts).
type Receipt struct {
	ID              int64
	PurchaseOrderID *int64
	InvoiceNumber   string
	Actor           string
	ReceiptDate     time.Time
	CreatedAt       time.Time
}

// ReceiptLine línea de una recepción (tabla goods_receipt_items).
type ReceiptLine struct {
	ID        int64
	ReceiptID int64
	ItemID    int64
	Quantity  decimal.Decimal
	Container ContainerID
}
