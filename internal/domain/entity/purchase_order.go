package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de compra. El motor solo transiciona OPEN → COMPLETED.
const (
	PurchaseOrderOpen      = "OPEN"
	PurchaseOrderCompleted = "COMPLETED"
)

// PurchaseOrder orden de compra administrada por el sistema de pedidos externo.
type PurchaseOrder struct {
	ID        int64
	Number    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCompleted indica si la orden ya fue completada.
func (p PurchaseOrder) IsCompleted() bool { return p.Status == PurchaseOrderCompleted }

// PurchaseOrderLine cantidad pedida de un artículo.
type PurchaseOrderLine struct {
	ID              int64
	PurchaseOrderID int64
	ItemID          int64
	Quantity        decimal.Decimal
	Unit            string
}
