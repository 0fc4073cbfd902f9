package dto

import (
	"github.com/shopspring/decimal"
)

// ReceiptHeaderRequest cabecera de POST /v1/goods-receipts.
// siparis_id y employee_id son los nombres usados por terminales antiguos.
type ReceiptHeaderRequest struct {
	PurchaseOrderID    FlexInt64  `json:"purchase_order_id,omitempty"`
	SiparisID          FlexInt64  `json:"siparis_id,omitempty"`
	InvoiceNumber      string     `json:"invoice_number,omitempty"`
	DeliveryNoteNumber string     `json:"delivery_note_number,omitempty"`
	Actor              FlexString `json:"actor,omitempty"`
	EmployeeID         FlexString `json:"employee_id,omitempty"`
	ReceiptDate        FlexTime   `json:"receipt_date,omitempty"`
}

// ReceiptItemRequest línea de recepción.
type ReceiptItemRequest struct {
	ItemID        FlexInt64       `json:"item_id,omitempty"`
	ProductID     FlexInt64       `json:"product_id,omitempty"`
	UrunID        FlexInt64       `json:"urun_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	ContainerID   *string         `json:"container_id,omitempty"`
	PalletBarcode *string         `json:"pallet_barcode,omitempty"`
}

// CreateReceiptRequest body para POST /v1/goods-receipts (y data de goods_receipt en sync).
type CreateReceiptRequest struct {
	Header *ReceiptHeaderRequest `json:"header"`
	Items  []ReceiptItemRequest  `json:"items"`
	Lines  []ReceiptItemRequest  `json:"lines,omitempty"`
}

// PurchaseOrder devuelve la referencia a la orden (0 = recepción libre).
func (h ReceiptHeaderRequest) PurchaseOrder() int64 {
	return firstID(h.PurchaseOrderID, h.SiparisID)
}

// Invoice devuelve el número de factura o remisión.
func (h ReceiptHeaderRequest) Invoice() string {
	return firstString(h.InvoiceNumber, h.DeliveryNoteNumber)
}

// ActorName devuelve quién registró la operación.
func (h ReceiptHeaderRequest) ActorName() string {
	return firstString(string(h.Actor), string(h.EmployeeID))
}

// Item devuelve el artículo de la línea.
func (i ReceiptItemRequest) Item() int64 {
	return firstID(i.ItemID, i.ProductID, i.UrunID)
}

// Container devuelve el código de pallet ("" = sueltas).
func (i ReceiptItemRequest) Container() string {
	return firstCode(i.ContainerID, i.PalletBarcode)
}

// AllLines une items y lines (ambos nombres circulan).
func (r CreateReceiptRequest) AllLines() []ReceiptItemRequest {
	if len(r.Items) == 0 {
		return r.Lines
	}
	return r.Items
}

// CreateReceiptResponse respuesta 201.
type CreateReceiptResponse struct {
	ReceiptID      int64  `json:"receipt_id"`
	Status         string `json:"status"`
	OrderCompleted bool   `json:"order_completed"`
}
