package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransferHeaderRequest cabecera de POST /v1/transfers.
type TransferHeaderRequest struct {
	OperationType    string     `json:"operation_type"`
	SourceLocationID FlexInt64  `json:"source_location_id"`
	TargetLocationID FlexInt64  `json:"target_location_id"`
	ContainerID      *string    `json:"container_id,omitempty"`
	PalletID         *string    `json:"pallet_id,omitempty"`
	Actor            FlexString `json:"actor,omitempty"`
	EmployeeID       FlexString `json:"employee_id,omitempty"`
	TransferDate     FlexTime   `json:"transfer_date,omitempty"`
}

// TransferItemRequest línea de traslado. Versiones viejas envían pallet_id por línea.
type TransferItemRequest struct {
	ItemID    FlexInt64       `json:"item_id,omitempty"`
	ProductID FlexInt64       `json:"product_id,omitempty"`
	UrunID    FlexInt64       `json:"urun_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	PalletID  *string         `json:"pallet_id,omitempty"`
}

// CreateTransferRequest body para POST /v1/transfers (y data de traslados en sync).
type CreateTransferRequest struct {
	Header *TransferHeaderRequest `json:"header"`
	Items  []TransferItemRequest  `json:"items"`
	Lines  []TransferItemRequest  `json:"lines,omitempty"`
}

// ActorName devuelve quién registró la operación.
func (h TransferHeaderRequest) ActorName() string {
	return firstString(string(h.Actor), string(h.EmployeeID))
}

// Container devuelve el código de pallet de la cabecera.
func (h TransferHeaderRequest) Container() string {
	return firstCode(h.ContainerID, h.PalletID)
}

// Item devuelve el artículo de la línea.
func (i TransferItemRequest) Item() int64 {
	return firstID(i.ItemID, i.ProductID, i.UrunID)
}

// AllLines une items y lines.
func (r CreateTransferRequest) AllLines() []TransferItemRequest {
	if len(r.Items) == 0 {
		return r.Lines
	}
	return r.Items
}

var transferModeAliases = map[string]string{
	"":                     "loose_move",
	"loose_move":           "loose_move",
	"box_transfer":         "loose_move",
	"box":                  "loose_move",
	"container_move":       "container_move",
	"pallet_transfer":      "container_move",
	"pallet":               "container_move",
	"split_from_container": "split_from_container",
	"box_from_pallet":      "split_from_container",
}

// NormalizeTransferMode traduce los nombres históricos de operation_type al modo canónico.
// ok=false si el nombre no se reconoce.
func NormalizeTransferMode(s string) (mode string, ok bool) {
	mode, ok = transferModeAliases[strings.ToLower(strings.TrimSpace(s))]
	return mode, ok
}

// CreateTransferResponse respuesta 200.
type CreateTransferResponse struct {
	Status             string `json:"status"`
	TransferRef        string `json:"transfer_ref"`
	MissingSourceLines int    `json:"missing_source_lines"`
}
