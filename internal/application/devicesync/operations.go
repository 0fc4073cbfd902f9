package devicesync

import "strings"

type operationKind int

const (
	kindUnknown operationKind = iota
	kindReceipt
	kindTransfer
)

// operationType tipo canónico de operación de sync y el modo de traslado implícito.
type operationType struct {
	kind operationKind
	mode string // modo por defecto si la cabecera del traslado no trae operation_type
}

// Los nombres cambiaron entre versiones de la app del terminal; todos llegan aquí.
var operationTypes = map[string]operationType{
	"goods_receipt":        {kind: kindReceipt},
	"goodsreceipt":         {kind: kindReceipt},
	"pallet_transfer":      {kind: kindTransfer, mode: "container_move"},
	"container_move":       {kind: kindTransfer, mode: "container_move"},
	"box_transfer":         {kind: kindTransfer, mode: "loose_move"},
	"loose_move":           {kind: kindTransfer, mode: "loose_move"},
	"box_from_pallet":      {kind: kindTransfer, mode: "split_from_container"},
	"split_from_container": {kind: kindTransfer, mode: "split_from_container"},
	"inventorytransfer":    {kind: kindTransfer},
	"transfer":             {kind: kindTransfer},
}

func parseOperationType(s string) operationType {
	if t, ok := operationTypes[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t
	}
	return operationType{kind: kindUnknown}
}
