package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modos de traslado.
const (
	TransferContainerMove      = "container_move"       // pallet completo cambia de ubicación
	TransferLooseMove          = "loose_move"           // cajas sueltas
	TransferSplitFromContainer = "split_from_container" // cajas que salen de un pallet
)

// Movement registro inmutable de una línea de traslado (tabla inventory_transfers).
type Movement struct {
	ID             int64
	TransferRef    string // agrupa las líneas de un mismo traslado
	ItemID         int64
	FromLocationID int64
	ToLocationID   int64
	Quantity       decimal.Decimal // siempre positivo
	Container      ContainerID     // contenedor de origen, también en split_from_container
	Mode           string
	Actor          string
	TransferDate   time.Time
	CreatedAt      time.Time
}
