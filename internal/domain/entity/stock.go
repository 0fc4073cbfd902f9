package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StockKey identifica una fila del ledger: artículo × ubicación × contenedor.
type StockKey struct {
	ItemID     int64
	LocationID int64
	Container  ContainerID
}

// Equal compara claves usando la igualdad null-safe del contenedor.
func (k StockKey) Equal(other StockKey) bool {
	return k.ItemID == other.ItemID && k.LocationID == other.LocationID && k.Container.Equal(other.Container)
}

func (k StockKey) String() string {
	return fmt.Sprintf("item=%d loc=%d container=%s", k.ItemID, k.LocationID, k.Container)
}

// StockRow saldo de un artículo en una ubicación y contenedor (tabla inventory_stock).
// Quantity siempre es mayor que el épsilon; una fila en cero no se persiste.
type StockRow struct {
	ID         int64
	ItemID     int64
	LocationID int64
	Container  ContainerID
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}

// Key devuelve la clave de la fila.
func (s StockRow) Key() StockKey {
	return StockKey{ItemID: s.ItemID, LocationID: s.LocationID, Container: s.Container}
}

// StockRemoval marca una fila eliminada del ledger (lápida para la sincronización delta).
type StockRemoval struct {
	ID         int64
	ItemID     int64
	LocationID int64
	Container  ContainerID
	DeletedAt  time.Time
}
