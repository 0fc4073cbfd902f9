package inventory

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sync/internal/domain"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
	inv "github.com/jhoicas/wms-sync/internal/domain/inventory"
	"github.com/jhoicas/wms-sync/internal/domain/repository"
	"github.com/jhoicas/wms-sync/pkg/logger"
)

// AdjustResult resultado de un ajuste sobre el ledger.
type AdjustResult struct {
	Action   inv.Action
	Quantity decimal.Decimal // saldo resultante (cero si la fila no existe)
	// MissingSource: se pidió descontar de una fila inexistente y el ajuste se ignoró.
	MissingSource bool
}

// StockLedger única vía de escritura sobre inventory_stock. Mantiene el invariante
// "saldo > épsilon o la fila no existe".
type StockLedger struct {
	strict  bool
	log     *logger.Logger
	missing atomic.Int64
}

// NewStockLedger construye el ledger. Con strict=true un descuento sin stock de origen
// (o que sobregira más allá del épsilon) falla con domain.ErrInsufficientStock en lugar
// de ignorarse.
func NewStockLedger(strict bool, log *logger.Logger) *StockLedger {
	if log == nil {
		log = logger.NewNop()
	}
	return &StockLedger{strict: strict, log: log}
}

// Adjust aplica un delta con signo sobre la fila (item, ubicación, contenedor).
// Debe llamarse con un StockRepository atado a la transacción del caller: la fila queda
// bloqueada (SELECT FOR UPDATE) entre la lectura y la escritura.
func (l *StockLedger) Adjust(ctx context.Context, stock repository.StockRepository, key entity.StockKey, delta decimal.Decimal) (AdjustResult, error) {
	row, err := stock.GetForUpdate(ctx, key)
	if err != nil {
		return AdjustResult{}, err
	}
	var current *decimal.Decimal
	if row != nil {
		current = &row.Quantity
	}
	d := inv.Decide(current, delta)

	if l.strict && (d.MissingSource || d.Overdraw) {
		return AdjustResult{}, fmt.Errorf("%w: %s delta=%s", domain.ErrInsufficientStock, key, delta)
	}

	switch d.Action {
	case inv.ActionInsert:
		err = stock.Insert(ctx, key, d.Quantity)
	case inv.ActionUpdate:
		err = stock.UpdateQuantity(ctx, row.ID, d.Quantity)
	case inv.ActionDelete:
		err = stock.Delete(ctx, row.ID)
	case inv.ActionNone:
		if d.MissingSource {
			l.missing.Add(1)
			l.log.Warn().
				Int64("item_id", key.ItemID).
				Int64("location_id", key.LocationID).
				Str("container", key.Container.String()).
				Str("delta", delta.String()).
				Msg("descuento sobre stock inexistente ignorado")
		}
	}
	if err != nil {
		return AdjustResult{}, err
	}
	if d.Overdraw {
		l.log.Warn().
			Int64("item_id", key.ItemID).
			Int64("location_id", key.LocationID).
			Str("container", key.Container.String()).
			Str("delta", delta.String()).
			Msg("sobregiro tratado como saldo cero")
	}
	return AdjustResult{Action: d.Action, Quantity: d.Quantity, MissingSource: d.MissingSource}, nil
}

// MissingSourceCount total de descuentos ignorados por falta de stock de origen desde el arranque.
func (l *StockLedger) MissingSourceCount() int64 {
	return l.missing.Load()
}
