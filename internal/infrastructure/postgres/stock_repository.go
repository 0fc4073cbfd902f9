package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sync/internal/domain/entity"
	"github.com/jhoicas/wms-sync/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// container_id NULL representa unidades sueltas; toda comparación usa IS NOT DISTINCT FROM.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE). Devuelve nil si no existe.
func (r *StockRepo) GetForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockRow, error) {
	query := `
		SELECT id, item_id, location_id, container_id, quantity, updated_at
		FROM inventory_stock
		WHERE item_id = $1 AND location_id = $2 AND container_id IS NOT DISTINCT FROM $3::text
		FOR UPDATE`
	var (
		s         entity.StockRow
		container *string
	)
	err := r.q.QueryRow(ctx, query, key.ItemID, key.LocationID, key.Container.Nullable()).Scan(
		&s.ID, &s.ItemID, &s.LocationID, &container, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	s.Container = entity.ContainerFromNullable(container)
	return &s, nil
}

// Insert crea la fila. Si otra transacción la insertó entre el SELECT FOR UPDATE y este
// INSERT, la cantidad se suma en lugar de fallar por la restricción única.
func (r *StockRepo) Insert(ctx context.Context, key entity.StockKey, quantity decimal.Decimal) error {
	query := `
		INSERT INTO inventory_stock (item_id, location_id, container_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT ON CONSTRAINT uq_inventory_stock_key
		DO UPDATE SET quantity = inventory_stock.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, key.ItemID, key.LocationID, key.Container.Nullable(), quantity)
	if err != nil {
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// UpdateQuantity fija el saldo de una fila existente.
func (r *StockRepo) UpdateQuantity(ctx context.Context, id int64, quantity decimal.Decimal) error {
	query := `UPDATE inventory_stock SET quantity = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, quantity); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// Delete elimina la fila. El trigger trg_inventory_stock_removed deja la lápida en stock_removals.
func (r *StockRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory_stock WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}
