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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra sobre PostgreSQL. Las crea el sistema de pedidos;
// aquí solo se leen y se cierran.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// GetForUpdate obtiene la orden y bloquea la fila. Devuelve nil si no existe.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, po_number, status, created_at, updated_at
		FROM purchase_orders WHERE id = $1
		FOR UPDATE`
	var po entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(&po.ID, &po.Number, &po.Status, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order for update: %w", err)
	}
	return &po, nil
}

// OrderedByItem suma la cantidad pedida por artículo.
func (r *PurchaseOrderRepo) OrderedByItem(ctx context.Context, id int64) (map[int64]decimal.Decimal, error) {
	query := `
		SELECT item_id, SUM(quantity)
		FROM purchase_order_lines
		WHERE purchase_order_id = $1
		GROUP BY item_id`
	return sumByItem(ctx, r.q, query, id, "ordered by item")
}

// MarkCompleted cierra la orden si sigue abierta. true solo si esta llamada hizo la transición.
func (r *PurchaseOrderRepo) MarkCompleted(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE purchase_orders SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`
	cmd, err := r.q.Exec(ctx, query, id, entity.PurchaseOrderCompleted, entity.PurchaseOrderOpen)
	if err != nil {
		return false, fmt.Errorf("complete purchase order: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}
