package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sync/internal/domain/entity"
	"github.com/jhoicas/wms-sync/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo recepciones de mercancía sobre PostgreSQL (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create inserta la cabecera y asigna ID y created_at.
func (r *ReceiptRepo) Create(ctx context.Context, rc *entity.Receipt) error {
	query := `
		INSERT INTO goods_receipts (purchase_order_id, invoice_number, actor, receipt_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		rc.PurchaseOrderID, nullableString(rc.InvoiceNumber), rc.Actor, rc.ReceiptDate,
	).Scan(&rc.ID, &rc.CreatedAt)
	if err != nil {
		return fmt.Errorf("create goods receipt: %w", err)
	}
	return nil
}

// AddLine inserta una línea y asigna su ID.
func (r *ReceiptRepo) AddLine(ctx context.Context, line *entity.ReceiptLine) error {
	query := `
		INSERT INTO goods_receipt_items (receipt_id, item_id, quantity, container_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		line.ReceiptID, line.ItemID, line.Quantity, line.Container.Nullable(),
	).Scan(&line.ID)
	if err != nil {
		return fmt.Errorf("create goods receipt item: %w", err)
	}
	return nil
}

// ReceivedByOrder suma lo recibido por artículo en todas las recepciones de la orden.
func (r *ReceiptRepo) ReceivedByOrder(ctx context.Context, purchaseOrderID int64) (map[int64]decimal.Decimal, error) {
	query := `
		SELECT gi.item_id, SUM(gi.quantity)
		FROM goods_receipt_items gi
		JOIN goods_receipts g ON g.id = gi.receipt_id
		WHERE g.purchase_order_id = $1
		GROUP BY gi.item_id`
	return sumByItem(ctx, r.q, query, purchaseOrderID, "received by order")
}

func sumByItem(ctx context.Context, q Querier, query string, id int64, what string) (map[int64]decimal.Decimal, error) {
	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	out := make(map[int64]decimal.Decimal)
	for rows.Next() {
		var (
			itemID int64
			total  decimal.Decimal
		)
		if err := rows.Scan(&itemID, &total); err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		out[itemID] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return out, nil
}
