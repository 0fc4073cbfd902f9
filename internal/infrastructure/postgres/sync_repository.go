package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-sync/internal/domain/entity"
	"github.com/jhoicas/wms-sync/internal/domain/repository"
)

var _ repository.SyncRepository = (*SyncRepo)(nil)

// SyncRepo lecturas delta para terminales. Debe usarse dentro de la transacción de solo
// lectura de TxRunner.RunReadOnly para que todas las entidades salgan del mismo snapshot.
// $1 NULL devuelve la tabla completa; el filtro usa >= para sobre-incluir en el borde.
type SyncRepo struct {
	q       Querier
	horizon time.Time
}

// NewSyncRepository construye el adaptador. horizon se calcula con WriteHorizon antes de
// abrir el snapshot.
func NewSyncRepository(q Querier, horizon time.Time) *SyncRepo {
	return &SyncRepo{q: q, horizon: horizon}
}

// Horizon ver repository.SyncRepository.
func (r *SyncRepo) Horizon(context.Context) (time.Time, error) {
	return r.horizon, nil
}

// Las filas se sellan con now(), que es el inicio de su transacción, y pueden confirmarse
// mucho después. Toda transacción abierta en este momento sella con xact_start >= min(xact_start);
// las que empiecen después sellan con una hora posterior a now(). Requiere ver xact_start de
// las sesiones de la aplicación (mismo rol o pg_read_all_stats).
const writeHorizonQuery = `
	SELECT now(), min(xact_start)
	FROM pg_stat_activity
	WHERE backend_type = 'client backend'
	  AND xact_start IS NOT NULL
	  AND pid <> pg_backend_pid()`

// WriteHorizon consulta la hora hasta la que todo lo confirmado queda visible en un snapshot
// abierto después. Debe ejecutarse fuera de la transacción de lectura y antes de abrirla.
func WriteHorizon(ctx context.Context, q Querier) (time.Time, error) {
	var (
		now    time.Time
		oldest *time.Time
	)
	if err := q.QueryRow(ctx, writeHorizonQuery).Scan(&now, &oldest); err != nil {
		return time.Time{}, fmt.Errorf("sync horizon: %w", err)
	}
	return horizonFrom(now, oldest), nil
}

// horizonFrom devuelve la menor entre now y el inicio de la transacción abierta más antigua.
func horizonFrom(now time.Time, oldest *time.Time) time.Time {
	if oldest != nil && oldest.Before(now) {
		return oldest.UTC()
	}
	return now.UTC()
}

// collect ejecuta query con since y escanea cada fila con scan.
func collect[T any](ctx context.Context, q Querier, what, query string, since *time.Time, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("sync %s: %w", what, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sync %s: %w", what, err)
	}
	return out, nil
}

func (r *SyncRepo) Locations(ctx context.Context, since *time.Time) ([]entity.Location, error) {
	query := `
		SELECT id, code, name, is_active, created_at, updated_at
		FROM locations
		WHERE $1::timestamptz IS NULL OR updated_at >= $1 OR created_at >= $1
		ORDER BY id`
	return collect(ctx, r.q, "locations", query, since, func(rows pgx.Rows) (entity.Location, error) {
		var l entity.Location
		err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
		return l, err
	})
}

func (r *SyncRepo) PurchaseOrders(ctx context.Context, since *time.Time) ([]entity.PurchaseOrder, error) {
	query := `
		SELECT id, po_number, status, created_at, updated_at
		FROM purchase_orders
		WHERE $1::timestamptz IS NULL OR updated_at >= $1 OR created_at >= $1
		ORDER BY id`
	return collect(ctx, r.q, "purchase orders", query, since, func(rows pgx.Rows) (entity.PurchaseOrder, error) {
		var po entity.PurchaseOrder
		err := rows.Scan(&po.ID, &po.Number, &po.Status, &po.CreatedAt, &po.UpdatedAt)
		return po, err
	})
}

func (r *SyncRepo) PurchaseOrderLines(ctx context.Context, since *time.Time) ([]entity.PurchaseOrderLine, error) {
	query := `
		SELECT l.id, l.purchase_order_id, l.item_id, l.quantity, l.unit
		FROM purchase_order_lines l
		JOIN purchase_orders po ON po.id = l.purchase_order_id
		WHERE $1::timestamptz IS NULL OR po.updated_at >= $1 OR po.created_at >= $1
		ORDER BY l.id`
	return collect(ctx, r.q, "purchase order lines", query, since, func(rows pgx.Rows) (entity.PurchaseOrderLine, error) {
		var (
			l    entity.PurchaseOrderLine
			unit *string
		)
		err := rows.Scan(&l.ID, &l.PurchaseOrderID, &l.ItemID, &l.Quantity, &unit)
		l.Unit = derefString(unit)
		return l, err
	})
}

func (r *SyncRepo) Stock(ctx context.Context, since *time.Time) ([]entity.StockRow, error) {
	query := `
		SELECT id, item_id, location_id, container_id, quantity, updated_at
		FROM inventory_stock
		WHERE $1::timestamptz IS NULL OR updated_at >= $1
		ORDER BY id`
	return collect(ctx, r.q, "stock", query, since, func(rows pgx.Rows) (entity.StockRow, error) {
		var (
			s         entity.StockRow
			container *string
		)
		err := rows.Scan(&s.ID, &s.ItemID, &s.LocationID, &container, &s.Quantity, &s.UpdatedAt)
		s.Container = entity.ContainerFromNullable(container)
		return s, err
	})
}

func (r *SyncRepo) StockRemovals(ctx context.Context, since *time.Time) ([]entity.StockRemoval, error) {
	query := `
		SELECT id, item_id, location_id, container_id, deleted_at
		FROM stock_removals
		WHERE $1::timestamptz IS NULL OR deleted_at >= $1
		ORDER BY id`
	return collect(ctx, r.q, "stock removals", query, since, func(rows pgx.Rows) (entity.StockRemoval, error) {
		var (
			s         entity.StockRemoval
			container *string
		)
		err := rows.Scan(&s.ID, &s.ItemID, &s.LocationID, &container, &s.DeletedAt)
		s.Container = entity.ContainerFromNullable(container)
		return s, err
	})
}

func (r *SyncRepo) Receipts(ctx context.Context, since *time.Time) ([]entity.Receipt, error) {
	query := `
		SELECT id, purchase_order_id, invoice_number, actor, receipt_date, created_at
		FROM goods_receipts
		WHERE $1::timestamptz IS NULL OR created_at >= $1
		ORDER BY id`
	return collect(ctx, r.q, "goods receipts", query, since, func(rows pgx.Rows) (entity.Receipt, error) {
		var (
			rc      entity.Receipt
			invoice *string
		)
		err := rows.Scan(&rc.ID, &rc.PurchaseOrderID, &invoice, &rc.Actor, &rc.ReceiptDate, &rc.CreatedAt)
		rc.InvoiceNumber = derefString(invoice)
		return rc, err
	})
}

func (r *SyncRepo) ReceiptLines(ctx context.Context, since *time.Time) ([]entity.ReceiptLine, error) {
	query := `
		SELECT gi.id, gi.receipt_id, gi.item_id, gi.quantity, gi.container_id
		FROM goods_receipt_items gi
		JOIN goods_receipts g ON g.id = gi.receipt_id
		WHERE $1::timestamptz IS NULL OR g.created_at >= $1
		ORDER BY gi.id`
	return collect(ctx, r.q, "goods receipt items", query, since, func(rows pgx.Rows) (entity.ReceiptLine, error) {
		var (
			l         entity.ReceiptLine
			container *string
		)
		err := rows.Scan(&l.ID, &l.ReceiptID, &l.ItemID, &l.Quantity, &container)
		l.Container = entity.ContainerFromNullable(container)
		return l, err
	})
}

func (r *SyncRepo) Movements(ctx context.Context, since *time.Time) ([]entity.Movement, error) {
	query := `
		SELECT id, transfer_ref::text, item_id, from_location_id, to_location_id, quantity,
		       container_id, operation_type, actor, transfer_date, created_at
		FROM inventory_transfers
		WHERE $1::timestamptz IS NULL OR created_at >= $1
		ORDER BY id`
	return collect(ctx, r.q, "inventory transfers", query, since, func(rows pgx.Rows) (entity.Movement, error) {
		var (
			m         entity.Movement
			container *string
		)
		err := rows.Scan(&m.ID, &m.TransferRef, &m.ItemID, &m.FromLocationID, &m.ToLocationID, &m.Quantity,
			&container, &m.Mode, &m.Actor, &m.TransferDate, &m.CreatedAt)
		m.Container = entity.ContainerFromNullable(container)
		return m, err
	})
}
