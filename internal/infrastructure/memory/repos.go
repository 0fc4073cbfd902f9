package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/internal/domain"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
)

// txState copia de trabajo de una transacción. created_at siempre sale del reloj del
// almacén, como el DEFAULT now() de la base.
type txState struct {
	state    state
	now      time.Time
	failures map[string]error
}

func (tx *txState) fail(op string) error {
	if err, ok := tx.failures[op]; ok {
		return fmt.Errorf("memory %s: %w", op, err)
	}
	return nil
}

func (tx *txState) repos() inventory.Repos {
	return inventory.Repos{
		Stock:     stockRepo{tx: tx},
		Movements: movementRepo{tx: tx},
		Receipts:  receiptRepo{tx: tx},
		Orders:    orderRepo{tx: tx},
		Locations: locationRepo{tx: tx},
		Requests:  requestRepo{tx: tx},
	}
}

type stockRepo struct{ tx *txState }

func (r stockRepo) find(key entity.StockKey) (entity.StockRow, bool) {
	for _, row := range r.tx.state.stock {
		if row.Key().Equal(key) {
			return row, true
		}
	}
	return entity.StockRow{}, false
}

func (r stockRepo) GetForUpdate(_ context.Context, key entity.StockKey) (*entity.StockRow, error) {
	row, ok := r.find(key)
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r stockRepo) Insert(_ context.Context, key entity.StockKey, quantity decimal.Decimal) error {
	if err := r.tx.fail("stock.insert"); err != nil {
		return err
	}
	if row, ok := r.find(key); ok {
		row.Quantity = row.Quantity.Add(quantity)
		row.UpdatedAt = r.tx.now
		r.tx.state.stock[row.ID] = row
		return nil
	}
	id := r.tx.state.nextID()
	r.tx.state.stock[id] = entity.StockRow{
		ID:         id,
		ItemID:     key.ItemID,
		LocationID: key.LocationID,
		Container:  key.Container,
		Quantity:   quantity,
		UpdatedAt:  r.tx.now,
	}
	return nil
}

func (r stockRepo) UpdateQuantity(_ context.Context, id int64, quantity decimal.Decimal) error {
	if err := r.tx.fail("stock.update"); err != nil {
		return err
	}
	row, ok := r.tx.state.stock[id]
	if !ok {
		return fmt.Errorf("memory stock %d: %w", id, domain.ErrNotFound)
	}
	row.Quantity = quantity
	row.UpdatedAt = r.tx.now
	r.tx.state.stock[id] = row
	return nil
}

func (r stockRepo) Delete(_ context.Context, id int64) error {
	if err := r.tx.fail("stock.delete"); err != nil {
		return err
	}
	row, ok := r.tx.state.stock[id]
	if !ok {
		return nil
	}
	delete(r.tx.state.stock, id)
	r.tx.state.removals = append(r.tx.state.removals, entity.StockRemoval{
		ID:         r.tx.state.nextID(),
		ItemID:     row.ItemID,
		LocationID: row.LocationID,
		Container:  row.Container,
		DeletedAt:  r.tx.now,
	})
	return nil
}

type movementRepo struct{ tx *txState }

func (r movementRepo) Create(_ context.Context, m *entity.Movement) error {
	if err := r.tx.fail("movement.create"); err != nil {
		return err
	}
	m.ID = r.tx.state.nextID()
	m.CreatedAt = r.tx.now
	r.tx.state.movements = append(r.tx.state.movements, *m)
	return nil
}

type receiptRepo struct{ tx *txState }

func (r receiptRepo) Create(_ context.Context, rc *entity.Receipt) error {
	if err := r.tx.fail("receipt.create"); err != nil {
		return err
	}
	rc.ID = r.tx.state.nextID()
	rc.CreatedAt = r.tx.now
	r.tx.state.receipts[rc.ID] = *rc
	return nil
}

func (r receiptRepo) AddLine(_ context.Context, line *entity.ReceiptLine) error {
	if err := r.tx.fail("receipt.line"); err != nil {
		return err
	}
	if _, ok := r.tx.state.receipts[line.ReceiptID]; !ok {
		return fmt.Errorf("memory receipt %d: %w", line.ReceiptID, domain.ErrNotFound)
	}
	line.ID = r.tx.state.nextID()
	r.tx.state.receiptLines = append(r.tx.state.receiptLines, *line)
	return nil
}

func (r receiptRepo) ReceivedByOrder(_ context.Context, purchaseOrderID int64) (map[int64]decimal.Decimal, error) {
	out := make(map[int64]decimal.Decimal)
	for _, l := range r.tx.state.receiptLines {
		rc := r.tx.state.receipts[l.ReceiptID]
		if rc.PurchaseOrderID == nil || *rc.PurchaseOrderID != purchaseOrderID {
			continue
		}
		out[l.ItemID] = out[l.ItemID].Add(l.Quantity)
	}
	return out, nil
}

type orderRepo struct{ tx *txState }

func (r orderRepo) GetForUpdate(_ context.Context, id int64) (*entity.PurchaseOrder, error) {
	po, ok := r.tx.state.orders[id]
	if !ok {
		return nil, nil
	}
	return &po, nil
}

func (r orderRepo) OrderedByItem(_ context.Context, id int64) (map[int64]decimal.Decimal, error) {
	out := make(map[int64]decimal.Decimal)
	for _, l := range r.tx.state.orderLines {
		if l.PurchaseOrderID == id {
			out[l.ItemID] = out[l.ItemID].Add(l.Quantity)
		}
	}
	return out, nil
}

func (r orderRepo) MarkCompleted(_ context.Context, id int64) (bool, error) {
	po, ok := r.tx.state.orders[id]
	if !ok || po.Status != entity.PurchaseOrderOpen {
		return false, nil
	}
	po.Status = entity.PurchaseOrderCompleted
	po.UpdatedAt = r.tx.now
	r.tx.state.orders[id] = po
	return true, nil
}

type locationRepo struct{ tx *txState }

func (r locationRepo) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	loc, ok := r.tx.state.locations[id]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

type requestRepo struct{ tx *txState }

func (r requestRepo) Get(_ context.Context, key string) (*entity.ProcessedRequest, error) {
	req, ok := r.tx.state.requests[key]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (r requestRepo) Save(_ context.Context, req *entity.ProcessedRequest) error {
	if err := r.tx.fail("request.save"); err != nil {
		return err
	}
	if _, ok := r.tx.state.requests[req.IdempotencyKey]; ok {
		return fmt.Errorf("memory request %q: %w", req.IdempotencyKey, domain.ErrDuplicate)
	}
	req.CreatedAt = r.tx.now
	r.tx.state.requests[req.IdempotencyKey] = *req
	return nil
}

// syncRepo lecturas delta sobre un snapshot. Usa >= para sobre-incluir en el borde.
type syncRepo struct{ tx *txState }

func changedSince(since *time.Time, ts ...time.Time) bool {
	if since == nil {
		return true
	}
	for _, t := range ts {
		if !t.Before(*since) {
			return true
		}
	}
	return false
}

// Horizon es la hora del snapshot: las transacciones en memoria se serializan y sellan al
// confirmar, no hay escrituras en vuelo.
func (r syncRepo) Horizon(context.Context) (time.Time, error) { return r.tx.now, nil }

func (r syncRepo) Locations(_ context.Context, since *time.Time) ([]entity.Location, error) {
	out := []entity.Location{}
	for _, l := range r.tx.state.locations {
		if changedSince(since, l.CreatedAt, l.UpdatedAt) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r syncRepo) qualifyingOrders(since *time.Time) map[int64]bool {
	ids := make(map[int64]bool)
	for _, po := range r.tx.state.orders {
		if changedSince(since, po.CreatedAt, po.UpdatedAt) {
			ids[po.ID] = true
		}
	}
	return ids
}

func (r syncRepo) PurchaseOrders(_ context.Context, since *time.Time) ([]entity.PurchaseOrder, error) {
	ids := r.qualifyingOrders(since)
	out := []entity.PurchaseOrder{}
	for id := range ids {
		out = append(out, r.tx.state.orders[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r syncRepo) PurchaseOrderLines(_ context.Context, since *time.Time) ([]entity.PurchaseOrderLine, error) {
	ids := r.qualifyingOrders(since)
	out := []entity.PurchaseOrderLine{}
	for _, l := range r.tx.state.orderLines {
		if ids[l.PurchaseOrderID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r syncRepo) Stock(_ context.Context, since *time.Time) ([]entity.StockRow, error) {
	out := []entity.StockRow{}
	for _, s := range r.tx.state.stock {
		if changedSince(since, s.UpdatedAt) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r syncRepo) StockRemovals(_ context.Context, since *time.Time) ([]entity.StockRemoval, error) {
	out := []entity.StockRemoval{}
	for _, rm := range r.tx.state.removals {
		if changedSince(since, rm.DeletedAt) {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (r syncRepo) qualifyingReceipts(since *time.Time) map[int64]bool {
	ids := make(map[int64]bool)
	for _, rc := range r.tx.state.receipts {
		if changedSince(since, rc.CreatedAt) {
			ids[rc.ID] = true
		}
	}
	return ids
}

func (r syncRepo) Receipts(_ context.Context, since *time.Time) ([]entity.Receipt, error) {
	out := []entity.Receipt{}
	for id := range r.qualifyingReceipts(since) {
		out = append(out, r.tx.state.receipts[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r syncRepo) ReceiptLines(_ context.Context, since *time.Time) ([]entity.ReceiptLine, error) {
	ids := r.qualifyingReceipts(since)
	out := []entity.ReceiptLine{}
	for _, l := range r.tx.state.receiptLines {
		if ids[l.ReceiptID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r syncRepo) Movements(_ context.Context, since *time.Time) ([]entity.Movement, error) {
	out := []entity.Movement{}
	for _, m := range r.tx.state.movements {
		if changedSince(since, m.CreatedAt) {
			out = append(out, m)
		}
	}
	return out, nil
}
