// Package memory implementa los puertos de persistencia en memoria. Cada transacción
// trabaja sobre una copia del estado que solo reemplaza al original si fn no falla,
// igual que el rollback de PostgreSQL. Se usa en los tests de aplicación y HTTP.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
	"github.com/jhoicas/wms-sync/internal/domain/repository"
)

type state struct {
	seq          int64
	locations    map[int64]entity.Location
	orders       map[int64]entity.PurchaseOrder
	orderLines   []entity.PurchaseOrderLine
	stock        map[int64]entity.StockRow
	removals     []entity.StockRemoval
	receipts     map[int64]entity.Receipt
	receiptLines []entity.ReceiptLine
	movements    []entity.Movement
	requests     map[string]entity.ProcessedRequest
}

func newState() state {
	return state{
		locations: make(map[int64]entity.Location),
		orders:    make(map[int64]entity.PurchaseOrder),
		stock:     make(map[int64]entity.StockRow),
		receipts:  make(map[int64]entity.Receipt),
		requests:  make(map[string]entity.ProcessedRequest),
	}
}

func (s state) clone() state {
	out := state{
		seq:          s.seq,
		locations:    make(map[int64]entity.Location, len(s.locations)),
		orders:       make(map[int64]entity.PurchaseOrder, len(s.orders)),
		orderLines:   append([]entity.PurchaseOrderLine(nil), s.orderLines...),
		stock:        make(map[int64]entity.StockRow, len(s.stock)),
		removals:     append([]entity.StockRemoval(nil), s.removals...),
		receipts:     make(map[int64]entity.Receipt, len(s.receipts)),
		receiptLines: append([]entity.ReceiptLine(nil), s.receiptLines...),
		movements:    append([]entity.Movement(nil), s.movements...),
		requests:     make(map[string]entity.ProcessedRequest, len(s.requests)),
	}
	for k, v := range s.locations {
		out.locations[k] = v
	}
	for k, v := range s.orders {
		out.orders[k] = v
	}
	for k, v := range s.stock {
		out.stock[k] = v
	}
	for k, v := range s.receipts {
		out.receipts[k] = v
	}
	for k, v := range s.requests {
		out.requests[k] = v
	}
	return out
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

// Store almacén en memoria. Las transacciones se serializan con un mutex, lo que
// equivale al bloqueo de filas más estricto posible.
type Store struct {
	mu       sync.RWMutex
	state    state
	now      func() time.Time
	failures map[string]error
}

// NewStore crea un almacén vacío con el reloj del sistema.
func NewStore() *Store {
	return &Store{state: newState(), now: time.Now, failures: make(map[string]error)}
}

// SetClock reemplaza el reloj usado para created_at/updated_at.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailOn hace que la operación indicada ("stock.insert", "stock.update", "stock.delete",
// "movement.create", "receipt.create", "receipt.line", "request.save") devuelva err.
// err == nil elimina la falla.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &txState{state: s.state.clone(), now: s.now(), failures: s.failures}
	if err := fn(tx.repos()); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// RunReadOnly implementa devicesync.SnapshotRunner sobre una copia del estado.
func (s *Store) RunReadOnly(ctx context.Context, fn func(repo repository.SyncRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	snap := &txState{state: s.state.clone(), now: s.now()}
	s.mu.RUnlock()
	return fn(syncRepo{tx: snap})
}

// Requests registro de idempotencia fuera de transacción (lecturas previas y fallos).
func (s *Store) Requests() repository.ProcessedRequestRepository {
	return poolRequests{store: s}
}

type poolRequests struct {
	store *Store
}

func (r poolRequests) Get(ctx context.Context, key string) (*entity.ProcessedRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	tx := &txState{state: r.store.state}
	return requestRepo{tx: tx}.Get(ctx, key)
}

func (r poolRequests) Save(ctx context.Context, req *entity.ProcessedRequest) error {
	return r.store.Run(ctx, func(repos inventory.Repos) error {
		return repos.Requests.Save(ctx, req)
	})
}

// AddLocation registra una ubicación activa.
func (s *Store) AddLocation(code, name string) entity.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	loc := entity.Location{ID: s.state.nextID(), Code: code, Name: name, IsActive: true, CreatedAt: now, UpdatedAt: now}
	s.state.locations[loc.ID] = loc
	return loc
}

// AddPurchaseOrder registra una orden OPEN con sus líneas (PurchaseOrderID se asigna aquí).
func (s *Store) AddPurchaseOrder(number string, lines ...entity.PurchaseOrderLine) entity.PurchaseOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	po := entity.PurchaseOrder{ID: s.state.nextID(), Number: number, Status: entity.PurchaseOrderOpen, CreatedAt: now, UpdatedAt: now}
	s.state.orders[po.ID] = po
	for _, l := range lines {
		l.ID = s.state.nextID()
		l.PurchaseOrderID = po.ID
		s.state.orderLines = append(s.state.orderLines, l)
	}
	return po
}

// PutStock fija el saldo de una fila sin pasar por el ledger (preparación de tests).
func (s *Store) PutStock(key entity.StockKey, qty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, row := range s.state.stock {
		if row.Key().Equal(key) {
			row.Quantity = qty
			row.UpdatedAt = s.now()
			s.state.stock[id] = row
			return
		}
	}
	id := s.state.nextID()
	s.state.stock[id] = entity.StockRow{
		ID:         id,
		ItemID:     key.ItemID,
		LocationID: key.LocationID,
		Container:  key.Container,
		Quantity:   qty,
		UpdatedAt:  s.now(),
	}
}

// Stock filas de saldo ordenadas por ID.
func (s *Store) Stock() []entity.StockRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]entity.StockRow, 0, len(s.state.stock))
	for _, r := range s.state.stock {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

// Row devuelve la fila de la clave y si existe.
func (s *Store) Row(key entity.StockKey) (entity.StockRow, bool) {
	for _, r := range s.Stock() {
		if r.Key().Equal(key) {
			return r, true
		}
	}
	return entity.StockRow{}, false
}

// TotalForItem suma el saldo de un artículo en todas las ubicaciones y contenedores.
func (s *Store) TotalForItem(itemID int64) decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Stock() {
		if r.ItemID == itemID {
			total = total.Add(r.Quantity)
		}
	}
	return total
}

// Movements registros de traslado en orden de inserción.
func (s *Store) Movements() []entity.Movement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Movement(nil), s.state.movements...)
}

// Receipts cabeceras de recepción ordenadas por ID.
func (s *Store) Receipts() []entity.Receipt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Receipt, 0, len(s.state.receipts))
	for _, r := range s.state.receipts {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ReceiptLines líneas de recepción en orden de inserción.
func (s *Store) ReceiptLines() []entity.ReceiptLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.ReceiptLine(nil), s.state.receiptLines...)
}

// PurchaseOrder devuelve la orden y si existe.
func (s *Store) PurchaseOrder(id int64) (entity.PurchaseOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	po, ok := s.state.orders[id]
	return po, ok
}

// StockRemovals lápidas de filas eliminadas.
func (s *Store) StockRemovals() []entity.StockRemoval {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.StockRemoval(nil), s.state.removals...)
}
