package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/internal/domain"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
	"github.com/jhoicas/wms-sync/internal/infrastructure/memory"
)

type receiptFixture struct {
	store     *memory.Store
	notifier  *recordingNotifier
	processor *inventory.ReceiptProcessor
	receiving entity.Location
}

func newReceiptFixture(t *testing.T) receiptFixture {
	t.Helper()
	s := memory.NewStore()
	s.SetClock(clock)
	receiving := s.AddLocation("RAMPA", "Rampa de recepción")
	n := &recordingNotifier{}
	p := inventory.NewReceiptProcessor(s, inventory.NewStockLedger(false, nil), n, nil, receiving.ID).WithClock(clock)
	return receiptFixture{store: s, notifier: n, processor: p, receiving: receiving}
}

func TestCreateReceipt_LibreAcreditaRampa(t *testing.T) {
	f := newReceiptFixture(t)

	res, err := f.processor.CreateReceipt(context.Background(), inventory.ReceiptInput{
		Actor:         "op-1",
		InvoiceNumber: "FAC-77",
		Lines: []inventory.ReceiptLineInput{
			{ItemID: 1, Quantity: qty(4), Container: entity.NewContainerID("P1")},
			{ItemID: 2, Quantity: qty(6)},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, res.ReceiptID)
	assert.False(t, res.OrderCompleted)

	p1, ok := f.store.Row(stockKey(1, f.receiving.ID, "P1"))
	require.True(t, ok)
	assert.True(t, p1.Quantity.Equal(qty(4)))
	loose, ok := f.store.Row(stockKey(2, f.receiving.ID, ""))
	require.True(t, ok)
	assert.True(t, loose.Quantity.Equal(qty(6)))

	receipts := f.store.Receipts()
	require.Len(t, receipts, 1)
	assert.Nil(t, receipts[0].PurchaseOrderID)
	assert.Equal(t, fixedNow, receipts[0].ReceiptDate, "sin fecha se usa la hora actual")
	assert.Len(t, f.store.ReceiptLines(), 2)
}

func TestCreateReceipt_CompletaOrdenYPermiteSobreRecepcion(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	po := f.store.AddPurchaseOrder("PO-42",
		entity.PurchaseOrderLine{ItemID: 1, Quantity: qty(10)},
		entity.PurchaseOrderLine{ItemID: 2, Quantity: qty(5)},
	)

	res, err := f.processor.CreateReceipt(ctx, inventory.ReceiptInput{
		PurchaseOrderID: &po.ID,
		Actor:           "op-1",
		Lines: []inventory.ReceiptLineInput{
			{ItemID: 1, Quantity: qty(10)},
			{ItemID: 2, Quantity: qty(3)},
		},
	})
	require.NoError(t, err)
	assert.False(t, res.OrderCompleted, "falta el artículo 2")
	got, _ := f.store.PurchaseOrder(po.ID)
	assert.Equal(t, entity.PurchaseOrderOpen, got.Status)

	res, err = f.processor.CreateReceipt(ctx, inventory.ReceiptInput{
		PurchaseOrderID: &po.ID,
		Actor:           "op-1",
		Lines:           []inventory.ReceiptLineInput{{ItemID: 2, Quantity: qty(2)}},
	})
	require.NoError(t, err)
	assert.True(t, res.OrderCompleted)
	got, _ = f.store.PurchaseOrder(po.ID)
	assert.Equal(t, entity.PurchaseOrderCompleted, got.Status)
	require.Len(t, f.notifier.completed, 1)
	assert.Equal(t, po.ID, f.notifier.completed[0].PurchaseOrderID)

	res, err = f.processor.CreateReceipt(ctx, inventory.ReceiptInput{
		PurchaseOrderID: &po.ID,
		Actor:           "op-1",
		Lines:           []inventory.ReceiptLineInput{{ItemID: 1, Quantity: qty(5)}},
	})
	require.NoError(t, err, "la sobre-recepción se acepta")
	assert.False(t, res.OrderCompleted, "la transición solo se reporta una vez")
	assert.Len(t, f.notifier.completed, 1)
	total := f.store.TotalForItem(1)
	assert.True(t, total.Equal(qty(15)))
}

func TestCreateReceipt_OrdenInexistente(t *testing.T) {
	f := newReceiptFixture(t)
	missing := int64(999)

	_, err := f.processor.CreateReceipt(context.Background(), inventory.ReceiptInput{
		PurchaseOrderID: &missing,
		Actor:           "op-1",
		Lines:           []inventory.ReceiptLineInput{{ItemID: 1, Quantity: qty(1)}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.Receipts())
	assert.Empty(t, f.store.Stock())
}

func TestCreateReceipt_Validaciones(t *testing.T) {
	f := newReceiptFixture(t)
	zero := int64(0)
	cases := []struct {
		name string
		in   inventory.ReceiptInput
	}{
		{"sin actor", inventory.ReceiptInput{Lines: []inventory.ReceiptLineInput{{ItemID: 1, Quantity: qty(1)}}}},
		{"sin líneas", inventory.ReceiptInput{Actor: "op"}},
		{"orden cero", inventory.ReceiptInput{Actor: "op", PurchaseOrderID: &zero, Lines: []inventory.ReceiptLineInput{{ItemID: 1, Quantity: qty(1)}}}},
		{"sin artículo", inventory.ReceiptInput{Actor: "op", Lines: []inventory.ReceiptLineInput{{Quantity: qty(1)}}}},
		{"cantidad negativa", inventory.ReceiptInput{Actor: "op", Lines: []inventory.ReceiptLineInput{{ItemID: 1, Quantity: qty(-1)}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.processor.CreateReceipt(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, f.store.Receipts())
}

func TestCreateReceipt_FallaDeAlmacenRevierteTodo(t *testing.T) {
	f := newReceiptFixture(t)
	boom := errors.New("disco lleno")
	f.store.FailOn("stock.insert", boom)

	_, err := f.processor.CreateReceipt(context.Background(), inventory.ReceiptInput{
		Actor: "op-1",
		Lines: []inventory.ReceiptLineInput{{ItemID: 1, Quantity: qty(1)}},
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, f.store.Receipts())
	assert.Empty(t, f.store.ReceiptLines())
	assert.Empty(t, f.store.Stock())
}

func TestCreateReceipt_ClaveDeIdempotenciaEnLaMismaTx(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	in := inventory.ReceiptInput{
		Actor:          "op-1",
		IdempotencyKey: "dev-1:12",
		Lines:          []inventory.ReceiptLineInput{{ItemID: 1, Quantity: qty(2)}},
	}

	res, err := f.processor.CreateReceipt(ctx, in)
	require.NoError(t, err)
	rec, err := f.store.Requests().Get(ctx, "dev-1:12")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, entity.RequestSucceeded, rec.Status)
	assert.Equal(t, inventory.OperationGoodsReceipt, rec.OperationKind)

	_, err = f.processor.CreateReceipt(ctx, in)
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, f.store.Receipts(), 1, "el duplicado se revierte completo")
	assert.True(t, f.store.TotalForItem(1).Equal(qty(2)))
	assert.NotZero(t, res.ReceiptID)
}
