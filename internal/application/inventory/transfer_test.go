package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-sync/internal/application/inventory"
	"github.com/jhoicas/wms-sync/internal/domain"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
	"github.com/jhoicas/wms-sync/internal/infrastructure/memory"
)

type transferFixture struct {
	store     *memory.Store
	ledger    *inventory.StockLedger
	notifier  *recordingNotifier
	processor *inventory.TransferProcessor
	a, b      entity.Location
}

func newTransferFixture(t *testing.T, strict bool, largeQty decimal.Decimal) transferFixture {
	t.Helper()
	s := memory.NewStore()
	s.SetClock(clock)
	a := s.AddLocation("A-01", "Rack A")
	b := s.AddLocation("B-01", "Rack B")
	l := inventory.NewStockLedger(strict, nil)
	n := &recordingNotifier{}
	p := inventory.NewTransferProcessor(s, l, n, nil, largeQty).WithClock(clock)
	return transferFixture{store: s, ledger: l, notifier: n, processor: p, a: a, b: b}
}

func TestCreateTransfer_PalletCompleto(t *testing.T) {
	f := newTransferFixture(t, false, decimal.Zero)
	f.store.PutStock(stockKey(1, f.a.ID, "P1"), qty(5))
	before := f.store.TotalForItem(1)

	res, err := f.processor.CreateTransfer(context.Background(), inventory.TransferInput{
		Mode:             entity.TransferContainerMove,
		SourceLocationID: f.a.ID,
		TargetLocationID: f.b.ID,
		Container:        entity.NewContainerID("P1"),
		Actor:            "op-2",
		Lines:            []inventory.TransferLineInput{{ItemID: 1, Quantity: qty(5)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "success", res.Status)
	assert.NotEmpty(t, res.TransferRef)
	assert.Zero(t, res.MissingSourceLines)

	_, ok := f.store.Row(stockKey(1, f.a.ID, "P1"))
	assert.False(t, ok, "el origen queda vacío")
	dst, ok := f.store.Row(stockKey(1, f.b.ID, "P1"))
	require.True(t, ok)
	assert.True(t, dst.Quantity.Equal(qty(5)))

	movs := f.store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, res.TransferRef, movs[0].TransferRef)
	assert.Equal(t, "P1", movs[0].Container.Code())
	assert.Equal(t, entity.TransferContainerMove, movs[0].Mode)
	assert.True(t, f.store.TotalForItem(1).Equal(before), "el total del artículo se conserva")
}

func TestCreateTransfer_CajasDesdePallet(t *testing.T) {
	f := newTransferFixture(t, false, decimal.Zero)
	f.store.PutStock(stockKey(1, f.a.ID, "P1"), qty(10))

	_, err := f.processor.CreateTransfer(context.Background(), inventory.TransferInput{
		Mode:             entity.TransferSplitFromContainer,
		SourceLocationID: f.a.ID,
		TargetLocationID: f.a.ID,
		Container:        entity.NewContainerID("P1"),
		Actor:            "op-2",
		Lines:            []inventory.TransferLineInput{{ItemID: 1, Quantity: qty(4)}},
	})
	require.NoError(t, err, "sacar cajas de un pallet en la misma ubicación es válido")

	p1, _ := f.store.Row(stockKey(1, f.a.ID, "P1"))
	loose, _ := f.store.Row(stockKey(1, f.a.ID, ""))
	assert.True(t, p1.Quantity.Equal(qty(6)))
	assert.True(t, loose.Quantity.Equal(qty(4)))
	assert.True(t, f.store.TotalForItem(1).Equal(qty(10)), "la cantidad total se conserva")
	assert.Equal(t, "P1", f.store.Movements()[0].Container.Code(), "el log conserva el pallet de origen")
}

func TestCreateTransfer_CajasSueltasNoTocanPallets(t *testing.T) {
	f := newTransferFixture(t, false, decimal.Zero)
	f.store.PutStock(stockKey(1, f.a.ID, "P1"), qty(5))
	f.store.PutStock(stockKey(1, f.a.ID, ""), qty(3))

	_, err := f.processor.CreateTransfer(context.Background(), inventory.TransferInput{
		SourceLocationID: f.a.ID,
		TargetLocationID: f.b.ID,
		Actor:            "op-2",
		Lines:            []inventory.TransferLineInput{{ItemID: 1, Quantity: qty(2)}},
	})
	require.NoError(t, err)

	p1, _ := f.store.Row(stockKey(1, f.a.ID, "P1"))
	assert.True(t, p1.Quantity.Equal(qty(5)), "NONE no es comodín")
	loose, _ := f.store.Row(stockKey(1, f.a.ID, ""))
	assert.True(t, loose.Quantity.Equal(qty(1)))
	dst, _ := f.store.Row(stockKey(1, f.b.ID, ""))
	assert.True(t, dst.Quantity.Equal(qty(2)))
	movs := f.store.Movements()
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Container.IsNone())
	assert.Equal(t, entity.TransferLooseMove, movs[0].Mode)
}

func TestCreateTransfer_SinOrigenSeReporta(t *testing.T) {
	f := newTransferFixture(t, false, decimal.Zero)

	res, err := f.processor.CreateTransfer(context.Background(), inventory.TransferInput{
		SourceLocationID: f.a.ID,
		TargetLocationID: f.b.ID,
		Actor:            "op-2",
		Lines:            []inventory.TransferLineInput{{ItemID: 9, Quantity: qty(2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.MissingSourceLines)
	assert.Equal(t, int64(1), f.ledger.MissingSourceCount())
	dst, ok := f.store.Row(stockKey(9, f.b.ID, ""))
	require.True(t, ok, "el destino se acredita igual")
	assert.True(t, dst.Quantity.Equal(qty(2)))
}

func TestCreateTransfer_EstrictoRevierteLineasPrevias(t *testing.T) {
	f := newTransferFixture(t, true, decimal.Zero)
	f.store.PutStock(stockKey(1, f.a.ID, ""), qty(5))

	_, err := f.processor.CreateTransfer(context.Background(), inventory.TransferInput{
		SourceLocationID: f.a.ID,
		TargetLocationID: f.b.ID,
		Actor:            "op-2",
		Lines: []inventory.TransferLineInput{
			{ItemID: 1, Quantity: qty(5)},
			{ItemID: 2, Quantity: qty(1)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	src, ok := f.store.Row(stockKey(1, f.a.ID, ""))
	require.True(t, ok, "la primera línea se revierte")
	assert.True(t, src.Quantity.Equal(qty(5)))
	_, ok = f.store.Row(stockKey(1, f.b.ID, ""))
	assert.False(t, ok)
	assert.Empty(t, f.store.Movements())
}

func TestCreateTransfer_FallaDelLogRevierteAjustes(t *testing.T) {
	f := newTransferFixture(t, false, decimal.Zero)
	f.store.PutStock(stockKey(1, f.a.ID, ""), qty(5))
	boom := errors.New("timeout")
	f.store.FailOn("movement.create", boom)

	_, err := f.processor.CreateTransfer(context.Background(), inventory.TransferInput{
		SourceLocationID: f.a.ID,
		TargetLocationID: f.b.ID,
		Actor:            "op-2",
		Lines:            []inventory.TransferLineInput{{ItemID: 1, Quantity: qty(5)}},
	})
	require.ErrorIs(t, err, boom)
	src, ok := f.store.Row(stockKey(1, f.a.ID, ""))
	require.True(t, ok)
	assert.True(t, src.Quantity.Equal(qty(5)))
}

func TestCreateTransfer_Validaciones(t *testing.T) {
	f := newTransferFixture(t, false, decimal.Zero)
	line := []inventory.TransferLineInput{{ItemID: 1, Quantity: qty(1)}}
	cases := []struct {
		name string
		in   inventory.TransferInput
		want error
	}{
		{"pallet sin contenedor", inventory.TransferInput{Mode: entity.TransferContainerMove, SourceLocationID: f.a.ID, TargetLocationID: f.b.ID, Actor: "op", Lines: line}, domain.ErrInvalidInput},
		{"modo desconocido", inventory.TransferInput{Mode: "teleport", SourceLocationID: f.a.ID, TargetLocationID: f.b.ID, Actor: "op", Lines: line}, domain.ErrInvalidInput},
		{"mismo origen y destino", inventory.TransferInput{SourceLocationID: f.a.ID, TargetLocationID: f.a.ID, Actor: "op", Lines: line}, domain.ErrInvalidInput},
		{"sin líneas", inventory.TransferInput{SourceLocationID: f.a.ID, TargetLocationID: f.b.ID, Actor: "op"}, domain.ErrInvalidInput},
		{"sin actor", inventory.TransferInput{SourceLocationID: f.a.ID, TargetLocationID: f.b.ID, Lines: line}, domain.ErrInvalidInput},
		{"ubicación inexistente", inventory.TransferInput{SourceLocationID: f.a.ID, TargetLocationID: 999, Actor: "op", Lines: line}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.processor.CreateTransfer(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.store.Movements())
	assert.Empty(t, f.store.Stock())
}

func TestCreateTransfer_AvisoDeTrasladoGrande(t *testing.T) {
	f := newTransferFixture(t, false, qty(100))
	f.store.PutStock(stockKey(1, f.a.ID, "P9"), qty(120))

	_, err := f.processor.CreateTransfer(context.Background(), inventory.TransferInput{
		Mode:             entity.TransferContainerMove,
		SourceLocationID: f.a.ID,
		TargetLocationID: f.b.ID,
		Container:        entity.NewContainerID("P9"),
		Actor:            "op-2",
		Lines:            []inventory.TransferLineInput{{ItemID: 1, Quantity: qty(120)}},
	})
	require.NoError(t, err)
	require.Len(t, f.notifier.large, 1)
	assert.True(t, f.notifier.large[0].TotalQuantity.Equal(qty(120)))
	assert.Equal(t, "P9", f.notifier.large[0].Container)

	_, err = f.processor.CreateTransfer(context.Background(), inventory.TransferInput{
		SourceLocationID: f.b.ID,
		TargetLocationID: f.a.ID,
		Actor:            "op-2",
		Lines:            []inventory.TransferLineInput{{ItemID: 3, Quantity: qty(1)}},
	})
	require.NoError(t, err)
	assert.Len(t, f.notifier.large, 1, "debajo del umbral no hay aviso")
}
